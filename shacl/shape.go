// Package shacl implements the SHACL Core validator: target selection,
// Node/Property constraint evaluation, and validation report
// generation over a shapes graph and a data graph (which may be the
// same store.Graph). Follows the same "declare targets, walk
// constraints, accumulate a report" structure reason/rdfs and sparql
// already use over the store's Match, reusing sparql's triple-pattern
// matching for property-path evaluation rather than inventing a second
// matcher.
package shacl

import "github.com/vigilgraph/reasoner/term"

// Shape is one sh:NodeShape: a target selector plus the property
// shapes nested under it via sh:property.
type Shape struct {
	ID          term.Term
	TargetClass []term.Term
	TargetNode  []term.Term
	Properties  []PropertyShape
	Severity    term.Term // defaults to sh:Violation when zero-value
}

// PropertyShape is one sh:PropertyShape: a single-predicate path plus
// the constraints evaluated against the multiset of values reachable
// through it.
type PropertyShape struct {
	ID       term.Term
	Path     term.Term
	Severity term.Term

	Class     *term.Term
	Datatype  *term.Term
	HasValue  *term.Term
	In        []term.Term
	MinCount  *int
	MaxCount  *int
	Pattern   *string
	MinLength *int
	MaxLength *int
}
