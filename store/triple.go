// Package store implements the indexed triple store: the mutable
// substrate every reasoner, the SPARQL evaluator, and the SHACL validator
// query. One Graph exists per named graph (plus a default-graph
// sentinel), each holding its own subject/predicate/object indices
// behind a single reader-writer lock, with a shared process-wide term
// interner.
package store

import (
	"fmt"

	"github.com/vigilgraph/reasoner/term"
)

// TripleID uniquely identifies a stored triple within one Graph, in
// insertion order. TripleID zero is never issued.
type TripleID uint64

// GraphID names a graph: an interned IRI, or DefaultGraph for the
// sentinel unnamed graph.
type GraphID string

// DefaultGraph is the sentinel identifying the default (unnamed) graph.
const DefaultGraph GraphID = ""

// Triple is an ordered (subject, predicate, object) statement. Subject
// must be an IRI or blank node; predicate must be an IRI.
type Triple struct {
	Subject   term.Term
	Predicate term.Term
	Object    term.Term
}

// Validate checks the structural shape invariant: subject is IRI or
// blank, predicate is IRI.
func (t Triple) Validate() error {
	if !t.Subject.IsIRI() && !t.Subject.IsBlank() {
		return fmt.Errorf("invalid subject: must be IRI or blank node, got %v", t.Subject)
	}
	if !t.Predicate.IsIRI() {
		return fmt.Errorf("invalid predicate: must be IRI, got %v", t.Predicate)
	}
	return nil
}

// String renders t in Turtle-like surface syntax.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}

// ProvenanceKind tags how a stored triple entered the store.
type ProvenanceKind uint8

const (
	// ProvSensor marks a triple asserted directly by ingestion.
	ProvSensor ProvenanceKind = iota
	// ProvInferred marks a triple derived by a named reasoner step.
	ProvInferred
)

// Provenance records a stored triple's origin. Sensor triples name their
// source; inferred triples name the rule that derived them and the
// premise triple ids the derivation consumed, supporting audit
// traceability back to sensor roots.
type Provenance struct {
	Kind   ProvenanceKind
	Source string     // set when Kind == ProvSensor
	Rule   string     // set when Kind == ProvInferred
	Premises []TripleID // set when Kind == ProvInferred
}

// Sensor builds sensor provenance naming source.
func Sensor(source string) Provenance {
	return Provenance{Kind: ProvSensor, Source: source}
}

// Inferred builds inferred provenance naming the rule id and premises.
func Inferred(rule string, premises []TripleID) Provenance {
	return Provenance{Kind: ProvInferred, Rule: rule, Premises: premises}
}

// StoredTriple extends Triple with the graph it lives in, an insertion
// id, a monotonic logical timestamp, and its provenance.
type StoredTriple struct {
	ID         TripleID
	Graph      GraphID
	Triple     Triple
	AssertedAt uint64 // monotonic insertion sequence, not wall-clock
	Provenance Provenance
}
