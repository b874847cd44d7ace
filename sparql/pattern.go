// Package sparql implements the basic SPARQL algebra evaluator:
// BGP/Join/LeftJoin/Union/Filter/Project over the triple store, with
// filter push-down and cost-based join reordering. Evaluation is
// pull-based over slice-backed solution streams in the style of
// store.Cursor, rather than a push-based iterator tree: each Eval call
// fully computes its rows up front, trading deferred computation for
// cheap re-iteration and a uniform consumer API.
package sparql

import "github.com/vigilgraph/reasoner/term"

// Var names an unbound SPARQL variable, e.g. "x" for "?x".
type Var string

// Term is one slot of a triple pattern: either a bound RDF term or an
// unbound variable. Exactly one of the two is meaningful, selected by
// IsVar.
type Term struct {
	variable Var
	bound    term.Term
	isVar    bool
}

// V constructs a variable pattern term.
func V(name Var) Term { return Term{variable: name, isVar: true} }

// B constructs a bound pattern term.
func B(t term.Term) Term { return Term{bound: t} }

// IsVar reports whether t is an unbound variable slot.
func (t Term) IsVar() bool { return t.isVar }

// Var returns t's variable name; meaningful only when IsVar is true.
func (t Term) Var() Var { return t.variable }

// Bound returns t's bound term; meaningful only when IsVar is false.
func (t Term) Bound() term.Term { return t.bound }

// TriplePattern is one BGP member: three pattern-term slots matched
// against C2 positionally.
type TriplePattern struct {
	Subject, Predicate, Object Term
}

// Vars returns the distinct variables p mentions, in subject/predicate/
// object order.
func (p TriplePattern) Vars() []Var {
	var out []Var
	seen := make(map[Var]bool)
	add := func(t Term) {
		if t.IsVar() && !seen[t.Var()] {
			seen[t.Var()] = true
			out = append(out, t.Var())
		}
	}
	add(p.Subject)
	add(p.Predicate)
	add(p.Object)
	return out
}

// Binding maps a variable to the term bound to it in one solution. A
// variable absent from the map is unbound in that solution (as
// LeftJoin's unmatched right side produces).
type Binding map[Var]term.Term

// Clone returns a shallow copy of b, safe to extend without mutating
// the original.
func (b Binding) Clone() Binding {
	out := make(Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// compatible reports whether b and other agree on every variable both
// bind, the join-compatibility test hash-join and LeftJoin both use.
func (b Binding) compatible(other Binding) bool {
	for k, v := range other {
		if existing, ok := b[k]; ok && !existing.Equal(v) {
			return false
		}
	}
	return true
}

// merge returns a new Binding holding every pair from b and other.
// Callers must check compatible first; merge does not re-check.
func (b Binding) merge(other Binding) Binding {
	out := b.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}
