package orchestrator

import (
	"context"

	"github.com/vigilgraph/reasoner/sparql"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// Bindings is one solution mapping a rule's pattern variables resolved
// to, handed to Guard and Emit.
type Bindings = sparql.Binding

// Rule is domain knowledge expressed as data rather than code: a
// pattern to match against the closed store, a guard narrowing which
// matches fire, and an emit function building the resulting proposal.
// The rule engine is a small interpreter over this structure, grounded
// on the same declarative composition the store's own query algebra
// uses rather than a class hierarchy of rule types. Guard and Emit
// return an error so a rule can report a malformed binding as an
// errs.InputError rather than panicking or silently misfiring; fire
// stops at the first such error and the orchestrator records it against
// this rule alone, without aborting the rules still to come.
type Rule struct {
	Name    string
	Pattern []sparql.TriplePattern
	Guard   func(Bindings) (bool, error)
	Emit    func(Bindings) (ProposedAction, error)
}

// fire evaluates r.Pattern against g, keeping only solutions that pass
// Guard, and returns one ProposedAction plus its evidence (the matched
// triples' ids) per surviving solution. It returns whatever solutions
// were already fired alongside a non-nil error the moment Guard or Emit
// fails, so the caller can decide whether a partial result is still
// worth keeping.
func (r Rule) fire(ctx context.Context, g *store.Graph) ([]firedAction, error) {
	stream, err := (sparql.BGP{Patterns: r.Pattern}).Eval(ctx, g)
	if err != nil {
		return nil, err
	}

	var out []firedAction
	for stream.Next() {
		sol := stream.Binding()
		if r.Guard != nil {
			ok, err := r.Guard(sol)
			if err != nil {
				return out, err
			}
			if !ok {
				continue
			}
		}
		action, err := r.Emit(sol)
		if err != nil {
			return out, err
		}
		evidence := evidenceFor(g, sol, r.Pattern)
		out = append(out, firedAction{rule: r.Name, action: action, evidence: evidence})
	}
	return out, nil
}

type firedAction struct {
	rule     string
	action   ProposedAction
	evidence []store.TripleID
}

// evidenceFor re-resolves each pattern against g with sol's bindings
// substituted in, recovering the concrete stored triple ids a solution
// was derived from — the premise closure every ProposedAction carries
// as its audit trail back to sensor triples.
func evidenceFor(g *store.Graph, sol Bindings, patterns []sparql.TriplePattern) []store.TripleID {
	var ids []store.TripleID
	for _, p := range patterns {
		pattern := store.Pattern{}
		if t, ok := resolveTerm(sol, p.Subject); ok {
			pattern = pattern.BindSubject(t)
		}
		if t, ok := resolveTerm(sol, p.Predicate); ok {
			pattern = pattern.BindPredicate(t)
		}
		if t, ok := resolveTerm(sol, p.Object); ok {
			pattern = pattern.BindObject(t)
		}
		cur := g.Match(pattern)
		if cur.Next() {
			ids = append(ids, cur.Triple().ID)
		}
	}
	return ids
}

func resolveTerm(sol Bindings, t sparql.Term) (term.Term, bool) {
	if !t.IsVar() {
		return t.Bound(), true
	}
	v, ok := sol[t.Var()]
	return v, ok
}
