package sparql

import (
	"context"

	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// Select evaluates algebra and projects each solution onto vars,
// optimizing the tree (filter push-down, then join reordering) before
// evaluation. algebra is typically already wrapped in Project, but
// Select accepts the unprojected tree directly so callers don't have
// to build the Project node themselves.
func Select(ctx context.Context, g *store.Graph, vars []Var, algebra Algebra) ([]Binding, error) {
	plan := optimize(algebra, g)
	stream, err := Project{Vars: vars, Child: plan}.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	return stream.Rows(), nil
}

// Ask reports whether algebra's optimized solution sequence is
// non-empty.
func Ask(ctx context.Context, g *store.Graph, algebra Algebra) (bool, error) {
	plan := optimize(algebra, g)
	stream, err := plan.Eval(ctx, g)
	if err != nil {
		return false, err
	}
	return stream.Next(), nil
}

// ConstructTemplate is one triple pattern in a CONSTRUCT template: its
// slots are resolved per solution the same way a BGP pattern's bound
// slots are, but unbound-variable slots here simply drop the candidate
// triple rather than constraining a store lookup.
type ConstructTemplate = TriplePattern

// Construct evaluates algebra and instantiates template once per
// solution, returning every triple whose slots were all resolvable
// (skipping a solution that leaves a template variable unbound, per
// standard CONSTRUCT semantics).
func Construct(ctx context.Context, g *store.Graph, template []ConstructTemplate, algebra Algebra) ([]store.Triple, error) {
	plan := optimize(algebra, g)
	stream, err := plan.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	var out []store.Triple
	for stream.Next() {
		sol := stream.Binding()
		for _, tpl := range template {
			s, ok1 := resolveSlot(sol, tpl.Subject)
			p, ok2 := resolveSlot(sol, tpl.Predicate)
			o, ok3 := resolveSlot(sol, tpl.Object)
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			out = append(out, store.Triple{Subject: s, Predicate: p, Object: o})
		}
	}
	return out, nil
}

// Describe returns the concise bounded description of resource:
// every triple with resource as subject, plus — recursively, following
// blank-node objects only, per the CBD definition — every triple
// reachable that way, cycle-guarded by a visited set.
func Describe(g *store.Graph, resource term.Term) []store.Triple {
	var out []store.Triple
	visited := map[string]bool{}
	describeWalk(g, resource, visited, &out)
	return out
}

func describeWalk(g *store.Graph, subject term.Term, visited map[string]bool, out *[]store.Triple) {
	key := subject.String()
	if visited[key] {
		return
	}
	visited[key] = true

	cur := g.Match(store.Pattern{}.BindSubject(subject))
	for cur.Next() {
		row := cur.Triple().Triple
		*out = append(*out, row)
		if row.Object.IsBlank() {
			describeWalk(g, row.Object, visited, out)
		}
	}
}

// optimize applies the optimizer pipeline: filter push-down first, then
// cost-based join reordering (a Filter's cost estimate is its child's).
func optimize(a Algebra, g *store.Graph) Algebra {
	return ReorderJoins(PushDownFilters(a), g)
}
