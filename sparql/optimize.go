package sparql

import (
	"sort"

	"github.com/vigilgraph/reasoner/store"
)

// PushDownFilters rewrites a, moving each Filter below an enclosing
// Join onto whichever side fully determines the filter expression's
// variables, so the filter discards rows before the join's cross
// product grows instead of after. A filter that can't be pushed onto
// either side (it mixes variables from both) stays where it is.
func PushDownFilters(a Algebra) Algebra {
	switch t := a.(type) {
	case Filter:
		child := PushDownFilters(t.Child)
		if join, ok := child.(Join); ok {
			exprVars := t.Expr.Vars()
			leftVars := varsOf(join.Left)
			if subsetOf(exprVars, leftVars) {
				return Join{Left: Filter{Expr: t.Expr, Child: join.Left}, Right: join.Right}
			}
			rightVars := varsOf(join.Right)
			if subsetOf(exprVars, rightVars) {
				return Join{Left: join.Left, Right: Filter{Expr: t.Expr, Child: join.Right}}
			}
		}
		return Filter{Expr: t.Expr, Child: child}
	case Join:
		return Join{Left: PushDownFilters(t.Left), Right: PushDownFilters(t.Right)}
	case LeftJoin:
		return LeftJoin{Left: PushDownFilters(t.Left), Right: PushDownFilters(t.Right), Filter: t.Filter}
	case Union:
		return Union{Left: PushDownFilters(t.Left), Right: PushDownFilters(t.Right)}
	case Project:
		return Project{Vars: t.Vars, Child: PushDownFilters(t.Child)}
	default:
		return a
	}
}

// varsOf returns the set of variables a guarantees to bind, used to
// decide whether a filter expression can be pushed entirely onto one
// join side.
func varsOf(a Algebra) map[Var]bool {
	out := make(map[Var]bool)
	switch t := a.(type) {
	case BGP:
		for _, p := range t.Patterns {
			for _, v := range p.Vars() {
				out[v] = true
			}
		}
	case Join:
		addAll(out, varsOf(t.Left))
		addAll(out, varsOf(t.Right))
	case LeftJoin:
		addAll(out, varsOf(t.Left))
		addAll(out, varsOf(t.Right))
	case Union:
		addAll(out, varsOf(t.Left))
		addAll(out, varsOf(t.Right))
	case Filter:
		addAll(out, varsOf(t.Child))
	case Project:
		for _, v := range t.Vars {
			out[v] = true
		}
	}
	return out
}

func addAll(dst, src map[Var]bool) {
	for v := range src {
		dst[v] = true
	}
}

func subsetOf(vars []Var, set map[Var]bool) bool {
	for _, v := range vars {
		if !set[v] {
			return false
		}
	}
	return true
}

// ReorderJoins rewrites every Join subtree of a into ascending
// estimated-cost order (smallest posting list first), per spec's
// cost-based join reordering using C2's Stats/PostingSize. Non-Join
// algebra nodes (BGP leaves, and anything already optimized below a
// Filter/Project/LeftJoin/Union boundary) are left as leaves of the
// reordering, not descended into further for cost purposes.
func ReorderJoins(a Algebra, g *store.Graph) Algebra {
	switch t := a.(type) {
	case Join:
		leaves := flattenJoins(t)
		for i := range leaves {
			leaves[i] = ReorderJoins(leaves[i], g)
		}
		sort.SliceStable(leaves, func(i, j int) bool {
			return estimateCost(leaves[i], g) < estimateCost(leaves[j], g)
		})
		out := leaves[0]
		for _, l := range leaves[1:] {
			out = Join{Left: out, Right: l}
		}
		return out
	case Filter:
		return Filter{Expr: t.Expr, Child: ReorderJoins(t.Child, g)}
	case Project:
		return Project{Vars: t.Vars, Child: ReorderJoins(t.Child, g)}
	case LeftJoin:
		return LeftJoin{Left: ReorderJoins(t.Left, g), Right: ReorderJoins(t.Right, g), Filter: t.Filter}
	case Union:
		return Union{Left: ReorderJoins(t.Left, g), Right: ReorderJoins(t.Right, g)}
	default:
		return a
	}
}

func flattenJoins(a Algebra) []Algebra {
	j, ok := a.(Join)
	if !ok {
		return []Algebra{a}
	}
	return append(flattenJoins(j.Left), flattenJoins(j.Right)...)
}

// estimateCost approximates the row count a leaf will produce: a BGP's
// cost is the sum of each pattern's smallest bound-position posting
// list (the same index Match itself would pick), falling back to the
// graph's total triple count for a fully unbound pattern or a non-BGP
// leaf the optimizer doesn't otherwise see into.
func estimateCost(a Algebra, g *store.Graph) int {
	switch t := a.(type) {
	case BGP:
		total := 0
		for _, p := range t.Patterns {
			total += patternCost(g, p)
		}
		return total
	case Filter:
		return estimateCost(t.Child, g)
	case Project:
		return estimateCost(t.Child, g)
	default:
		return g.Stats().TripleCount
	}
}

func patternCost(g *store.Graph, p TriplePattern) int {
	best := -1
	consider := func(slot Term, dir store.Direction) {
		if slot.IsVar() {
			return
		}
		h, ok := g.Handle(slot.Bound())
		if !ok {
			best = 0
			return
		}
		n, ok := g.PostingSize(dir, h)
		if !ok {
			return
		}
		if best == -1 || n < best {
			best = n
		}
	}
	consider(p.Subject, store.DirSubject)
	consider(p.Predicate, store.DirPredicate)
	consider(p.Object, store.DirObject)
	if best == -1 {
		return g.Stats().TripleCount
	}
	return best
}
