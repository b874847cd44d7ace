package sparql

import (
	"context"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// Algebra is one node of a SPARQL algebra tree: BGP, Join, LeftJoin,
// Union, Filter, or Project, each implementing a single Eval
// entry-point rather than exposing its internal combinators.
type Algebra interface {
	Eval(ctx context.Context, g *store.Graph) (*SolutionStream, error)
}

// BGP is a basic graph pattern: a conjunction of triple patterns
// evaluated pattern-by-pattern against the store, each pattern
// restricting the running set of partial solutions.
type BGP struct {
	Patterns []TriplePattern
}

// Eval implements Algebra. The empty BGP yields the single empty
// solution (the algebra identity), matching SPARQL's treatment of the
// empty group graph pattern.
func (b BGP) Eval(ctx context.Context, g *store.Graph) (*SolutionStream, error) {
	partial := []Binding{{}}
	for _, p := range b.Patterns {
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(errs.Cancelled, "sparql: BGP evaluation cancelled", err)
		}
		var next []Binding
		for _, sol := range partial {
			next = append(next, extendByPattern(g, sol, p)...)
		}
		partial = next
		if len(partial) == 0 {
			break
		}
	}
	return newStream(partial), nil
}

// extendByPattern binds p's pattern terms against sol, substituting any
// variable p shares with sol as a bound constraint, and returns one
// extended solution per matching store row.
func extendByPattern(g *store.Graph, sol Binding, p TriplePattern) []Binding {
	pattern := store.Pattern{}
	if t, ok := resolveSlot(sol, p.Subject); ok {
		pattern = pattern.BindSubject(t)
	}
	if t, ok := resolveSlot(sol, p.Predicate); ok {
		pattern = pattern.BindPredicate(t)
	}
	if t, ok := resolveSlot(sol, p.Object); ok {
		pattern = pattern.BindObject(t)
	}

	var out []Binding
	cur := g.Match(pattern)
	for cur.Next() {
		row := cur.Triple().Triple
		ext := sol.Clone()
		if !bindSlot(ext, p.Subject, row.Subject) {
			continue
		}
		if !bindSlot(ext, p.Predicate, row.Predicate) {
			continue
		}
		if !bindSlot(ext, p.Object, row.Object) {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// resolveSlot returns the store term a pattern slot constrains Match
// to, consulting sol when the slot is a variable already bound in the
// running partial solution.
func resolveSlot(sol Binding, slot Term) (term.Term, bool) {
	if !slot.IsVar() {
		return slot.Bound(), true
	}
	t, ok := sol[slot.Var()]
	return t, ok
}

// bindSlot extends sol in place with slot's binding to value, reporting
// false if slot is a variable already bound to a different term (e.g.
// `?x :knows ?x` matched against a row where subject != object).
func bindSlot(sol Binding, slot Term, value term.Term) bool {
	if !slot.IsVar() {
		return slot.Bound().Equal(value)
	}
	if existing, ok := sol[slot.Var()]; ok {
		return existing.Equal(value)
	}
	sol[slot.Var()] = value
	return true
}

// Join joins Left and Right on their shared variables by pairing every
// Left row with every compatible Right row; no lookup table keyed by the
// shared variables is built.
type Join struct {
	Left, Right Algebra
}

// Eval implements Algebra.
func (j Join) Eval(ctx context.Context, g *store.Graph) (*SolutionStream, error) {
	left, err := j.Left.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	right, err := j.Right.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	return newStream(hashJoin(left.Rows(), right.Rows())), nil
}

func hashJoin(left, right []Binding) []Binding {
	var out []Binding
	for _, l := range left {
		for _, r := range right {
			if l.compatible(r) {
				out = append(out, l.merge(r))
			}
		}
	}
	return out
}

// LeftJoin (SPARQL OPTIONAL) preserves every Left row: rows that join
// with at least one compatible, Filter-satisfying Right row are
// extended; rows with none are passed through with Right's variables
// left unbound.
type LeftJoin struct {
	Left, Right Algebra
	Filter      Expr
}

// Eval implements Algebra.
func (lj LeftJoin) Eval(ctx context.Context, g *store.Graph) (*SolutionStream, error) {
	left, err := lj.Left.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	right, err := lj.Right.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	rightRows := right.Rows()

	var out []Binding
	for _, l := range left.Rows() {
		matched := false
		for _, r := range rightRows {
			if !l.compatible(r) {
				continue
			}
			merged := l.merge(r)
			ok, evalErr := lj.Filter.Eval(merged)
			if evalErr != nil || !ok {
				continue
			}
			out = append(out, merged)
			matched = true
		}
		if !matched {
			out = append(out, l)
		}
	}
	return newStream(out), nil
}

// Union concatenates Left's and Right's solutions, preserving
// duplicates (SPARQL UNION semantics; DISTINCT is a separate operator
// this fragment does not implement).
type Union struct {
	Left, Right Algebra
}

// Eval implements Algebra.
func (u Union) Eval(ctx context.Context, g *store.Graph) (*SolutionStream, error) {
	left, err := u.Left.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	right, err := u.Right.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	rows := append(left.Rows(), right.Rows()...)
	return newStream(rows), nil
}

// Filter evaluates Expr per solution of Child, keeping rows that
// evaluate to true and dropping rows that evaluate to false or error
// (standard 3-valued SPARQL FILTER semantics).
type Filter struct {
	Expr  Expr
	Child Algebra
}

// Eval implements Algebra.
func (f Filter) Eval(ctx context.Context, g *store.Graph) (*SolutionStream, error) {
	if f.Expr.kind == exprConst && !f.Expr.boolean {
		return newStream(nil), nil // statically unsatisfiable: short-circuit without evaluating Child
	}
	child, err := f.Child.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	var out []Binding
	for child.Next() {
		sol := child.Binding()
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(errs.Cancelled, "sparql: filter evaluation cancelled", err)
		}
		ok, evalErr := f.Expr.Eval(sol)
		if evalErr != nil || !ok {
			continue
		}
		out = append(out, sol)
	}
	return newStream(out), nil
}

// Project restricts every solution of Child to Vars, dropping any other
// bound variables.
type Project struct {
	Vars  []Var
	Child Algebra
}

// Eval implements Algebra.
func (p Project) Eval(ctx context.Context, g *store.Graph) (*SolutionStream, error) {
	child, err := p.Child.Eval(ctx, g)
	if err != nil {
		return nil, err
	}
	var out []Binding
	for child.Next() {
		sol := child.Binding()
		projected := make(Binding, len(p.Vars))
		for _, v := range p.Vars {
			if t, ok := sol[v]; ok {
				projected[v] = t
			}
		}
		out = append(out, projected)
	}
	return newStream(out), nil
}
