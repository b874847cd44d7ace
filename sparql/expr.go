package sparql

import (
	"strconv"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/xsd"
)

// exprKind tags the shape of one Expr node.
type exprKind uint8

const (
	exprConst exprKind = iota
	exprVar
	exprAnd
	exprOr
	exprNot
	exprEq
	exprNeq
	exprLt
	exprLe
	exprGt
	exprGe
	exprBound
)

// Expr is a FILTER expression tree, evaluated per-solution to a 3-valued
// result (true, false, or a type/unbound error that a Filter node treats
// as false per standard SPARQL semantics).
type Expr struct {
	kind     exprKind
	variable Var
	value    term.Term
	boolean  bool
	operands []Expr
}

// True constructs the constant filter expression that always passes.
func True() Expr { return Expr{kind: exprConst, boolean: true} }

// False constructs the constant filter expression that always fails —
// Filter.Eval short-circuits a Filter wrapping this to an empty
// result rather than evaluating the child at all.
func False() Expr { return Expr{kind: exprConst, boolean: false} }

// VarRef references a variable's bound value in an expression.
func VarRef(v Var) Expr { return Expr{kind: exprVar, variable: v} }

// Const wraps a literal RDF term as a constant expression operand.
func Const(t term.Term) Expr { return Expr{kind: exprConst, value: t, boolean: true} }

// And is logical conjunction; either operand erroring or being false
// makes the conjunction false.
func And(a, b Expr) Expr { return Expr{kind: exprAnd, operands: []Expr{a, b}} }

// Or is logical disjunction.
func Or(a, b Expr) Expr { return Expr{kind: exprOr, operands: []Expr{a, b}} }

// Not negates a.
func Not(a Expr) Expr { return Expr{kind: exprNot, operands: []Expr{a}} }

// Eq builds an equality comparison.
func Eq(a, b Expr) Expr { return Expr{kind: exprEq, operands: []Expr{a, b}} }

// Neq builds an inequality comparison.
func Neq(a, b Expr) Expr { return Expr{kind: exprNeq, operands: []Expr{a, b}} }

// Lt builds a less-than comparison.
func Lt(a, b Expr) Expr { return Expr{kind: exprLt, operands: []Expr{a, b}} }

// Le builds a less-than-or-equal comparison.
func Le(a, b Expr) Expr { return Expr{kind: exprLe, operands: []Expr{a, b}} }

// Gt builds a greater-than comparison.
func Gt(a, b Expr) Expr { return Expr{kind: exprGt, operands: []Expr{a, b}} }

// Ge builds a greater-than-or-equal comparison.
func Ge(a, b Expr) Expr { return Expr{kind: exprGe, operands: []Expr{a, b}} }

// Bound tests whether v is bound in the solution being evaluated.
func Bound(v Var) Expr { return Expr{kind: exprBound, variable: v} }

// ErrUnboundVariable marks a filter referencing a variable absent from
// the current solution; the row is dropped, not the whole query.
var ErrUnboundVariable = errs.New(errs.InputError, "sparql: unbound variable in filter expression")

// ErrTypeMismatch marks a comparison between operands with no ordering
// (non-numeric, non-equal-typed literals); the row is dropped.
var ErrTypeMismatch = errs.New(errs.InputError, "sparql: type mismatch in filter expression")

// Vars returns every variable e references, including operands.
func (e Expr) Vars() []Var {
	var out []Var
	e.collectVars(&out)
	return out
}

func (e Expr) collectVars(out *[]Var) {
	if e.kind == exprVar || e.kind == exprBound {
		*out = append(*out, e.variable)
	}
	for _, op := range e.operands {
		op.collectVars(out)
	}
}

// Eval evaluates e against sol, returning the boolean result. An error
// return (ErrUnboundVariable or ErrTypeMismatch) means the caller should
// treat the row as filtered out, per the 3-valued SPARQL FILTER rule.
func (e Expr) Eval(sol Binding) (bool, error) {
	switch e.kind {
	case exprConst:
		return e.boolean, nil
	case exprVar:
		if _, ok := sol[e.variable]; !ok {
			return false, ErrUnboundVariable
		}
		return true, nil
	case exprBound:
		_, ok := sol[e.variable]
		return ok, nil
	case exprAnd:
		a, errA := e.operands[0].Eval(sol)
		b, errB := e.operands[1].Eval(sol)
		if errA != nil || errB != nil {
			return false, firstErr(errA, errB)
		}
		return a && b, nil
	case exprOr:
		a, errA := e.operands[0].Eval(sol)
		b, errB := e.operands[1].Eval(sol)
		if errA == nil && a {
			return true, nil
		}
		if errB == nil && b {
			return true, nil
		}
		if errA != nil || errB != nil {
			return false, firstErr(errA, errB)
		}
		return false, nil
	case exprNot:
		v, err := e.operands[0].Eval(sol)
		if err != nil {
			return false, err
		}
		return !v, nil
	case exprEq, exprNeq, exprLt, exprLe, exprGt, exprGe:
		return e.evalCompare(sol)
	default:
		return false, ErrTypeMismatch
	}
}

func firstErr(a, b error) error {
	if a != nil {
		return a
	}
	return b
}

func (e Expr) evalCompare(sol Binding) (bool, error) {
	left, ok := e.operands[0].resolve(sol)
	if !ok {
		return false, ErrUnboundVariable
	}
	right, ok := e.operands[1].resolve(sol)
	if !ok {
		return false, ErrUnboundVariable
	}

	if e.kind == exprEq {
		return left.Equal(right), nil
	}
	if e.kind == exprNeq {
		return !left.Equal(right), nil
	}

	lv, lok := numericValue(left)
	rv, rok := numericValue(right)
	if !lok || !rok {
		return false, ErrTypeMismatch
	}
	switch e.kind {
	case exprLt:
		return lv < rv, nil
	case exprLe:
		return lv <= rv, nil
	case exprGt:
		return lv > rv, nil
	case exprGe:
		return lv >= rv, nil
	}
	return false, ErrTypeMismatch
}

// resolve returns e's bound term against sol: a constant resolves to
// itself, a variable reference resolves to its binding.
func (e Expr) resolve(sol Binding) (term.Term, bool) {
	switch e.kind {
	case exprConst:
		return e.value, true
	case exprVar:
		t, ok := sol[e.variable]
		return t, ok
	default:
		return term.Term{}, false
	}
}

// numericValue extracts a float64 from a numeric-typed literal, used
// for <, <=, >, >= comparisons.
func numericValue(t term.Term) (float64, bool) {
	if !t.IsLiteral() {
		return 0, false
	}
	switch t.Datatype {
	case xsd.Integer, xsd.Decimal, xsd.Double, xsd.Float, "":
		f, err := strconv.ParseFloat(t.Lexical, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
