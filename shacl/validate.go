package shacl

import (
	"context"
	"regexp"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/sparql"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/rdf"
	"github.com/vigilgraph/reasoner/vocab/sh"
)

// Result is one constraint violation (or, for a severity-agnostic
// caller, any reported finding), shaped after the SHACL validation
// report vocabulary.
type Result struct {
	FocusNode                 term.Term
	ResultPath                term.Term
	Value                     term.Term
	SourceShape               term.Term
	SourceConstraintComponent term.Term
	Severity                  term.Term
}

// Report is the outcome of validating a data graph against a set of
// shapes: Conforms is true exactly when Results is empty (testable
// property 7).
type Report struct {
	Conforms bool
	Results  []Result
}

// Validate checks data against shapes, selecting each shape's targets
// (sh:targetClass instances via rdf:type, plus sh:targetNode) and
// evaluating every nested property shape's constraints over the value
// multiset sparql retrieves for focusNode/path.
func Validate(ctx context.Context, data *store.Graph, shapes []Shape) (*Report, error) {
	report := &Report{Conforms: true}
	for _, shape := range shapes {
		focusNodes := targetsOf(data, shape)
		for _, focus := range focusNodes {
			if err := ctx.Err(); err != nil {
				return nil, errs.Wrap(errs.Cancelled, "shacl: validation cancelled", err)
			}
			for _, ps := range shape.Properties {
				results, err := checkProperty(ctx, data, shape, ps, focus)
				if err != nil {
					return nil, err
				}
				report.Results = append(report.Results, results...)
			}
		}
	}
	report.Conforms = len(report.Results) == 0
	return report, nil
}

func targetsOf(g *store.Graph, shape Shape) []term.Term {
	var out []term.Term
	seen := make(map[string]bool)
	add := func(t term.Term) {
		if !seen[t.String()] {
			seen[t.String()] = true
			out = append(out, t)
		}
	}
	for _, n := range shape.TargetNode {
		add(n)
	}
	for _, class := range shape.TargetClass {
		cur := g.Match(store.Pattern{}.BindPredicate(term.IRI(rdf.Type)).BindObject(class))
		for cur.Next() {
			add(cur.Triple().Triple.Subject)
		}
	}
	return out
}

func valuesOf(ctx context.Context, g *store.Graph, focus, path term.Term) ([]term.Term, error) {
	rows, err := sparql.Select(ctx, g, []sparql.Var{"v"}, sparql.BGP{Patterns: []sparql.TriplePattern{
		{Subject: sparql.B(focus), Predicate: sparql.B(path), Object: sparql.V("v")},
	}})
	if err != nil {
		return nil, err
	}
	values := make([]term.Term, 0, len(rows))
	for _, r := range rows {
		values = append(values, r["v"])
	}
	return values, nil
}

func checkProperty(ctx context.Context, data *store.Graph, shape Shape, ps PropertyShape, focus term.Term) ([]Result, error) {
	values, err := valuesOf(ctx, data, focus, ps.Path)
	if err != nil {
		return nil, err
	}

	severity := ps.Severity
	if severity == (term.Term{}) {
		severity = shape.Severity
	}
	if severity == (term.Term{}) {
		severity = term.IRI(sh.Violation)
	}

	result := func(component, value term.Term) Result {
		return Result{
			FocusNode:                 focus,
			ResultPath:                ps.Path,
			Value:                     value,
			SourceShape:               shape.ID,
			SourceConstraintComponent: component,
			Severity:                  severity,
		}
	}

	var out []Result

	if ps.MinCount != nil && len(values) < *ps.MinCount {
		out = append(out, result(term.IRI(sh.MinCountConstraintComponent), term.Term{}))
	}
	if ps.MaxCount != nil && len(values) > *ps.MaxCount {
		out = append(out, result(term.IRI(sh.MaxCountConstraintComponent), term.Term{}))
	}

	for _, v := range values {
		if ps.Class != nil && !instanceOf(data, v, *ps.Class) {
			out = append(out, result(term.IRI(sh.ClassConstraintComponent), v))
		}
		if ps.Datatype != nil && v.Datatype != ps.Datatype.Lexical {
			out = append(out, result(term.IRI(sh.DatatypeConstraintComponent), v))
		}
		if len(ps.In) > 0 && !memberOf(v, ps.In) {
			out = append(out, result(term.IRI(sh.InConstraintComponent), v))
		}
		if ps.Pattern != nil {
			if ok, _ := regexp.MatchString(*ps.Pattern, v.Lexical); !ok {
				out = append(out, result(term.IRI(sh.PatternConstraintComponent), v))
			}
		}
		if ps.MinLength != nil && len(v.Lexical) < *ps.MinLength {
			out = append(out, result(term.IRI(sh.MinLengthConstraintComponent), v))
		}
		if ps.MaxLength != nil && len(v.Lexical) > *ps.MaxLength {
			out = append(out, result(term.IRI(sh.MaxLengthConstraintComponent), v))
		}
	}

	if ps.HasValue != nil && !memberOf(*ps.HasValue, values) {
		out = append(out, result(term.IRI(sh.HasValueConstraintComponent), *ps.HasValue))
	}

	return out, nil
}

func instanceOf(g *store.Graph, node, class term.Term) bool {
	cur := g.Match(store.Pattern{}.BindSubject(node).BindPredicate(term.IRI(rdf.Type)).BindObject(class))
	return cur.Next()
}

func memberOf(v term.Term, set []term.Term) bool {
	for _, s := range set {
		if s.Equal(v) {
			return true
		}
	}
	return false
}
