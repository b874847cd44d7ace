package owldl

import (
	"context"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/internal/clog"
	"github.com/vigilgraph/reasoner/internal/rconfig"
	"github.com/vigilgraph/reasoner/reason/owllite"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/owl"
)

func maxDepth() int { return rconfig.Default().MaxTableauDepth }

// Result summarizes one Close call, mirroring reason/owllite.Result.
type Result struct {
	Consistent bool
	Derived    int
	Clash      *owllite.Clash
}

// Close loads the OWL DL terminology from g (owllite's axioms plus
// intersectionOf/unionOf/complementOf/oneOf and sameAs/differentFrom),
// checks ABox consistency with pairwise blocking, and — per testable
// property 5 — must agree with reason/owllite.Close whenever g's TBox
// happens to stay inside the OWL Lite fragment, since both share the
// same ⊓/⊔/∃/∀/⊑/hasValue core. sameAs facts are not merged into the
// tableau (the safe default: both individuals are preserved and linked
// by the stored owl:sameAs triple rather than rewriting provenance);
// a differentFrom fact clashes only when both of its names resolve to
// the same individual node, and maxCardinality clash detection does not
// consult differentFrom facts. The ConsistencyError returned for an
// inconsistent ABox carries no premise triple ids.
func Close(ctx context.Context, g *store.Graph) (*Result, error) {
	tb, sames, diffs, err := LoadTBox(g)
	if err != nil {
		return nil, err
	}
	_ = sames // preserved in the store as-is; see doc comment above

	tab := NewTableau(tb, maxDepth())

	clog.Infof("owldl: checking ABox consistency")
	consistent, clash, err := checkABoxConsistency(ctx, g, tab, diffs)
	if err != nil {
		return nil, err
	}
	if !consistent {
		reason := ""
		if clash != nil {
			reason = clash.Reason
		}
		return &Result{Consistent: false, Clash: clash}, errs.Consistency("owl dl: "+reason, nil)
	}

	derived, err := classify(ctx, g, tab)
	if err != nil {
		return nil, err
	}
	return &Result{Consistent: true, Derived: derived}, nil
}

// Consistency reports whether g's ABox is consistent under its OWL DL
// terminology, without materializing anything back.
func Consistency(g *store.Graph) (bool, *owllite.Clash, error) {
	tb, _, diffs, err := LoadTBox(g)
	if err != nil {
		return false, nil, err
	}
	return checkABoxConsistency(context.Background(), g, NewTableau(tb, maxDepth()), diffs)
}

// Subsumption reports whether named class a is subsumed by named class
// b under g's OWL DL terminology.
func Subsumption(g *store.Graph, a, b string) (bool, error) {
	tb, _, _, err := LoadTBox(g)
	if err != nil {
		return false, err
	}
	tab := NewTableau(tb, maxDepth())
	return tab.Subsumes(owllite.Name(a), owllite.Name(b)), nil
}

func checkABoxConsistency(ctx context.Context, g *store.Graph, tab *owllite.Tableau, diffs []DifferentFact) (bool, *owllite.Clash, error) {
	s, err := loadABox(g, tab.TBox)
	if err != nil {
		return false, nil, err
	}

	for _, d := range diffs {
		a, b := s.EnsureIndividual(d.A), s.EnsureIndividual(d.B)
		if a == b {
			return false, &owllite.Clash{Reason: "differentFrom asserts " + d.A + " distinct from itself"}, nil
		}
	}

	for _, id := range s.NodeIDs() {
		if err := ctx.Err(); err != nil {
			return false, nil, errs.Wrap(errs.Cancelled, "owl dl: consistency check cancelled", err)
		}
		ok, clash := tab.SatisfiableNode(s, id)
		if !ok {
			return false, clash, nil
		}
	}
	return true, nil, nil
}

func loadABox(g *store.Graph, tb *owllite.TBox) (*owllite.State, error) {
	s := owllite.NewState()

	cur := g.Match(store.Pattern{})
	for cur.Next() {
		row := cur.Triple().Triple
		if !row.Subject.IsIRI() && !row.Subject.IsBlank() {
			continue
		}
		subjID := s.EnsureIndividual(row.Subject.Lexical)

		if row.Predicate.Equal(typeIRI) {
			if isOntologyBuiltin(row.Object.Lexical) {
				continue
			}
			expr, err := ResolveClassExpr(g, row.Object)
			if err != nil {
				return nil, err
			}
			s.AddLabel(subjID, expr)
			continue
		}
		if isSchemaPredicate(row.Predicate) {
			continue
		}
		if row.Object.IsIRI() || row.Object.IsBlank() {
			objID := s.EnsureIndividual(row.Object.Lexical)
			s.AddEdge(subjID, row.Predicate.Lexical, objID)
			if tb.Symmetric[row.Predicate.Lexical] {
				s.AddEdge(objID, row.Predicate.Lexical, subjID)
			}
		}
	}
	return s, nil
}

func isOntologyBuiltin(classIRI string) bool {
	switch classIRI {
	case owl.Class, owl.Restriction, owl.ObjectProperty, owl.DatatypeProperty, owl.AllDifferent:
		return true
	}
	return false
}

func isSchemaPredicate(p term.Term) bool {
	switch p.Lexical {
	case owl.EquivalentClass, owl.DisjointWith, owl.OnProperty, owl.SomeValuesFrom,
		owl.AllValuesFrom, owl.HasValue, owl.MinCardinality, owl.MaxCardinality,
		owl.Cardinality, owl.InverseOf, owl.IntersectionOf, owl.UnionOf, owl.OneOf,
		owl.SameAs, owl.DifferentFrom, owl.DistinctMembers:
		return true
	}
	return p.Equal(subClassOfIRI)
}

// classify tests subsumption between every named class pair the TBox
// mentions and materializes newly-entailed subClassOf edges, then
// re-derives rdf:type for every individual against the closure.
func classify(ctx context.Context, g *store.Graph, tab *owllite.Tableau) (int, error) {
	classes := namedClasses(tab.TBox)
	derived := 0

	for _, a := range classes {
		if err := ctx.Err(); err != nil {
			return derived, errs.Wrap(errs.Cancelled, "owl dl: classification cancelled", err)
		}
		for _, b := range classes {
			if a == b || !tab.Subsumes(owllite.Name(a), owllite.Name(b)) {
				continue
			}
			_, err := g.Insert(
				store.Triple{Subject: term.IRI(a), Predicate: subClassOfIRI, Object: term.IRI(b)},
				store.Inferred("owldl:tableau", nil),
			)
			if err == nil {
				derived++
			}
		}
	}

	cur := g.Match(store.Pattern{}.BindPredicate(subClassOfIRI))
	var edges []store.Triple
	for cur.Next() {
		edges = append(edges, cur.Triple().Triple)
	}
	for _, e := range edges {
		typed := g.Match(store.Pattern{}.BindPredicate(typeIRI).BindObject(e.Subject))
		for typed.Next() {
			row := typed.Triple()
			_, err := g.Insert(
				store.Triple{Subject: row.Triple.Subject, Predicate: typeIRI, Object: e.Object},
				store.Inferred("owldl:tableau", []store.TripleID{row.ID}),
			)
			if err == nil {
				derived++
			}
		}
	}
	return derived, nil
}

func namedClasses(tb *owllite.TBox) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for c, supers := range tb.SuperClasses {
		add(c)
		for _, s := range supers {
			if s.Kind == owllite.ExprNamed {
				add(s.Named)
			}
		}
	}
	for c, ds := range tb.Disjoint {
		add(c)
		for _, d := range ds {
			add(d)
		}
	}
	return out
}
