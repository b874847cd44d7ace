package owllite

import (
	"context"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/internal/clog"
	"github.com/vigilgraph/reasoner/internal/rconfig"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/owl"
)

// maxDepth bounds tableau branching via rconfig's shared tunable rather
// than a package-private constant, so one deployment-wide setting also
// governs reason/owldl (which extends this package's tableau directly).
func maxDepth() int { return rconfig.Default().MaxTableauDepth }

// Result summarizes one Close call: whether the ABox is consistent under
// the TBox, and how many new subClassOf/type triples were materialized
// (classification only runs, and only derives triples, when consistent).
type Result struct {
	Consistent bool
	Derived    int
	Clash      *Clash
}

// ErrInconsistent is the sentinel Kind further reasoning calls compare
// against via errors.Is once Close has found the ontology unsatisfiable;
// per spec, it surfaces until the offending triple is retracted.
var ErrInconsistent = errs.New(errs.ConsistencyError, "")

// Close loads the TBox from g, checks ABox consistency, and — if
// consistent — classifies every named class pair declared in the TBox,
// materializing newly-entailed rdfs:subClassOf edges, then re-types
// every individual against the closure. Each derived triple's
// provenance rule id is "owllite:tableau". A derived rdfs:subClassOf
// triple records no premises; a derived rdf:type triple records the
// individual's asserted rdf:type triple as its premise. The
// ConsistencyError returned for an inconsistent ABox carries no premise
// triple ids.
func Close(ctx context.Context, g *store.Graph) (*Result, error) {
	tb, err := LoadTBox(g)
	if err != nil {
		return nil, err
	}

	tab := NewTableau(tb, maxDepth())

	clog.Infof("owllite: checking ABox consistency")
	consistent, clash, err := checkABoxConsistency(ctx, g, tab)
	if err != nil {
		return nil, err
	}
	if !consistent {
		reason := ""
		if clash != nil {
			reason = clash.Reason
		}
		return &Result{Consistent: false, Clash: clash}, errs.Consistency("owl lite: "+reason, nil)
	}

	derived, err := classify(ctx, g, tab)
	if err != nil {
		return nil, err
	}
	return &Result{Consistent: true, Derived: derived}, nil
}

// Consistency reports whether g's ABox is consistent under its own TBox,
// without materializing anything back.
func Consistency(g *store.Graph) (bool, *Clash, error) {
	tb, err := LoadTBox(g)
	if err != nil {
		return false, nil, err
	}
	return checkABoxConsistency(context.Background(), g, NewTableau(tb, maxDepth()))
}

// Subsumption reports whether named class a is subsumed by named class
// b under g's TBox (every a-instance is a b-instance).
func Subsumption(g *store.Graph, a, b string) (bool, error) {
	tb, err := LoadTBox(g)
	if err != nil {
		return false, err
	}
	tab := NewTableau(tb, maxDepth())
	return tab.Subsumes(Name(a), Name(b)), nil
}

// checkABoxConsistency builds one tableau node per individual mentioned
// in g (any IRI or blank node appearing as a triple subject), seeds its
// label from rdf:type assertions and its edges from object-property
// triples, and expands every node to a fixpoint.
func checkABoxConsistency(ctx context.Context, g *store.Graph, tab *Tableau) (bool, *Clash, error) {
	s, err := loadABox(g, tab.TBox)
	if err != nil {
		return false, nil, err
	}

	for id := range s.nodes {
		if err := ctx.Err(); err != nil {
			return false, nil, errs.Wrap(errs.Cancelled, "owl lite: consistency check cancelled", err)
		}
		ok, clash := tab.expand(s, id, 0)
		if !ok {
			return false, clash, nil
		}
	}
	return true, nil, nil
}

func loadABox(g *store.Graph, tb *TBox) (*state, error) {
	s := newState()
	idOf := make(map[string]int)

	ensure := func(individual string) int {
		if id, ok := idOf[individual]; ok {
			return id
		}
		n := s.fresh(nil)
		n.individual = individual
		n.ancestors = nil
		idOf[individual] = n.id
		return n.id
	}

	cur := g.Match(store.Pattern{})
	for cur.Next() {
		row := cur.Triple().Triple
		if !row.Subject.IsIRI() && !row.Subject.IsBlank() {
			continue
		}
		subjID := ensure(row.Subject.Lexical)

		if row.Predicate.Equal(typeIRI) {
			if row.Object.Lexical == owl.Class || row.Object.Lexical == owl.Restriction ||
				row.Object.Lexical == owl.ObjectProperty || row.Object.Lexical == owl.DatatypeProperty {
				continue
			}
			expr, err := resolveClassExpr(g, row.Object)
			if err != nil {
				return nil, err
			}
			s.addLabel(subjID, expr)
			continue
		}
		if isSchemaPredicate(row.Predicate) {
			continue
		}
		if row.Object.IsIRI() || row.Object.IsBlank() {
			objID := ensure(row.Object.Lexical)
			s.addEdge(subjID, row.Predicate.Lexical, objID)
			if tb.Symmetric[row.Predicate.Lexical] {
				s.addEdge(objID, row.Predicate.Lexical, subjID)
			}
		}
	}
	return s, nil
}

func isSchemaPredicate(p term.Term) bool {
	switch p.Lexical {
	case owl.EquivalentClass, owl.DisjointWith, owl.OnProperty, owl.SomeValuesFrom,
		owl.AllValuesFrom, owl.HasValue, owl.MinCardinality, owl.MaxCardinality,
		owl.InverseOf, owl.IntersectionOf, owl.UnionOf, owl.OneOf:
		return true
	}
	return p.Equal(subClassOfIRI)
}

// classify tests subsumption between every pair of named classes that
// appear in the TBox (as either side of a subClassOf/equivalentClass/
// disjointWith axiom), materializes any newly-entailed subClassOf edge,
// then re-derives rdf:type for every individual against the closure.
func classify(ctx context.Context, g *store.Graph, tab *Tableau) (int, error) {
	classes := namedClasses(tab.TBox)
	derived := 0

	for _, a := range classes {
		if err := ctx.Err(); err != nil {
			return derived, errs.Wrap(errs.Cancelled, "owl lite: classification cancelled", err)
		}
		for _, b := range classes {
			if a == b {
				continue
			}
			if !tab.Subsumes(Name(a), Name(b)) {
				continue
			}
			_, err := g.Insert(
				store.Triple{Subject: term.IRI(a), Predicate: subClassOfIRI, Object: term.IRI(b)},
				store.Inferred("owllite:tableau", nil),
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
				store.Inferred("owllite:tableau", []store.TripleID{row.ID}),
			)
			if err == nil {
				derived++
			}
		}
	}
	return derived, nil
}

func namedClasses(tb *TBox) []string {
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
			if s.Kind == ExprNamed {
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
