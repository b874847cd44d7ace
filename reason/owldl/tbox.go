// Package owldl extends reason/owllite's tableau with the constructors
// and property relations OWL Lite excludes: intersectionOf/unionOf/
// complementOf/oneOf over RDF collections, hasValue and unrestricted-n
// min/max cardinality, and sameAs/differentFrom on individuals. It
// reuses owllite.Tableau wholesale — the ⊓/⊔/∃/∀/⊑ core rules, which
// already cover the complement clash, hasValue and any-n cardinality,
// and the blocking machinery are not duplicated — and adds only a
// oneOf rewrite through Tableau.ExtraRules plus a switch from subset
// to pairwise blocking.
package owldl

import (
	"strconv"

	"github.com/vigilgraph/reasoner/reason/owllite"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/owl"
	"github.com/vigilgraph/reasoner/vocab/rdf"
	"github.com/vigilgraph/reasoner/vocab/rdfs"
)

var (
	typeIRI            = term.IRI(rdf.Type)
	restrictionIRI     = term.IRI(owl.Restriction)
	onPropertyIRI      = term.IRI(owl.OnProperty)
	someValuesFromIRI  = term.IRI(owl.SomeValuesFrom)
	allValuesFromIRI   = term.IRI(owl.AllValuesFrom)
	hasValueIRI        = term.IRI(owl.HasValue)
	minCardinalityIRI  = term.IRI(owl.MinCardinality)
	maxCardinalityIRI  = term.IRI(owl.MaxCardinality)
	cardinalityIRI     = term.IRI(owl.Cardinality)
	intersectionOfIRI  = term.IRI(owl.IntersectionOf)
	unionOfIRI         = term.IRI(owl.UnionOf)
	complementOfIRI    = term.IRI(owl.ComplementOf)
	oneOfIRI           = term.IRI(owl.OneOf)
	subClassOfIRI      = term.IRI(rdfs.SubClassOf)
	equivalentClassIRI = term.IRI(owl.EquivalentClass)
	disjointWithIRI    = term.IRI(owl.DisjointWith)
	sameAsIRI          = term.IRI(owl.SameAs)
	differentFromIRI   = term.IRI(owl.DifferentFrom)
)

// LoadTBox parses the full OWL DL terminology this package adds on top
// of owllite's: every owllite.LoadTBox axiom, plus intersectionOf/
// unionOf/complementOf/oneOf class expressions and sameAs/
// differentFrom individual facts (returned separately since they are
// ABox facts, not TBox axioms).
func LoadTBox(g *store.Graph) (*owllite.TBox, []SameAsFact, []DifferentFact, error) {
	tb := owllite.NewEmptyTBox()

	cur := g.Match(store.Pattern{}.BindPredicate(subClassOfIRI))
	for cur.Next() {
		row := cur.Triple()
		c := row.Triple.Subject.Lexical
		expr, err := ResolveClassExpr(g, row.Triple.Object)
		if err != nil {
			return nil, nil, nil, err
		}
		tb.SuperClasses[c] = append(tb.SuperClasses[c], expr)
	}

	cur = g.Match(store.Pattern{}.BindPredicate(equivalentClassIRI))
	for cur.Next() {
		row := cur.Triple()
		aExpr, err := ResolveClassExpr(g, row.Triple.Subject)
		if err != nil {
			return nil, nil, nil, err
		}
		bExpr, err := ResolveClassExpr(g, row.Triple.Object)
		if err != nil {
			return nil, nil, nil, err
		}
		if aExpr.Kind == owllite.ExprNamed {
			tb.SuperClasses[aExpr.Named] = append(tb.SuperClasses[aExpr.Named], bExpr)
		}
		if bExpr.Kind == owllite.ExprNamed {
			tb.SuperClasses[bExpr.Named] = append(tb.SuperClasses[bExpr.Named], aExpr)
		}
	}

	cur = g.Match(store.Pattern{}.BindPredicate(disjointWithIRI))
	for cur.Next() {
		row := cur.Triple()
		a, b := row.Triple.Subject.Lexical, row.Triple.Object.Lexical
		tb.Disjoint[a] = append(tb.Disjoint[a], b)
		tb.Disjoint[b] = append(tb.Disjoint[b], a)
		tb.SuperClasses[a] = append(tb.SuperClasses[a], owllite.Not(owllite.Name(b)))
		tb.SuperClasses[b] = append(tb.SuperClasses[b], owllite.Not(owllite.Name(a)))
	}

	loadPropertyChars(g, tb)

	var sames []SameAsFact
	cur = g.Match(store.Pattern{}.BindPredicate(sameAsIRI))
	for cur.Next() {
		row := cur.Triple()
		sames = append(sames, SameAsFact{A: row.Triple.Subject.Lexical, B: row.Triple.Object.Lexical})
	}
	var diffs []DifferentFact
	cur = g.Match(store.Pattern{}.BindPredicate(differentFromIRI))
	for cur.Next() {
		row := cur.Triple()
		diffs = append(diffs, DifferentFact{A: row.Triple.Subject.Lexical, B: row.Triple.Object.Lexical})
	}

	return tb, sames, diffs, nil
}

// SameAsFact records an asserted owl:sameAs pair. Close does not merge
// the two individuals.
type SameAsFact struct{ A, B string }

// DifferentFact records an asserted owl:differentFrom pair, checked
// only for a pair whose two names resolve to the same individual.
type DifferentFact struct{ A, B string }

func loadPropertyChars(g *store.Graph, tb *owllite.TBox) {
	for _, kv := range []struct {
		class term.Term
		set   map[string]bool
	}{
		{term.IRI(owl.SymmetricProperty), tb.Symmetric},
		{term.IRI(owl.TransitiveProperty), tb.Transitive},
		{term.IRI(owl.FunctionalProperty), tb.Functional},
		{term.IRI(owl.InverseFunctionalProperty), tb.InverseFunctional},
	} {
		cur := g.Match(store.Pattern{}.BindPredicate(typeIRI).BindObject(kv.class))
		for cur.Next() {
			kv.set[cur.Triple().Triple.Subject.Lexical] = true
		}
	}
	cur := g.Match(store.Pattern{}.BindPredicate(term.IRI(owl.InverseOf)))
	for cur.Next() {
		row := cur.Triple()
		tb.InverseOf[row.Triple.Subject.Lexical] = row.Triple.Object.Lexical
		tb.InverseOf[row.Triple.Object.Lexical] = row.Triple.Subject.Lexical
	}
}

// ResolveClassExpr turns a store term naming a class into a ClassExpr,
// recognizing every OWL DL constructor: Restriction blank nodes (as
// owllite does), intersectionOf/unionOf/oneOf RDF collections, and
// complementOf.
func ResolveClassExpr(g *store.Graph, t term.Term) (owllite.ClassExpr, error) {
	if g.Contains(store.Triple{Subject: t, Predicate: typeIRI, Object: restrictionIRI}) {
		return resolveRestriction(g, t)
	}
	if obj := firstObject(g, t, intersectionOfIRI); obj != nil {
		items, err := resolveCollection(g, *obj)
		if err != nil {
			return owllite.ClassExpr{}, err
		}
		return owllite.Intersection(items...), nil
	}
	if obj := firstObject(g, t, unionOfIRI); obj != nil {
		items, err := resolveCollection(g, *obj)
		if err != nil {
			return owllite.ClassExpr{}, err
		}
		return owllite.Union(items...), nil
	}
	if obj := firstObject(g, t, complementOfIRI); obj != nil {
		inner, err := ResolveClassExpr(g, *obj)
		if err != nil {
			return owllite.ClassExpr{}, err
		}
		return owllite.Not(inner), nil
	}
	if obj := firstObject(g, t, oneOfIRI); obj != nil {
		items, err := resolveCollection(g, *obj)
		if err != nil {
			return owllite.ClassExpr{}, err
		}
		names := make([]string, len(items))
		for i, it := range items {
			names[i] = it.Named
		}
		return owllite.OneOf(names...), nil
	}
	return owllite.Name(t.Lexical), nil
}

func resolveRestriction(g *store.Graph, t term.Term) (owllite.ClassExpr, error) {
	prop := firstObject(g, t, onPropertyIRI)
	if prop == nil {
		return owllite.Name(t.Lexical), nil
	}
	property := prop.Lexical

	if obj := firstObject(g, t, someValuesFromIRI); obj != nil {
		filler, err := ResolveClassExpr(g, *obj)
		if err != nil {
			return owllite.ClassExpr{}, err
		}
		return owllite.SomeValuesFrom(property, filler), nil
	}
	if obj := firstObject(g, t, allValuesFromIRI); obj != nil {
		filler, err := ResolveClassExpr(g, *obj)
		if err != nil {
			return owllite.ClassExpr{}, err
		}
		return owllite.AllValuesFrom(property, filler), nil
	}
	if obj := firstObject(g, t, hasValueIRI); obj != nil {
		return owllite.HasValue(property, *obj), nil
	}
	if obj := firstObject(g, t, minCardinalityIRI); obj != nil {
		n, _ := strconv.Atoi(obj.Lexical)
		return owllite.MinCardinality(property, n, owllite.Thing), nil
	}
	if obj := firstObject(g, t, maxCardinalityIRI); obj != nil {
		n, _ := strconv.Atoi(obj.Lexical)
		return owllite.MaxCardinality(property, n, owllite.Thing), nil
	}
	if obj := firstObject(g, t, cardinalityIRI); obj != nil {
		n, _ := strconv.Atoi(obj.Lexical)
		return owllite.Intersection(
			owllite.MinCardinality(property, n, owllite.Thing),
			owllite.MaxCardinality(property, n, owllite.Thing),
		), nil
	}
	return owllite.Name(t.Lexical), nil
}

// resolveCollection walks an RDF collection (rdf:first/rdf:rest chain
// terminated by rdf:nil) starting at head, resolving each member through
// ResolveClassExpr.
func resolveCollection(g *store.Graph, head term.Term) ([]owllite.ClassExpr, error) {
	var out []owllite.ClassExpr
	cur := head
	for !cur.Equal(term.IRI(rdf.Nil)) {
		first := firstObject(g, cur, term.IRI(rdf.First))
		if first == nil {
			break
		}
		expr, err := ResolveClassExpr(g, *first)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
		rest := firstObject(g, cur, term.IRI(rdf.Rest))
		if rest == nil {
			break
		}
		cur = *rest
	}
	return out, nil
}

func firstObject(g *store.Graph, subj, pred term.Term) *term.Term {
	cur := g.Match(store.Pattern{}.BindSubject(subj).BindPredicate(pred))
	if cur.Next() {
		o := cur.Triple().Triple.Object
		return &o
	}
	return nil
}
