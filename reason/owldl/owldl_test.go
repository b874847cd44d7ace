package owldl

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilgraph/reasoner/reason/owllite"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/owl"
	"github.com/vigilgraph/reasoner/vocab/rdf"
)

func iri(s string) term.Term { return term.IRI(s) }

// collection builds an RDF list (rdf:first/rdf:rest chain terminated by
// rdf:nil) out of items, inserting its nodes into g and returning the
// head term.
func collection(t *testing.T, g *store.Graph, items ...term.Term) term.Term {
	t.Helper()
	tail := iri(rdf.Nil)
	for i := len(items) - 1; i >= 0; i-- {
		node := term.Blank(strconv.Itoa(i) + "_list")
		_, err := g.Insert(store.Triple{Subject: node, Predicate: iri(rdf.First), Object: items[i]}, store.Sensor("t"))
		require.NoError(t, err)
		_, err = g.Insert(store.Triple{Subject: node, Predicate: iri(rdf.Rest), Object: tail}, store.Sensor("t"))
		require.NoError(t, err)
		tail = node
	}
	return tail
}

// An owl:intersectionOf over the collection (:Manager :Manager) resolves
// to an Intersection, an owl:complementOf :Manager resolves to a
// Complement, and the intersection of the two is unsatisfiable.
func TestIntersectionWithComplementIsUnsatisfiable(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	manager := iri("ex:Manager")
	anon := term.Blank("c1")
	list := collection(t, g, manager, manager)

	_, err := g.Insert(store.Triple{Subject: anon, Predicate: iri(owl.IntersectionOf), Object: list}, store.Sensor("t"))
	require.NoError(t, err)
	complement := term.Blank("c2")
	_, err = g.Insert(store.Triple{Subject: complement, Predicate: iri(owl.ComplementOf), Object: manager}, store.Sensor("t"))
	require.NoError(t, err)

	expr, err := ResolveClassExpr(g, anon)
	require.NoError(t, err)
	require.Equal(t, owllite.ExprIntersection, expr.Kind)

	complementExpr, err := ResolveClassExpr(g, complement)
	require.NoError(t, err)
	require.Equal(t, owllite.ExprComplement, complementExpr.Kind)

	tb := owllite.NewEmptyTBox()
	tab := NewTableau(tb, 32)
	require.False(t, tab.Satisfiable(owllite.Intersection(expr, complementExpr)))
}

func TestOneOfResolvesToNamedIndividualOperands(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	a, b := iri("ex:a"), iri("ex:b")
	list := collection(t, g, a, b)
	cls := term.Blank("oneof1")
	_, err := g.Insert(store.Triple{Subject: cls, Predicate: iri(owl.OneOf), Object: list}, store.Sensor("t"))
	require.NoError(t, err)

	expr, err := ResolveClassExpr(g, cls)
	require.NoError(t, err)
	require.Equal(t, owllite.ExprOneOf, expr.Kind)
	require.Len(t, expr.Operands, 2)
}

func TestDifferentFromSelfIsInconsistent(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	a := iri("ex:a")
	_, err := g.Insert(store.Triple{Subject: a, Predicate: iri(owl.DifferentFrom), Object: a}, store.Sensor("t"))
	require.NoError(t, err)

	consistent, clash, err := Consistency(g)
	require.NoError(t, err)
	require.False(t, consistent)
	require.NotNil(t, clash)
}

func TestMinCardinalitySpawnsDistinctSuccessors(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	alice := iri("ex:alice")
	restriction := term.Blank("minr")

	_, err := g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: restriction}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: typeIRI, Object: iri(owl.Restriction)}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: iri(owl.OnProperty), Object: iri("ex:manages")}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: iri(owl.MinCardinality), Object: term.TypedLiteral("2", "http://www.w3.org/2001/XMLSchema#integer")}, store.Sensor("t"))
	require.NoError(t, err)

	res, err := Close(context.Background(), g)
	require.NoError(t, err)
	require.True(t, res.Consistent)
}

// liteOnlyFixture builds the same disjoint-classes scenario
// TestInconsistentOntologyDisjointClash exercises in reason/owllite
// against a fresh graph, so it can be run through either reasoner.
// clashing selects the S3 unsatisfiable variant; !clashing drops the
// second type assertion so the same axioms stay satisfiable.
func liteOnlyFixture(t *testing.T, clashing bool) *store.Graph {
	t.Helper()
	g := store.New().Graph(store.DefaultGraph)
	bob, manager, contractor := iri("ex:Bob"), iri("ex:Manager"), iri("ex:Contractor")

	_, err := g.Insert(store.Triple{Subject: bob, Predicate: typeIRI, Object: manager}, store.Sensor("t"))
	require.NoError(t, err)
	if clashing {
		_, err = g.Insert(store.Triple{Subject: bob, Predicate: typeIRI, Object: contractor}, store.Sensor("t"))
		require.NoError(t, err)
	}
	_, err = g.Insert(store.Triple{Subject: manager, Predicate: iri(owl.DisjointWith), Object: contractor}, store.Sensor("t"))
	require.NoError(t, err)
	return g
}

// Testable property 5: on an ontology whose TBox never leaves the OWL
// Lite fragment (named classes and disjointWith only, no
// intersectionOf/unionOf/complementOf/oneOf/sameAs/differentFrom), this
// package's Close must agree with reason/owllite.Close on consistency —
// both tableaus share the same ⊓/⊔/∃/∀/⊑/hasValue core, and owldl's
// blocking strategy is a strict extension of owllite's rather than a
// different decision procedure.
func TestConsistencyAgreesWithOwlLiteOnLiteOnlyOntology(t *testing.T) {
	liteRes, err := owllite.Close(context.Background(), liteOnlyFixture(t, true))
	require.Error(t, err)
	require.False(t, liteRes.Consistent)

	dlRes, err := Close(context.Background(), liteOnlyFixture(t, true))
	require.Error(t, err)
	require.False(t, dlRes.Consistent)

	liteRes, err = owllite.Close(context.Background(), liteOnlyFixture(t, false))
	require.NoError(t, err)
	require.True(t, liteRes.Consistent)

	dlRes, err = Close(context.Background(), liteOnlyFixture(t, false))
	require.NoError(t, err)
	require.True(t, dlRes.Consistent)
}

// cardinalityFixture builds an individual bound to a minCardinality
// restriction on :manages, optionally paired with a maxCardinality 0
// restriction on the same property — clashing makes the pair
// unsatisfiable (>=2 successors required, <=0 allowed), !clashing keeps
// just the minCardinality restriction, which is satisfiable by spawning
// witnesses. Both min/maxCardinality are OWL-Lite-only constructs
// (named classes only, no intersectionOf/unionOf/complementOf/oneOf).
func cardinalityFixture(t *testing.T, clashing bool) *store.Graph {
	t.Helper()
	g := store.New().Graph(store.DefaultGraph)
	alice := iri("ex:alice")
	minRestriction := term.Blank("minr")

	_, err := g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: minRestriction}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: minRestriction, Predicate: typeIRI, Object: iri(owl.Restriction)}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: minRestriction, Predicate: iri(owl.OnProperty), Object: iri("ex:manages")}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: minRestriction, Predicate: iri(owl.MinCardinality), Object: term.TypedLiteral("2", "http://www.w3.org/2001/XMLSchema#integer")}, store.Sensor("t"))
	require.NoError(t, err)

	if clashing {
		maxRestriction := term.Blank("maxr")
		_, err = g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: maxRestriction}, store.Sensor("t"))
		require.NoError(t, err)
		_, err = g.Insert(store.Triple{Subject: maxRestriction, Predicate: typeIRI, Object: iri(owl.Restriction)}, store.Sensor("t"))
		require.NoError(t, err)
		_, err = g.Insert(store.Triple{Subject: maxRestriction, Predicate: iri(owl.OnProperty), Object: iri("ex:manages")}, store.Sensor("t"))
		require.NoError(t, err)
		_, err = g.Insert(store.Triple{Subject: maxRestriction, Predicate: iri(owl.MaxCardinality), Object: term.TypedLiteral("0", "http://www.w3.org/2001/XMLSchema#integer")}, store.Sensor("t"))
		require.NoError(t, err)
	}
	return g
}

// Testable property 5, minCardinality variant: owllite.Close must
// enforce >=n P.C at the Lite tier itself (not just via owldl's
// ExtraRules hook), so the two reasoners agree on both the satisfiable
// and the clashing cardinality combination.
func TestConsistencyAgreesWithOwlLiteOnMinCardinalityOnlyOntology(t *testing.T) {
	liteRes, err := owllite.Close(context.Background(), cardinalityFixture(t, true))
	require.Error(t, err)
	require.False(t, liteRes.Consistent)

	dlRes, err := Close(context.Background(), cardinalityFixture(t, true))
	require.Error(t, err)
	require.False(t, dlRes.Consistent)

	liteRes, err = owllite.Close(context.Background(), cardinalityFixture(t, false))
	require.NoError(t, err)
	require.True(t, liteRes.Consistent)

	dlRes, err = Close(context.Background(), cardinalityFixture(t, false))
	require.NoError(t, err)
	require.True(t, dlRes.Consistent)
}
