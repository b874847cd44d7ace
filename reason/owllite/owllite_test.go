package owllite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/owl"
)

func iri(s string) term.Term { return term.IRI(s) }

func TestSatisfiableNamedClassWithNoAxioms(t *testing.T) {
	tb := newTBox()
	tab := NewTableau(tb, 32)
	require.True(t, tab.Satisfiable(Name("ex:Person")))
}

func TestDirectClashBetweenNamedAndComplement(t *testing.T) {
	tb := newTBox()
	tab := NewTableau(tb, 32)
	require.False(t, tab.Satisfiable(Intersection(Name("ex:Person"), Not(Name("ex:Person")))))
}

func TestSubsumptionViaSuperclassChain(t *testing.T) {
	tb := newTBox()
	tb.SuperClasses["ex:Employee"] = []ClassExpr{Name("ex:Person")}
	tab := NewTableau(tb, 32)
	require.True(t, tab.Subsumes(Name("ex:Employee"), Name("ex:Person")))
	require.False(t, tab.Subsumes(Name("ex:Person"), Name("ex:Employee")))
}

// S3: an ontology asserting :Bob a :Manager, :Manager disjointWith
// :Contractor, :Bob a :Contractor is inconsistent.
func TestInconsistentOntologyDisjointClash(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	bob, manager, contractor := iri("ex:Bob"), iri("ex:Manager"), iri("ex:Contractor")

	_, err := g.Insert(store.Triple{Subject: bob, Predicate: typeIRI, Object: manager}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: bob, Predicate: typeIRI, Object: contractor}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: manager, Predicate: iri(owl.DisjointWith), Object: contractor}, store.Sensor("t"))
	require.NoError(t, err)

	tb, err := LoadTBox(g)
	require.NoError(t, err)
	require.True(t, tb.AreDisjoint("ex:Manager", "ex:Contractor"))

	_, err = Close(context.Background(), g)
	require.Error(t, err)
}

func TestConsistentOntologyWithSomeValuesFromRestriction(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	alice, employee := iri("ex:alice"), iri("ex:Employee")
	restriction := term.Blank("r1")

	_, err := g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: employee}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: employee, Predicate: subClassOfIRI, Object: restriction}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: typeIRI, Object: iri(owl.Restriction)}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: iri(owl.OnProperty), Object: iri("ex:worksFor")}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: iri(owl.SomeValuesFrom), Object: iri("ex:Company")}, store.Sensor("t"))
	require.NoError(t, err)

	res, err := Close(context.Background(), g)
	require.NoError(t, err)
	require.True(t, res.Consistent)
}

// OWL Lite bounds minCardinality to 0 or 1 by convention, but the rule
// itself must still spawn a witnessing successor at the Lite tier —
// this is what distinguishes a restriction from a no-op label.
func TestMinCardinalitySpawnsWitnessingSuccessor(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	alice := iri("ex:alice")
	restriction := term.Blank("minr")

	_, err := g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: restriction}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: typeIRI, Object: iri(owl.Restriction)}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: iri(owl.OnProperty), Object: iri("ex:manages")}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: restriction, Predicate: iri(owl.MinCardinality), Object: term.TypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer")}, store.Sensor("t"))
	require.NoError(t, err)

	res, err := Close(context.Background(), g)
	require.NoError(t, err)
	require.True(t, res.Consistent)
}

func TestClassifyMaterializesSubClassOfAndType(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	alice, employee, person := iri("ex:alice"), iri("ex:Employee"), iri("ex:Person")

	_, err := g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: employee}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: employee, Predicate: subClassOfIRI, Object: person}, store.Sensor("t"))
	require.NoError(t, err)

	res, err := Close(context.Background(), g)
	require.NoError(t, err)
	require.True(t, res.Consistent)
	require.True(t, g.Contains(store.Triple{Subject: alice, Predicate: typeIRI, Object: person}))
}

func TestLoadTBoxReadsSubPropertyIndependentAxioms(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	p, q := iri("ex:p"), iri("ex:q")
	_, err := g.Insert(store.Triple{Subject: p, Predicate: iri(owl.InverseOf), Object: q}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: p, Predicate: typeIRI, Object: iri(owl.SymmetricProperty)}, store.Sensor("t"))
	require.NoError(t, err)

	tb, err := LoadTBox(g)
	require.NoError(t, err)
	require.Equal(t, "ex:q", tb.InverseOf["ex:p"])
	require.True(t, tb.Symmetric["ex:p"])
}
