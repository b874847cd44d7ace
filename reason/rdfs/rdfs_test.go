package rdfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

func iri(s string) term.Term { return term.IRI(s) }

func TestTypePropagationViaSubClassOf(t *testing.T) {
	// S1: :alice a :Employee, :Employee subClassOf :Person.
	g := store.New().Graph(store.DefaultGraph)
	alice, employee, person := iri("ex:alice"), iri("ex:Employee"), iri("ex:Person")

	_, err := g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: employee}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: employee, Predicate: subClassOfIRI, Object: person}, store.Sensor("t"))
	require.NoError(t, err)

	_, err = Close(context.Background(), g)
	require.NoError(t, err)

	require.True(t, g.Contains(store.Triple{Subject: alice, Predicate: typeIRI, Object: employee}))
	require.True(t, g.Contains(store.Triple{Subject: alice, Predicate: typeIRI, Object: person}))
}

func TestSubPropertyOfPropagation(t *testing.T) {
	// S2: :x :fatherOf :y, :fatherOf subPropertyOf :parentOf.
	g := store.New().Graph(store.DefaultGraph)
	x, y := iri("ex:x"), iri("ex:y")
	fatherOf, parentOf := iri("ex:fatherOf"), iri("ex:parentOf")

	_, err := g.Insert(store.Triple{Subject: x, Predicate: fatherOf, Object: y}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: fatherOf, Predicate: subPropertyOfIRI, Object: parentOf}, store.Sensor("t"))
	require.NoError(t, err)

	_, err = Close(context.Background(), g)
	require.NoError(t, err)

	require.True(t, g.Contains(store.Triple{Subject: x, Predicate: parentOf, Object: y}))

	cur := g.Match(store.Pattern{}.BindSubject(x).BindPredicate(parentOf).BindObject(y))
	require.True(t, cur.Next())
	require.Equal(t, "rdfs:subPropertyOf-prop", cur.Triple().Provenance.Rule)
}

func TestClosureMonotoneAndRetractionRemovesExactlyDependents(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	alice, employee, person := iri("ex:alice"), iri("ex:Employee"), iri("ex:Person")

	sensorID, err := g.Insert(store.Triple{Subject: alice, Predicate: typeIRI, Object: employee}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: employee, Predicate: subClassOfIRI, Object: person}, store.Sensor("t"))
	require.NoError(t, err)

	before := g.Len()
	_, err = Close(context.Background(), g)
	require.NoError(t, err)
	require.Greater(t, g.Len(), before)

	require.True(t, g.Contains(store.Triple{Subject: alice, Predicate: typeIRI, Object: person}))

	removed, err := Retract(g, sensorID)
	require.NoError(t, err)
	require.Contains(t, removed, sensorID)
	require.False(t, g.Contains(store.Triple{Subject: alice, Predicate: typeIRI, Object: person}))
	require.False(t, g.Contains(store.Triple{Subject: alice, Predicate: typeIRI, Object: employee}))
}

func TestCyclicSubClassOfTerminates(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	a, b := iri("ex:A"), iri("ex:B")
	_, err := g.Insert(store.Triple{Subject: a, Predicate: subClassOfIRI, Object: b}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: b, Predicate: subClassOfIRI, Object: a}, store.Sensor("t"))
	require.NoError(t, err)

	res, err := Close(context.Background(), g)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.True(t, g.Contains(store.Triple{Subject: a, Predicate: subClassOfIRI, Object: b}))
	require.True(t, g.Contains(store.Triple{Subject: b, Predicate: subClassOfIRI, Object: a}))
}

func TestSubClassOfAndSubPropertyOfAreReflexive(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	employee, person := iri("ex:Employee"), iri("ex:Person")
	fatherOf, parentOf := iri("ex:fatherOf"), iri("ex:parentOf")

	_, err := g.Insert(store.Triple{Subject: employee, Predicate: subClassOfIRI, Object: person}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: fatherOf, Predicate: subPropertyOfIRI, Object: parentOf}, store.Sensor("t"))
	require.NoError(t, err)

	_, err = Close(context.Background(), g)
	require.NoError(t, err)

	require.True(t, g.Contains(store.Triple{Subject: employee, Predicate: subClassOfIRI, Object: employee}))
	require.True(t, g.Contains(store.Triple{Subject: person, Predicate: subClassOfIRI, Object: person}))
	require.True(t, g.Contains(store.Triple{Subject: fatherOf, Predicate: subPropertyOfIRI, Object: fatherOf}))
	require.True(t, g.Contains(store.Triple{Subject: parentOf, Predicate: subPropertyOfIRI, Object: parentOf}))

	cur := g.Match(store.Pattern{}.BindSubject(employee).BindPredicate(subClassOfIRI).BindObject(employee))
	require.True(t, cur.Next())
	require.Equal(t, "rdfs:subClassOf-reflexive", cur.Triple().Provenance.Rule)
}
