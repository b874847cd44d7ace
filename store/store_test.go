package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilgraph/reasoner/term"
)

func mkTriple(s, p, o string) Triple {
	return Triple{Subject: term.IRI(s), Predicate: term.IRI(p), Object: term.IRI(o)}
}

func TestInsertIdempotence(t *testing.T) {
	g := New().Graph(DefaultGraph)
	tr := mkTriple("http://x/a", "http://x/age", "http://x/30")

	id1, err := g.Insert(tr, Sensor("test"))
	require.NoError(t, err)

	id2, err := g.Insert(tr, Sensor("test-again"))
	require.ErrorIs(t, err, ErrDuplicate)
	require.Equal(t, id1, id2)

	require.Equal(t, 1, g.Len())
	require.True(t, g.Contains(tr))
}

func TestMatchSoundness(t *testing.T) {
	g := New().Graph(DefaultGraph)

	a1, _ := g.Insert(mkTriple("http://x/a", "http://x/age", "http://x/30"), Sensor("s"))
	_, _ = g.Insert(mkTriple("http://x/b", "http://x/age", "http://x/17"), Sensor("s"))
	a3, _ := g.Insert(mkTriple("http://x/a", "http://x/name", "http://x/Alice"), Sensor("s"))

	subj := term.IRI("http://x/a")
	cur := g.Match(Pattern{}.BindSubject(subj))
	var got []TripleID
	for cur.Next() {
		got = append(got, cur.Triple().ID)
	}
	require.ElementsMatch(t, []TripleID{a1, a3}, got)
}

func TestMatchUnboundReturnsEverythingInInsertionOrder(t *testing.T) {
	g := New().Graph(DefaultGraph)
	var ids []TripleID
	for i := 0; i < 5; i++ {
		id, _ := g.Insert(mkTriple("http://x/s", "http://x/p", "http://x/o"+string(rune('0'+i))), Sensor("s"))
		ids = append(ids, id)
	}
	cur := g.Match(Pattern{})
	var got []TripleID
	for cur.Next() {
		got = append(got, cur.Triple().ID)
	}
	require.Equal(t, ids, got)
}

func TestMatchRestartable(t *testing.T) {
	g := New().Graph(DefaultGraph)
	_, _ = g.Insert(mkTriple("http://x/a", "http://x/p", "http://x/o"), Sensor("s"))

	cur := g.Match(Pattern{})
	require.True(t, cur.Next())
	require.False(t, cur.Next())

	// A fresh Match call restarts from the beginning.
	cur2 := g.Match(Pattern{})
	require.True(t, cur2.Next())
}

func TestRemoveCascadesIndices(t *testing.T) {
	g := New().Graph(DefaultGraph)
	tr := mkTriple("http://x/a", "http://x/p", "http://x/o")
	g.Insert(tr, Sensor("s"))
	require.True(t, g.Contains(tr))

	require.True(t, g.Remove(tr))
	require.False(t, g.Contains(tr))
	require.False(t, g.Remove(tr)) // already gone
}

func TestNamedGraphsAreIsolated(t *testing.T) {
	s := New()
	tr := mkTriple("http://x/a", "http://x/p", "http://x/o")
	s.Graph(GraphID("http://graphs/one")).Insert(tr, Sensor("s"))

	require.False(t, s.Graph(GraphID("http://graphs/two")).Contains(tr))
	require.True(t, s.Graph(GraphID("http://graphs/one")).Contains(tr))
}

func TestByIDReportsOwningGraph(t *testing.T) {
	s := New()
	tr := mkTriple("http://x/a", "http://x/p", "http://x/o")
	id, err := s.Graph(GraphID("http://graphs/one")).Insert(tr, Sensor("s"))
	require.NoError(t, err)

	row, ok := s.Graph(GraphID("http://graphs/one")).ByID(id)
	require.True(t, ok)
	require.Equal(t, GraphID("http://graphs/one"), row.Graph)
}

func TestInvalidTermShapeRejected(t *testing.T) {
	g := New().Graph(DefaultGraph)
	bad := Triple{Subject: term.Literal("not-a-subject"), Predicate: term.IRI("http://x/p"), Object: term.IRI("http://x/o")}
	_, err := g.Insert(bad, Sensor("s"))
	require.Error(t, err)
}
