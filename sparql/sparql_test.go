package sparql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/xsd"
)

func iri(s string) term.Term { return term.IRI(s) }

func age(n string) term.Term { return term.TypedLiteral(n, xsd.Integer) }

// S4: Over (:a :age 30), (:b :age 17), (:c :age 42), SELECT ?x WHERE
// { ?x :age ?n . FILTER(?n >= 18) } yields exactly {:a, :c}.
func TestSelectBGPWithFilterMatchesAdultsOnly(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	ageIRI := iri("ex:age")
	a, b, c := iri("ex:a"), iri("ex:b"), iri("ex:c")

	for _, tr := range []store.Triple{
		{Subject: a, Predicate: ageIRI, Object: age("30")},
		{Subject: b, Predicate: ageIRI, Object: age("17")},
		{Subject: c, Predicate: ageIRI, Object: age("42")},
	} {
		_, err := g.Insert(tr, store.Sensor("t"))
		require.NoError(t, err)
	}

	bgp := BGP{Patterns: []TriplePattern{
		{Subject: V("x"), Predicate: B(ageIRI), Object: V("n")},
	}}
	query := Filter{Expr: Ge(VarRef("n"), Const(age("18"))), Child: bgp}

	rows, err := Select(context.Background(), g, []Var{"x"}, query)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got := map[string]bool{}
	for _, r := range rows {
		got[r["x"].Lexical] = true
	}
	require.True(t, got["ex:a"])
	require.True(t, got["ex:c"])
	require.False(t, got["ex:b"])
}

func TestAskReportsNonEmptySolutionSequence(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	knows := iri("ex:knows")
	_, err := g.Insert(store.Triple{Subject: iri("ex:alice"), Predicate: knows, Object: iri("ex:bob")}, store.Sensor("t"))
	require.NoError(t, err)

	yes, err := Ask(context.Background(), g, BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: B(knows), Object: V("o")}}})
	require.NoError(t, err)
	require.True(t, yes)

	no, err := Ask(context.Background(), g, BGP{Patterns: []TriplePattern{{Subject: V("s"), Predicate: B(iri("ex:enemyOf")), Object: V("o")}}})
	require.NoError(t, err)
	require.False(t, no)
}

func TestConstructInstantiatesTemplatePerSolution(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	manages := iri("ex:manages")
	reportsTo := iri("ex:reportsTo")
	_, err := g.Insert(store.Triple{Subject: iri("ex:alice"), Predicate: manages, Object: iri("ex:bob")}, store.Sensor("t"))
	require.NoError(t, err)

	template := []ConstructTemplate{{Subject: V("employee"), Predicate: B(reportsTo), Object: V("manager")}}
	triples, err := Construct(context.Background(), g, template, BGP{Patterns: []TriplePattern{
		{Subject: V("manager"), Predicate: B(manages), Object: V("employee")},
	}})
	require.NoError(t, err)
	require.Len(t, triples, 1)
	require.Equal(t, iri("ex:bob"), triples[0].Subject)
	require.Equal(t, reportsTo, triples[0].Predicate)
	require.Equal(t, iri("ex:alice"), triples[0].Object)
}

func TestDescribeFollowsBlankNodeObjectsNotNamedOnes(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	alice := iri("ex:alice")
	addr := term.Blank("addr1")
	city := iri("ex:Springfield")

	_, err := g.Insert(store.Triple{Subject: alice, Predicate: iri("ex:address"), Object: addr}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: addr, Predicate: iri("ex:city"), Object: city}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: city, Predicate: iri("ex:inCountry"), Object: iri("ex:USA")}, store.Sensor("t"))
	require.NoError(t, err)

	triples := Describe(g, alice)
	require.Len(t, triples, 2) // alice->addr, addr->city; does not follow into city (a named node)
}

// Algebra laws the join/union operators must satisfy.
func TestJoinIsCommutativeAsAMultiset(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	knows := iri("ex:knows")
	likes := iri("ex:likes")
	_, err := g.Insert(store.Triple{Subject: iri("ex:a"), Predicate: knows, Object: iri("ex:b")}, store.Sensor("t"))
	require.NoError(t, err)
	_, err = g.Insert(store.Triple{Subject: iri("ex:a"), Predicate: likes, Object: iri("ex:c")}, store.Sensor("t"))
	require.NoError(t, err)

	left := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(knows), Object: V("y")}}}
	right := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(likes), Object: V("z")}}}

	ab, err := Join{Left: left, Right: right}.Eval(context.Background(), g)
	require.NoError(t, err)
	ba, err := Join{Left: right, Right: left}.Eval(context.Background(), g)
	require.NoError(t, err)
	require.ElementsMatch(t, ab.Rows(), ba.Rows())
}

func TestFilterTrueIsIdentity(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	_, err := g.Insert(store.Triple{Subject: iri("ex:a"), Predicate: iri("ex:p"), Object: iri("ex:b")}, store.Sensor("t"))
	require.NoError(t, err)

	child := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(iri("ex:p")), Object: V("y")}}}
	filtered, err := Filter{Expr: True(), Child: child}.Eval(context.Background(), g)
	require.NoError(t, err)
	plain, err := child.Eval(context.Background(), g)
	require.NoError(t, err)
	require.ElementsMatch(t, filtered.Rows(), plain.Rows())
}

func TestLeftJoinPreservesLeftRowsWhenRightIsEmpty(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	_, err := g.Insert(store.Triple{Subject: iri("ex:a"), Predicate: iri("ex:p"), Object: iri("ex:b")}, store.Sensor("t"))
	require.NoError(t, err)

	left := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(iri("ex:p")), Object: V("y")}}}
	right := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(iri("ex:nonexistent")), Object: V("z")}}}

	lj, err := LeftJoin{Left: left, Right: right, Filter: True()}.Eval(context.Background(), g)
	require.NoError(t, err)
	plain, err := left.Eval(context.Background(), g)
	require.NoError(t, err)
	require.ElementsMatch(t, lj.Rows(), plain.Rows())
}

func TestUnionWithEmptyIsIdentity(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	_, err := g.Insert(store.Triple{Subject: iri("ex:a"), Predicate: iri("ex:p"), Object: iri("ex:b")}, store.Sensor("t"))
	require.NoError(t, err)

	child := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(iri("ex:p")), Object: V("y")}}}
	u, err := Union{Left: child, Right: BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(iri("ex:nonexistent")), Object: V("z")}}}}.Eval(context.Background(), g)
	require.NoError(t, err)
	plain, err := child.Eval(context.Background(), g)
	require.NoError(t, err)
	require.ElementsMatch(t, u.Rows(), plain.Rows())
}

func TestPushDownFiltersMovesExprOntoOwningJoinSide(t *testing.T) {
	left := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(iri("ex:age")), Object: V("n")}}}
	right := BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(iri("ex:dept")), Object: V("d")}}}
	expr := Ge(VarRef("n"), Const(age("18")))

	pushed := PushDownFilters(Filter{Expr: expr, Child: Join{Left: left, Right: right}})
	join, ok := pushed.(Join)
	require.True(t, ok)
	_, leftIsFilter := join.Left.(Filter)
	require.True(t, leftIsFilter, "filter over ?n should land on the side that binds ?n")
	_, rightIsBGP := join.Right.(BGP)
	require.True(t, rightIsBGP)
}

func TestReorderJoinsPutsSmallerPostingListFirst(t *testing.T) {
	g := store.New().Graph(store.DefaultGraph)
	common := iri("ex:common")
	rare := iri("ex:rare")
	// Make `common` match many rows and `rare` match exactly one.
	for i := 0; i < 20; i++ {
		_, err := g.Insert(store.Triple{Subject: iri("ex:s" + string(rune('a'+i))), Predicate: common, Object: iri("ex:o")}, store.Sensor("t"))
		require.NoError(t, err)
	}
	_, err := g.Insert(store.Triple{Subject: iri("ex:s"), Predicate: rare, Object: iri("ex:o")}, store.Sensor("t"))
	require.NoError(t, err)

	tree := Join{
		Left:  BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(common), Object: V("o")}}},
		Right: BGP{Patterns: []TriplePattern{{Subject: V("x"), Predicate: B(rare), Object: V("o2")}}},
	}
	reordered := ReorderJoins(tree, g).(Join)
	leftBGP := reordered.Left.(BGP)
	require.Equal(t, rare, leftBGP.Patterns[0].Predicate.Bound(), "smaller posting list (rare) should be reordered first")
}
