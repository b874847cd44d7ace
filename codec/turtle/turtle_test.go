package turtle

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

func readAll(t *testing.T, doc string) []triple {
	t.Helper()
	r, err := NewReader(strings.NewReader(doc), term.NewBlankSequence())
	require.NoError(t, err)
	var out []triple
	for {
		tr, err := r.ReadTriple()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, triple{tr.Subject, tr.Predicate, tr.Object})
	}
	return out
}

type triple struct{ s, p, o term.Term }

func TestPrefixedNamesResolveAgainstDeclaredPrefix(t *testing.T) {
	doc := `@prefix ex: <http://example.org/> .
ex:alice ex:age "30" .`
	got := readAll(t, doc)
	require.Len(t, got, 1)
	require.Equal(t, "http://example.org/alice", got[0].s.Lexical)
	require.Equal(t, "http://example.org/age", got[0].p.Lexical)
	require.Equal(t, "30", got[0].o.Lexical)
}

func TestPredicateObjectListExpandsToMultipleTriples(t *testing.T) {
	doc := `@prefix ex: <http://example.org/> .
ex:alice ex:age "30" ; ex:name "Alice" , "Ally" .`
	got := readAll(t, doc)
	require.Len(t, got, 3)
	for _, tr := range got {
		require.Equal(t, "http://example.org/alice", tr.s.Lexical)
	}
}

func TestAnonBlankNodeObjectGetsFreshLabel(t *testing.T) {
	doc := `@prefix ex: <http://example.org/> .
ex:alice ex:knows [ ex:name "Bob" ] .`
	got := readAll(t, doc)
	require.Len(t, got, 2)
	var bnode term.Term
	for _, tr := range got {
		if tr.p.Lexical == "http://example.org/knows" {
			bnode = tr.o
		}
	}
	require.True(t, bnode.IsBlank())
	require.NotEmpty(t, bnode.Lexical)
}

func TestTypedAndLangLiteralsParse(t *testing.T) {
	doc := `@prefix ex: <http://example.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
ex:alice ex:age "30"^^xsd:integer ; ex:label "Alice"@en .`
	got := readAll(t, doc)
	require.Len(t, got, 2)
	for _, tr := range got {
		switch tr.p.Lexical {
		case "http://example.org/age":
			require.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", tr.o.Datatype)
		case "http://example.org/label":
			require.Equal(t, "en", tr.o.Lang)
		}
	}
}

func TestRdfTypeShorthand(t *testing.T) {
	doc := `@prefix ex: <http://example.org/> .
ex:alice a ex:Person .`
	got := readAll(t, doc)
	require.Len(t, got, 1)
	require.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", got[0].p.Lexical)
}

func TestWriterGroupsBySubjectDeterministically(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf)
	a := term.IRI("http://example.org/a")
	require.NoError(t, w.WriteTriple(store.Triple{Subject: a, Predicate: term.IRI("http://example.org/age"), Object: term.Literal("30")}))
	require.NoError(t, w.WriteTriple(store.Triple{Subject: a, Predicate: term.IRI("http://example.org/name"), Object: term.Literal("Alice")}))
	require.NoError(t, w.Close())
	out := buf.String()
	require.Contains(t, out, "<http://example.org/a>")
	require.True(t, strings.Index(out, "age") < strings.Index(out, "name"))
}
