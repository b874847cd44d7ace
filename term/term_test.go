package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternerStableHandles(t *testing.T) {
	in := NewInterner()

	a := in.Intern(IRI("http://example.org/alice"))
	b := in.Intern(IRI("http://example.org/alice"))
	require.Equal(t, a.Handle, b.Handle, "interning the same IRI twice must yield the same handle")

	c := in.Intern(IRI("http://example.org/bob"))
	require.NotEqual(t, a.Handle, c.Handle)

	got, ok := in.Lookup(a.Handle)
	require.True(t, ok)
	require.True(t, got.Equal(IRI("http://example.org/alice")))
}

func TestInternerDistinguishesLiteralShapes(t *testing.T) {
	in := NewInterner()

	plain := in.Intern(Literal("30"))
	typed := in.Intern(TypedLiteral("30", "http://www.w3.org/2001/XMLSchema#integer"))
	lang := in.Intern(LangLiteral("30", "en"))

	require.NotEqual(t, plain.Handle, typed.Handle)
	require.NotEqual(t, plain.Handle, lang.Handle)
	require.NotEqual(t, typed.Handle, lang.Handle)
}

func TestBlankSequenceNeverRepeats(t *testing.T) {
	seq := NewBlankSequence()
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := seq.Next()
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestTermStringRoundtripsDisplay(t *testing.T) {
	require.Equal(t, "<http://x/y>", IRI("http://x/y").String())
	require.Equal(t, "_:b1", Blank("b1").String())
	require.Equal(t, `"hi"`, Literal("hi").String())
	require.Equal(t, `"hi"@en`, LangLiteral("hi", "en").String())
	require.Equal(t, `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		TypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer").String())
}
