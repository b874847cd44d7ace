package owllite

import (
	"strconv"

	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/owl"
	"github.com/vigilgraph/reasoner/vocab/rdf"
	"github.com/vigilgraph/reasoner/vocab/rdfs"
)

// TBox is the terminology extracted from a graph: named-class axioms and
// the property characteristics the tableau's ∃/∀ rules and successor
// merging consult, generalized from a fixed rdf:type/rdfs:subClassOf
// vocabulary to arbitrary class expressions.
type TBox struct {
	SuperClasses map[string][]ClassExpr // named class IRI -> direct superclass expressions
	Disjoint     map[string][]string    // named class IRI -> pairwise-disjoint class IRIs

	Symmetric         map[string]bool
	Transitive        map[string]bool
	Functional        map[string]bool
	InverseFunctional map[string]bool
	InverseOf         map[string]string
}

// NewEmptyTBox returns an empty TBox ready for callers (such as
// reason/owldl) that build up terminology from their own axiom sweep
// rather than LoadTBox's.
func NewEmptyTBox() *TBox { return newTBox() }

func newTBox() *TBox {
	return &TBox{
		SuperClasses:      make(map[string][]ClassExpr),
		Disjoint:          make(map[string][]string),
		Symmetric:         make(map[string]bool),
		Transitive:        make(map[string]bool),
		Functional:        make(map[string]bool),
		InverseFunctional: make(map[string]bool),
		InverseOf:         make(map[string]string),
	}
}

var (
	typeIRI           = term.IRI(rdf.Type)
	subClassOfIRI     = term.IRI(rdfs.SubClassOf)
	equivalentClassIRI = term.IRI(owl.EquivalentClass)
	disjointWithIRI   = term.IRI(owl.DisjointWith)
	restrictionIRI    = term.IRI(owl.Restriction)
	onPropertyIRI     = term.IRI(owl.OnProperty)
	someValuesFromIRI = term.IRI(owl.SomeValuesFrom)
	allValuesFromIRI  = term.IRI(owl.AllValuesFrom)
	hasValueIRI       = term.IRI(owl.HasValue)
	minCardinalityIRI = term.IRI(owl.MinCardinality)
	maxCardinalityIRI = term.IRI(owl.MaxCardinality)
	symmetricIRI      = term.IRI(owl.SymmetricProperty)
	transitiveIRI     = term.IRI(owl.TransitiveProperty)
	functionalIRI     = term.IRI(owl.FunctionalProperty)
	invFunctionalIRI  = term.IRI(owl.InverseFunctionalProperty)
	inverseOfIRI      = term.IRI(owl.InverseOf)
)

// LoadTBox reads the OWL Lite terminology out of g: subClassOf and
// equivalentClass axioms between named classes (equivalentClass is
// expanded to a pair of subClassOf edges), disjointWith pairs, Restriction
// blank-node structures reachable from a subClassOf object, and property
// characteristic declarations.
func LoadTBox(g *store.Graph) (*TBox, error) {
	tb := newTBox()

	cur := g.Match(store.Pattern{}.BindPredicate(subClassOfIRI))
	for cur.Next() {
		row := cur.Triple()
		c := row.Triple.Subject.Lexical
		expr, err := resolveClassExpr(g, row.Triple.Object)
		if err != nil {
			return nil, err
		}
		tb.SuperClasses[c] = append(tb.SuperClasses[c], expr)
	}

	cur = g.Match(store.Pattern{}.BindPredicate(equivalentClassIRI))
	for cur.Next() {
		row := cur.Triple()
		a, b := row.Triple.Subject.Lexical, row.Triple.Object.Lexical
		tb.SuperClasses[a] = append(tb.SuperClasses[a], Name(b))
		tb.SuperClasses[b] = append(tb.SuperClasses[b], Name(a))
	}

	cur = g.Match(store.Pattern{}.BindPredicate(disjointWithIRI))
	for cur.Next() {
		row := cur.Triple()
		a, b := row.Triple.Subject.Lexical, row.Triple.Object.Lexical
		tb.Disjoint[a] = append(tb.Disjoint[a], b)
		tb.Disjoint[b] = append(tb.Disjoint[b], a)
		// Wire disjointness through the ⊑ rule itself: a ⊑ ¬b lets the
		// tableau's deterministic expansion surface the clash the same
		// way it would for any other declared complement, instead of
		// needing a separate disjointness check in clashOf.
		tb.SuperClasses[a] = append(tb.SuperClasses[a], Not(Name(b)))
		tb.SuperClasses[b] = append(tb.SuperClasses[b], Not(Name(a)))
	}

	loadPropertyChars(g, tb)

	cur = g.Match(store.Pattern{}.BindPredicate(inverseOfIRI))
	for cur.Next() {
		row := cur.Triple()
		tb.InverseOf[row.Triple.Subject.Lexical] = row.Triple.Object.Lexical
		tb.InverseOf[row.Triple.Object.Lexical] = row.Triple.Subject.Lexical
	}

	return tb, nil
}

func loadPropertyChars(g *store.Graph, tb *TBox) {
	for _, kv := range []struct {
		class term.Term
		set   map[string]bool
	}{
		{symmetricIRI, tb.Symmetric},
		{transitiveIRI, tb.Transitive},
		{functionalIRI, tb.Functional},
		{invFunctionalIRI, tb.InverseFunctional},
	} {
		cur := g.Match(store.Pattern{}.BindPredicate(typeIRI).BindObject(kv.class))
		for cur.Next() {
			kv.set[cur.Triple().Triple.Subject.Lexical] = true
		}
	}
}

// resolveClassExpr turns a store term naming a class into a ClassExpr: a
// named IRI, or — when t is the subject of an owl:Restriction triple — a
// someValuesFrom/allValuesFrom/hasValue/cardinality expression over the
// restricted property.
func resolveClassExpr(g *store.Graph, t term.Term) (ClassExpr, error) {
	if !isRestriction(g, t) {
		return Name(t.Lexical), nil
	}

	prop := firstObject(g, t, onPropertyIRI)
	if prop == nil {
		return Name(t.Lexical), nil
	}
	property := prop.Lexical

	if obj := firstObject(g, t, someValuesFromIRI); obj != nil {
		filler, err := resolveClassExpr(g, *obj)
		if err != nil {
			return ClassExpr{}, err
		}
		return SomeValuesFrom(property, filler), nil
	}
	if obj := firstObject(g, t, allValuesFromIRI); obj != nil {
		filler, err := resolveClassExpr(g, *obj)
		if err != nil {
			return ClassExpr{}, err
		}
		return AllValuesFrom(property, filler), nil
	}
	if obj := firstObject(g, t, hasValueIRI); obj != nil {
		return HasValue(property, *obj), nil
	}
	if obj := firstObject(g, t, minCardinalityIRI); obj != nil {
		n, _ := strconv.Atoi(obj.Lexical)
		return MinCardinality(property, n, Thing), nil
	}
	if obj := firstObject(g, t, maxCardinalityIRI); obj != nil {
		n, _ := strconv.Atoi(obj.Lexical)
		return MaxCardinality(property, n, Thing), nil
	}
	return Name(t.Lexical), nil
}

func isRestriction(g *store.Graph, t term.Term) bool {
	return g.Contains(store.Triple{Subject: t, Predicate: typeIRI, Object: restrictionIRI})
}

func firstObject(g *store.Graph, subj, pred term.Term) *term.Term {
	cur := g.Match(store.Pattern{}.BindSubject(subj).BindPredicate(pred))
	if cur.Next() {
		o := cur.Triple().Triple.Object
		return &o
	}
	return nil
}

// Supers returns the direct named and restriction superclasses declared
// for class c, or nil if c has none.
func (tb *TBox) Supers(c string) []ClassExpr { return tb.SuperClasses[c] }

// AreDisjoint reports whether a and b are declared disjoint.
func (tb *TBox) AreDisjoint(a, b string) bool {
	for _, d := range tb.Disjoint[a] {
		if d == b {
			return true
		}
	}
	return false
}
