package shacl

import (
	"strconv"

	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/rdf"
	"github.com/vigilgraph/reasoner/vocab/sh"
)

var (
	typeIRI        = term.IRI(rdf.Type)
	nodeShapeIRI   = term.IRI(sh.NodeShape)
	targetClassIRI = term.IRI(sh.TargetClass)
	targetNodeIRI  = term.IRI(sh.TargetNode)
	propertyIRI    = term.IRI(sh.Property)
	pathIRI        = term.IRI(sh.Path)
	classIRI       = term.IRI(sh.Class)
	datatypeIRI    = term.IRI(sh.Datatype)
	hasValueIRI    = term.IRI(sh.HasValue)
	inIRI          = term.IRI(sh.In)
	minCountIRI    = term.IRI(sh.MinCount)
	maxCountIRI    = term.IRI(sh.MaxCount)
	patternIRI     = term.IRI(sh.Pattern)
	minLengthIRI   = term.IRI(sh.MinLength)
	maxLengthIRI   = term.IRI(sh.MaxLength)
	severityIRI    = term.IRI(sh.Severity)
	violationIRI   = term.IRI(sh.Violation)
)

// LoadShapes reads every sh:NodeShape out of g, along with its nested
// sh:property shapes.
func LoadShapes(g *store.Graph) ([]Shape, error) {
	var shapes []Shape
	cur := g.Match(store.Pattern{}.BindPredicate(typeIRI).BindObject(nodeShapeIRI))
	for cur.Next() {
		node := cur.Triple().Triple.Subject
		shape := Shape{
			ID:          node,
			TargetClass: objectsOf(g, node, targetClassIRI),
			TargetNode:  objectsOf(g, node, targetNodeIRI),
			Severity:    firstOrDefault(g, node, severityIRI, violationIRI),
		}

		propCur := g.Match(store.Pattern{}.BindSubject(node).BindPredicate(propertyIRI))
		for propCur.Next() {
			propNode := propCur.Triple().Triple.Object
			ps, err := loadPropertyShape(g, propNode, shape.Severity)
			if err != nil {
				return nil, err
			}
			shape.Properties = append(shape.Properties, ps)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

func loadPropertyShape(g *store.Graph, node term.Term, inheritedSeverity term.Term) (PropertyShape, error) {
	ps := PropertyShape{
		ID:       node,
		Severity: firstOrDefault(g, node, severityIRI, inheritedSeverity),
	}
	if path := firstObject(g, node, pathIRI); path != nil {
		ps.Path = *path
	}
	if v := firstObject(g, node, classIRI); v != nil {
		ps.Class = v
	}
	if v := firstObject(g, node, datatypeIRI); v != nil {
		ps.Datatype = v
	}
	if v := firstObject(g, node, hasValueIRI); v != nil {
		ps.HasValue = v
	}
	if head := firstObject(g, node, inIRI); head != nil {
		items, err := resolveCollection(g, *head)
		if err != nil {
			return PropertyShape{}, err
		}
		ps.In = items
	}
	if v := firstInt(g, node, minCountIRI); v != nil {
		ps.MinCount = v
	}
	if v := firstInt(g, node, maxCountIRI); v != nil {
		ps.MaxCount = v
	}
	if v := firstObject(g, node, patternIRI); v != nil {
		s := v.Lexical
		ps.Pattern = &s
	}
	if v := firstInt(g, node, minLengthIRI); v != nil {
		ps.MinLength = v
	}
	if v := firstInt(g, node, maxLengthIRI); v != nil {
		ps.MaxLength = v
	}
	return ps, nil
}

func objectsOf(g *store.Graph, subj, pred term.Term) []term.Term {
	var out []term.Term
	cur := g.Match(store.Pattern{}.BindSubject(subj).BindPredicate(pred))
	for cur.Next() {
		out = append(out, cur.Triple().Triple.Object)
	}
	return out
}

func firstObject(g *store.Graph, subj, pred term.Term) *term.Term {
	cur := g.Match(store.Pattern{}.BindSubject(subj).BindPredicate(pred))
	if cur.Next() {
		o := cur.Triple().Triple.Object
		return &o
	}
	return nil
}

func firstOrDefault(g *store.Graph, subj, pred, def term.Term) term.Term {
	if v := firstObject(g, subj, pred); v != nil {
		return *v
	}
	return def
}

func firstInt(g *store.Graph, subj, pred term.Term) *int {
	v := firstObject(g, subj, pred)
	if v == nil {
		return nil
	}
	n, err := strconv.Atoi(v.Lexical)
	if err != nil {
		return nil
	}
	return &n
}

// resolveCollection walks an RDF collection (rdf:first/rdf:rest chain
// terminated by rdf:nil), used for sh:in's value list.
func resolveCollection(g *store.Graph, head term.Term) ([]term.Term, error) {
	var out []term.Term
	cur := head
	nilIRI := term.IRI(rdf.Nil)
	for !cur.Equal(nilIRI) {
		first := firstObject(g, cur, term.IRI(rdf.First))
		if first == nil {
			break
		}
		out = append(out, *first)
		rest := firstObject(g, cur, term.IRI(rdf.Rest))
		if rest == nil {
			break
		}
		cur = *rest
	}
	return out, nil
}
