// Package owllite implements the OWL Lite tableau reasoner: a
// consistency and subsumption decision procedure over the OWL Lite
// fragment (subClassOf, equivalentClass for named classes,
// subPropertyOf, domain/range, inverseOf, symmetric/transitive/
// functional/inverse-functional properties, someValuesFrom/
// allValuesFrom/hasValue restrictions with named classes, min/max
// cardinality 0 or 1).
//
// The node/label-set shape below is a struct-of-sets representation
// whose nodes link to each other by integer id, rather than a class
// hierarchy of rule objects. ClassExpr is shared with reason/owldl,
// which adds a oneOf rewrite to the expansion rule set.
package owllite

import (
	"sort"
	"strings"

	"github.com/vigilgraph/reasoner/term"
)

// ExprKind tags the recursive class-expression variant named in the
// data model: Named | Intersection | Union | Complement | OneOf |
// SomeValuesFrom | AllValuesFrom | HasValue | MinCardinality |
// MaxCardinality. This package's tableau expands every kind except
// OneOf, including cardinalities of any n; reason/owldl rewrites OneOf
// into a Union of named classes.
type ExprKind uint8

const (
	ExprNamed ExprKind = iota
	ExprIntersection
	ExprUnion
	ExprComplement
	ExprOneOf
	ExprSomeValuesFrom
	ExprAllValuesFrom
	ExprHasValue
	ExprMinCardinality
	ExprMaxCardinality
)

// ClassExpr is the recursive class-expression variant. Named carries the
// class IRI for ExprNamed and individual IRIs inside ExprOneOf's
// Operands. Property carries the restricted property's IRI for the
// restriction kinds. Value carries the fixed value for HasValue. N
// carries the cardinality bound. Operands carries sub-expressions for
// Intersection/Union/Complement(single operand)/OneOf.
type ClassExpr struct {
	Kind     ExprKind
	Named    string
	Property string
	Value    term.Term
	N        int
	Operands []ClassExpr
}

// Name builds a named-class expression.
func Name(iri string) ClassExpr { return ClassExpr{Kind: ExprNamed, Named: iri} }

// Not builds a complement expression, collapsing double negation.
func Not(c ClassExpr) ClassExpr {
	if c.Kind == ExprComplement {
		return c.Operands[0]
	}
	return ClassExpr{Kind: ExprComplement, Operands: []ClassExpr{c}}
}

// SomeValuesFrom builds an existential restriction ∃P.C.
func SomeValuesFrom(property string, c ClassExpr) ClassExpr {
	return ClassExpr{Kind: ExprSomeValuesFrom, Property: property, Operands: []ClassExpr{c}}
}

// AllValuesFrom builds a universal restriction ∀P.C.
func AllValuesFrom(property string, c ClassExpr) ClassExpr {
	return ClassExpr{Kind: ExprAllValuesFrom, Property: property, Operands: []ClassExpr{c}}
}

// HasValue builds a hasValue restriction.
func HasValue(property string, v term.Term) ClassExpr {
	return ClassExpr{Kind: ExprHasValue, Property: property, Value: v}
}

// MinCardinality builds a ≥n P restriction, optionally qualified by c.
func MinCardinality(property string, n int, c ClassExpr) ClassExpr {
	return ClassExpr{Kind: ExprMinCardinality, Property: property, N: n, Operands: []ClassExpr{c}}
}

// MaxCardinality builds a ≤n P restriction, optionally qualified by c.
func MaxCardinality(property string, n int, c ClassExpr) ClassExpr {
	return ClassExpr{Kind: ExprMaxCardinality, Property: property, N: n, Operands: []ClassExpr{c}}
}

// Intersection builds C₁⊓…⊓Cₙ.
func Intersection(cs ...ClassExpr) ClassExpr {
	return ClassExpr{Kind: ExprIntersection, Operands: cs}
}

// Union builds C₁⊔…⊔Cₙ.
func Union(cs ...ClassExpr) ClassExpr {
	return ClassExpr{Kind: ExprUnion, Operands: cs}
}

// OneOf builds {a₁,…,aₙ}, a nominal enumeration.
func OneOf(individuals ...string) ClassExpr {
	ops := make([]ClassExpr, len(individuals))
	for i, ind := range individuals {
		ops[i] = Name(ind)
	}
	return ClassExpr{Kind: ExprOneOf, Operands: ops}
}

// Thing is owl:Thing, the universal class — always satisfiable, every
// individual is trivially a member.
var Thing = Name("http://www.w3.org/2002/07/owl#Thing")

// Nothing is owl:Nothing, the empty class — a direct clash whenever it
// appears in a node's label.
var Nothing = Name("http://www.w3.org/2002/07/owl#Nothing")

// Key returns a canonical string encoding of c, used as the label-set
// map key (concept equality is structural, not pointer identity).
func (c ClassExpr) Key() string {
	var b strings.Builder
	c.writeKey(&b)
	return b.String()
}

func (c ClassExpr) writeKey(b *strings.Builder) {
	switch c.Kind {
	case ExprNamed:
		b.WriteString(c.Named)
	case ExprComplement:
		b.WriteString("¬(")
		c.Operands[0].writeKey(b)
		b.WriteByte(')')
	case ExprIntersection, ExprUnion, ExprOneOf:
		keys := make([]string, len(c.Operands))
		for i, op := range c.Operands {
			keys[i] = op.Key()
		}
		sort.Strings(keys)
		sep := "⊓"
		if c.Kind == ExprUnion {
			sep = "⊔"
		} else if c.Kind == ExprOneOf {
			sep = ","
		}
		b.WriteByte('{')
		b.WriteString(strings.Join(keys, sep))
		b.WriteByte('}')
	case ExprSomeValuesFrom, ExprAllValuesFrom:
		q := "∃"
		if c.Kind == ExprAllValuesFrom {
			q = "∀"
		}
		b.WriteString(q)
		b.WriteString(c.Property)
		b.WriteByte('.')
		c.Operands[0].writeKey(b)
	case ExprHasValue:
		b.WriteString("∋")
		b.WriteString(c.Property)
		b.WriteByte('.')
		b.WriteString(c.Value.String())
	case ExprMinCardinality, ExprMaxCardinality:
		op := "≥"
		if c.Kind == ExprMaxCardinality {
			op = "≤"
		}
		b.WriteString(op)
		b.WriteString(c.Property)
		if len(c.Operands) > 0 {
			b.WriteByte('.')
			c.Operands[0].writeKey(b)
		}
	}
}

// Equal reports whether c and o are the same class expression.
func (c ClassExpr) Equal(o ClassExpr) bool { return c.Key() == o.Key() }
