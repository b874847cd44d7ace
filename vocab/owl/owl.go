// Package owl contains IRI constants of the OWL vocabulary used by the
// OWL Lite and OWL DL reasoners.
package owl

const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl:`
)

const (
	// Classes

	Class          = NS + `Class`
	Thing          = NS + `Thing`
	Nothing        = NS + `Nothing`
	Restriction    = NS + `Restriction`
	ObjectProperty = NS + `ObjectProperty`
	DatatypeProperty = NS + `DatatypeProperty`

	// Class relations

	EquivalentClass    = NS + `equivalentClass`
	DisjointWith       = NS + `disjointWith`
	ComplementOf       = NS + `complementOf`
	IntersectionOf     = NS + `intersectionOf`
	UnionOf            = NS + `unionOf`
	OneOf              = NS + `oneOf`

	// Property characteristics

	InverseOf               = NS + `inverseOf`
	SymmetricProperty       = NS + `SymmetricProperty`
	TransitiveProperty      = NS + `TransitiveProperty`
	FunctionalProperty      = NS + `FunctionalProperty`
	InverseFunctionalProperty = NS + `InverseFunctionalProperty`

	// Restrictions

	OnProperty      = NS + `onProperty`
	SomeValuesFrom  = NS + `someValuesFrom`
	AllValuesFrom   = NS + `allValuesFrom`
	HasValue        = NS + `hasValue`
	MinCardinality  = NS + `minCardinality`
	MaxCardinality  = NS + `maxCardinality`
	Cardinality     = NS + `cardinality`

	// Individuals

	SameAs        = NS + `sameAs`
	DifferentFrom = NS + `differentFrom`
	AllDifferent  = NS + `AllDifferent`
	DistinctMembers = NS + `distinctMembers`
)
