// Package rdfs contains IRI constants of the RDF Schema vocabulary.
package rdfs

const (
	NS     = `http://www.w3.org/2000/01/rdf-schema#`
	Prefix = `rdfs:`
)

const (
	// Classes

	Resource  = NS + `Resource`
	Class     = NS + `Class`
	Literal   = NS + `Literal`
	Datatype  = NS + `Datatype`
	Container = NS + `Container`

	// Properties

	SubClassOf    = NS + `subClassOf`
	SubPropertyOf = NS + `subPropertyOf`
	Domain        = NS + `domain`
	Range         = NS + `range`
	Label         = NS + `label`
	Comment       = NS + `comment`
	Member        = NS + `member`
)
