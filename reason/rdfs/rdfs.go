// Package rdfs implements the RDFS reasoner: seminaive materialization
// of the standard entailment rules — subClassOf and subPropertyOf
// transitive/reflexive closure, rdf:type propagation via subClassOf,
// domain/range type derivation, and property-instance propagation via
// subPropertyOf.
//
// Keeps a mutable class/property graph of super/sub sets for the SCC
// pass, but re-derives closure triples explicitly back into the store
// rather than only answering subclass/subproperty queries off the live
// structure.
package rdfs

import (
	"context"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/internal/clog"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/rdf"
	"github.com/vigilgraph/reasoner/vocab/rdfs"
)

// Result summarizes one Close call.
type Result struct {
	Rounds  int
	Derived int
}

var (
	typeIRI          = term.IRI(rdf.Type)
	subClassOfIRI    = term.IRI(rdfs.SubClassOf)
	subPropertyOfIRI = term.IRI(rdfs.SubPropertyOf)
	domainIRI        = term.IRI(rdfs.Domain)
	rangeIRI         = term.IRI(rdfs.Range)
)

// Close runs seminaive RDFS closure over g until no new triples are
// derivable, or ctx is cancelled at a round boundary (already
// materialized triples remain, since each round's derivations are
// sound in isolation). SCC collapse for cyclic subClassOf runs once,
// before the first round.
func Close(ctx context.Context, g *store.Graph) (*Result, error) {
	if err := collapseSubClassCycles(g); err != nil {
		return nil, err
	}

	res := &Result{}
	frontier := initialFrontier(g)

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return res, errs.Wrap(errs.Cancelled, "rdfs: closure cancelled", err)
		}

		var next []store.StoredTriple
		for _, f := range frontier {
			for _, cand := range deriveFrom(g, f) {
				id, err := g.Insert(cand.Triple, cand.Prov)
				if err == nil {
					row, _ := g.ByID(id)
					next = append(next, row)
					res.Derived++
				}
				// ErrDuplicate: already present, not a new frontier member.
			}
		}
		if clog.V(2) {
			clog.Infof("rdfs: round %d derived %d triples", res.Rounds, len(next))
		}
		frontier = next
		res.Rounds++
	}
	return res, nil
}

// candidate is a triple not yet inserted, paired with the provenance it
// would carry if genuinely new.
type candidate struct {
	Triple store.Triple
	Prov   store.Provenance
}

// initialFrontier seeds the seminaive loop with every triple currently
// in the graph — round 0 derives from asserted facts, later rounds only
// from each round's genuinely new output.
func initialFrontier(g *store.Graph) []store.StoredTriple {
	cur := g.Match(store.Pattern{})
	var out []store.StoredTriple
	for cur.Next() {
		out = append(out, cur.Triple())
	}
	return out
}

// deriveFrom returns every candidate triple entailed by f in combination
// with the graph's current state, per the rule dispatched on f's
// predicate.
func deriveFrom(g *store.Graph, f store.StoredTriple) []candidate {
	switch {
	case f.Triple.Predicate.Equal(subClassOfIRI):
		return deriveFromSubClassOf(g, f)
	case f.Triple.Predicate.Equal(subPropertyOfIRI):
		return deriveFromSubPropertyOf(g, f)
	case f.Triple.Predicate.Equal(typeIRI):
		return deriveFromType(g, f)
	case f.Triple.Predicate.Equal(domainIRI):
		return deriveFromDomain(g, f)
	case f.Triple.Predicate.Equal(rangeIRI):
		return deriveFromRange(g, f)
	default:
		return deriveFromPropertyInstance(g, f)
	}
}

// deriveFromSubClassOf handles (C subClassOf D): reflexive closure for
// both declared classes, transitive closure in both directions, and
// type propagation for individuals already typed C.
func deriveFromSubClassOf(g *store.Graph, f store.StoredTriple) []candidate {
	c, d := f.Triple.Subject, f.Triple.Object
	var out []candidate

	// Reflexive: declaring C subClassOf D declares both C and D as
	// classes, each subClassOf itself.
	out = append(out,
		candidate{
			Triple: store.Triple{Subject: c, Predicate: subClassOfIRI, Object: c},
			Prov:   store.Inferred("rdfs:subClassOf-reflexive", []store.TripleID{f.ID}),
		},
		candidate{
			Triple: store.Triple{Subject: d, Predicate: subClassOfIRI, Object: d},
			Prov:   store.Inferred("rdfs:subClassOf-reflexive", []store.TripleID{f.ID}),
		},
	)

	// Transitive: D subClassOf E, for any existing E, yields C subClassOf E.
	cur := g.Match(store.Pattern{}.BindSubject(d).BindPredicate(subClassOfIRI))
	for cur.Next() {
		e := cur.Triple().Triple.Object
		out = append(out, candidate{
			Triple: store.Triple{Subject: c, Predicate: subClassOfIRI, Object: e},
			Prov:   store.Inferred("rdfs:subClassOf-trans", []store.TripleID{f.ID, cur.Triple().ID}),
		})
	}
	// Transitive: B subClassOf C, for any existing B, yields B subClassOf D.
	cur = g.Match(store.Pattern{}.BindPredicate(subClassOfIRI).BindObject(c))
	for cur.Next() {
		b := cur.Triple().Triple.Subject
		out = append(out, candidate{
			Triple: store.Triple{Subject: b, Predicate: subClassOfIRI, Object: d},
			Prov:   store.Inferred("rdfs:subClassOf-trans", []store.TripleID{cur.Triple().ID, f.ID}),
		})
	}
	// Type propagation: x rdf:type C, C subClassOf D => x rdf:type D.
	cur = g.Match(store.Pattern{}.BindPredicate(typeIRI).BindObject(c))
	for cur.Next() {
		x := cur.Triple().Triple.Subject
		out = append(out, candidate{
			Triple: store.Triple{Subject: x, Predicate: typeIRI, Object: d},
			Prov:   store.Inferred("rdfs:type-subclass", []store.TripleID{cur.Triple().ID, f.ID}),
		})
	}
	return out
}

// deriveFromSubPropertyOf handles (P subPropertyOf Q): reflexive
// closure for both declared properties, transitive closure, and
// instance propagation for existing (x P y) triples.
func deriveFromSubPropertyOf(g *store.Graph, f store.StoredTriple) []candidate {
	p, q := f.Triple.Subject, f.Triple.Object
	var out []candidate

	out = append(out,
		candidate{
			Triple: store.Triple{Subject: p, Predicate: subPropertyOfIRI, Object: p},
			Prov:   store.Inferred("rdfs:subPropertyOf-reflexive", []store.TripleID{f.ID}),
		},
		candidate{
			Triple: store.Triple{Subject: q, Predicate: subPropertyOfIRI, Object: q},
			Prov:   store.Inferred("rdfs:subPropertyOf-reflexive", []store.TripleID{f.ID}),
		},
	)

	cur := g.Match(store.Pattern{}.BindSubject(q).BindPredicate(subPropertyOfIRI))
	for cur.Next() {
		r := cur.Triple().Triple.Object
		out = append(out, candidate{
			Triple: store.Triple{Subject: p, Predicate: subPropertyOfIRI, Object: r},
			Prov:   store.Inferred("rdfs:subPropertyOf-trans", []store.TripleID{f.ID, cur.Triple().ID}),
		})
	}
	cur = g.Match(store.Pattern{}.BindPredicate(subPropertyOfIRI).BindObject(p))
	for cur.Next() {
		o := cur.Triple().Triple.Subject
		out = append(out, candidate{
			Triple: store.Triple{Subject: o, Predicate: subPropertyOfIRI, Object: q},
			Prov:   store.Inferred("rdfs:subPropertyOf-trans", []store.TripleID{cur.Triple().ID, f.ID}),
		})
	}

	cur = g.Match(store.Pattern{}.BindPredicate(p))
	for cur.Next() {
		row := cur.Triple()
		out = append(out, candidate{
			Triple: store.Triple{Subject: row.Triple.Subject, Predicate: q, Object: row.Triple.Object},
			Prov:   store.Inferred("rdfs:subPropertyOf-prop", []store.TripleID{row.ID, f.ID}),
		})
	}
	return out
}

// deriveFromType handles (x rdf:type C): propagate to every declared
// ancestor of C already known via subClassOf.
func deriveFromType(g *store.Graph, f store.StoredTriple) []candidate {
	x, c := f.Triple.Subject, f.Triple.Object
	var out []candidate
	cur := g.Match(store.Pattern{}.BindSubject(c).BindPredicate(subClassOfIRI))
	for cur.Next() {
		d := cur.Triple().Triple.Object
		out = append(out, candidate{
			Triple: store.Triple{Subject: x, Predicate: typeIRI, Object: d},
			Prov:   store.Inferred("rdfs:type-subclass", []store.TripleID{f.ID, cur.Triple().ID}),
		})
	}
	return out
}

// deriveFromDomain handles (P rdfs:domain D): every (x P y) yields
// (x rdf:type D).
func deriveFromDomain(g *store.Graph, f store.StoredTriple) []candidate {
	p, d := f.Triple.Subject, f.Triple.Object
	var out []candidate
	cur := g.Match(store.Pattern{}.BindPredicate(p))
	for cur.Next() {
		row := cur.Triple()
		out = append(out, candidate{
			Triple: store.Triple{Subject: row.Triple.Subject, Predicate: typeIRI, Object: d},
			Prov:   store.Inferred("rdfs:domain", []store.TripleID{row.ID, f.ID}),
		})
	}
	return out
}

// deriveFromRange handles (P rdfs:range D): every (x P y) yields
// (y rdf:type D).
func deriveFromRange(g *store.Graph, f store.StoredTriple) []candidate {
	p, d := f.Triple.Subject, f.Triple.Object
	var out []candidate
	cur := g.Match(store.Pattern{}.BindPredicate(p))
	for cur.Next() {
		row := cur.Triple()
		out = append(out, candidate{
			Triple: store.Triple{Subject: row.Triple.Object, Predicate: typeIRI, Object: d},
			Prov:   store.Inferred("rdfs:range", []store.TripleID{row.ID, f.ID}),
		})
	}
	return out
}

// deriveFromPropertyInstance handles a generic (x P y): if P already has
// a declared domain/range or super-properties, apply them to this new
// instance (the mirror image of deriveFromDomain/Range/SubPropertyOf,
// needed when the instance triple itself is the frontier member rather
// than the schema triple).
func deriveFromPropertyInstance(g *store.Graph, f store.StoredTriple) []candidate {
	p := f.Triple.Predicate
	var out []candidate

	cur := g.Match(store.Pattern{}.BindSubject(p).BindPredicate(domainIRI))
	for cur.Next() {
		d := cur.Triple().Triple.Object
		out = append(out, candidate{
			Triple: store.Triple{Subject: f.Triple.Subject, Predicate: typeIRI, Object: d},
			Prov:   store.Inferred("rdfs:domain", []store.TripleID{f.ID, cur.Triple().ID}),
		})
	}
	cur = g.Match(store.Pattern{}.BindSubject(p).BindPredicate(rangeIRI))
	for cur.Next() {
		d := cur.Triple().Triple.Object
		out = append(out, candidate{
			Triple: store.Triple{Subject: f.Triple.Object, Predicate: typeIRI, Object: d},
			Prov:   store.Inferred("rdfs:range", []store.TripleID{f.ID, cur.Triple().ID}),
		})
	}
	cur = g.Match(store.Pattern{}.BindSubject(p).BindPredicate(subPropertyOfIRI))
	for cur.Next() {
		q := cur.Triple().Triple.Object
		out = append(out, candidate{
			Triple: store.Triple{Subject: f.Triple.Subject, Predicate: q, Object: f.Triple.Object},
			Prov:   store.Inferred("rdfs:subPropertyOf-prop", []store.TripleID{f.ID, cur.Triple().ID}),
		})
	}
	return out
}
