package store

import (
	"sync"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/term"
)

// tripleKey is the interned-handle shape of a Triple, used as the quad
// dedup map key.
type tripleKey struct {
	S, P, O term.Handle
}

// Graph is one named graph: its own quad table, three direction indices,
// and a single reader-writer lock. Each Match takes the read lock and
// each Insert the write lock; reasoners insert derived triples one at a
// time, so no batch of derived triples is committed under one lock.
type Graph struct {
	mu sync.RWMutex

	id       GraphID
	interner *term.Interner

	quads map[tripleKey]TripleID
	rows  map[TripleID]*StoredTriple
	order []TripleID // insertion order, stable iteration for unbound queries

	subjIdx map[term.Handle]*posting
	predIdx map[term.Handle]*posting
	objIdx  map[term.Handle]*posting

	nextID TripleID
	seq    uint64
}

func newGraph(id GraphID, interner *term.Interner) *Graph {
	return &Graph{
		id:       id,
		interner: interner,
		quads:    make(map[tripleKey]TripleID),
		rows:     make(map[TripleID]*StoredTriple),
		subjIdx:  make(map[term.Handle]*posting),
		predIdx:  make(map[term.Handle]*posting),
		objIdx:   make(map[term.Handle]*posting),
	}
}

// ErrDuplicate is returned by Insert when the exact (graph, triple)
// already exists; it is non-fatal and the existing triple's provenance
// is left untouched.
var ErrDuplicate = errs.New(errs.InputError, "duplicate triple")

// Insert adds triple to g with the given provenance. If an identical
// triple already exists in this graph, Insert returns the existing
// TripleID and ErrDuplicate — the earlier provenance wins and the new
// one is discarded, satisfying insertion idempotence.
func (g *Graph) Insert(t Triple, prov Provenance) (TripleID, error) {
	if err := t.Validate(); err != nil {
		return 0, errs.Wrap(errs.InputError, "insert", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.interner.Intern(t.Subject)
	p := g.interner.Intern(t.Predicate)
	o := g.interner.Intern(t.Object)
	key := tripleKey{S: s.Handle, P: p.Handle, O: o.Handle}

	if id, ok := g.quads[key]; ok {
		return id, ErrDuplicate
	}

	g.nextID++
	id := g.nextID
	g.seq++

	row := &StoredTriple{
		ID:         id,
		Graph:      g.id,
		Triple:     Triple{Subject: s, Predicate: p, Object: o},
		AssertedAt: g.seq,
		Provenance: prov,
	}
	g.quads[key] = id
	g.rows[id] = row
	g.order = append(g.order, id)

	g.postingFor(g.subjIdx, s.Handle).add(id)
	g.postingFor(g.predIdx, p.Handle).add(id)
	g.postingFor(g.objIdx, o.Handle).add(id)

	return id, nil
}

func (g *Graph) postingFor(idx map[term.Handle]*posting, h term.Handle) *posting {
	pl, ok := idx[h]
	if !ok {
		pl = &posting{}
		idx[h] = pl
	}
	return pl
}

// Remove deletes triple from g, reporting whether it was present.
func (g *Graph) Remove(t Triple) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeLocked(t)
}

func (g *Graph) removeLocked(t Triple) bool {
	sh, ok1 := g.handleOf(t.Subject)
	ph, ok2 := g.handleOf(t.Predicate)
	oh, ok3 := g.handleOf(t.Object)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	key := tripleKey{S: sh, P: ph, O: oh}
	id, ok := g.quads[key]
	if !ok {
		return false
	}
	return g.removeIDLocked(id, key, sh, ph, oh)
}

func (g *Graph) removeIDLocked(id TripleID, key tripleKey, sh, ph, oh term.Handle) bool {
	delete(g.quads, key)
	delete(g.rows, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	if pl, ok := g.subjIdx[sh]; ok {
		pl.remove(id)
	}
	if pl, ok := g.predIdx[ph]; ok {
		pl.remove(id)
	}
	if pl, ok := g.objIdx[oh]; ok {
		pl.remove(id)
	}
	return true
}

// RemoveID removes the stored triple by id, returning it if present.
// Used by the RDFS reasoner to retract a sensor triple and cascade the
// removal into its inferred dependents.
func (g *Graph) RemoveID(id TripleID) (StoredTriple, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	row, ok := g.rows[id]
	if !ok {
		return StoredTriple{}, false
	}
	cp := *row
	key := tripleKey{S: row.Triple.Subject.Handle, P: row.Triple.Predicate.Handle, O: row.Triple.Object.Handle}
	g.removeIDLocked(id, key, key.S, key.P, key.O)
	return cp, true
}

func (g *Graph) handleOf(t term.Term) (term.Handle, bool) {
	return g.interner.Resolve(t)
}

// Handle resolves t to its stable interned handle, for callers (the
// SPARQL join-reordering optimizer) that need to feed a bound pattern
// term into PostingSize without re-deriving handleOf's logic. ok is
// false if t was never interned in this store.
func (g *Graph) Handle(t term.Term) (term.Handle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.handleOf(t)
}

// Contains reports whether triple t is stored in g. Expected O(1) on a
// populated index.
func (g *Graph) Contains(t Triple) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	sh, ok1 := g.handleOf(t.Subject)
	ph, ok2 := g.handleOf(t.Predicate)
	oh, ok3 := g.handleOf(t.Object)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	_, ok := g.quads[tripleKey{S: sh, P: ph, O: oh}]
	return ok
}

// ByID returns the stored triple for id.
func (g *Graph) ByID(id TripleID) (StoredTriple, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	row, ok := g.rows[id]
	if !ok {
		return StoredTriple{}, false
	}
	return *row, true
}

// Stats summarizes g's current size.
type Stats struct {
	TripleCount      int
	DistinctSubjects int
	DistinctPredicates int
	DistinctObjects  int
	IndexBytes       int64
}

// Stats returns g's current size summary.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var idxBytes int64
	for _, pl := range g.subjIdx {
		idxBytes += int64(pl.len()) * 8
	}
	for _, pl := range g.predIdx {
		idxBytes += int64(pl.len()) * 8
	}
	for _, pl := range g.objIdx {
		idxBytes += int64(pl.len()) * 8
	}
	return Stats{
		TripleCount:        len(g.rows),
		DistinctSubjects:   len(g.subjIdx),
		DistinctPredicates: len(g.predIdx),
		DistinctObjects:    len(g.objIdx),
		IndexBytes:         idxBytes,
	}
}

// PostingSize returns the size of the posting list for a bound
// direction's handle, used by the SPARQL join-reordering optimizer's
// cost estimate. ok is false if the term was never interned or the
// direction is unsupported.
func (g *Graph) PostingSize(dir Direction, h term.Handle) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx := g.indexFor(dir)
	if idx == nil {
		return 0, false
	}
	pl, ok := idx[h]
	if !ok {
		return 0, false
	}
	return pl.len(), true
}

// Direction names a bound position in a triple pattern.
type Direction uint8

const (
	DirSubject Direction = iota
	DirPredicate
	DirObject
)

func (g *Graph) indexFor(dir Direction) map[term.Handle]*posting {
	switch dir {
	case DirSubject:
		return g.subjIdx
	case DirPredicate:
		return g.predIdx
	case DirObject:
		return g.objIdx
	default:
		return nil
	}
}

// Len reports the number of triples currently stored in g.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rows)
}
