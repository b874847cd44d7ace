package store

import (
	"sync"

	"github.com/vigilgraph/reasoner/term"
)

// Store is the top-level handle: a registry of named Graphs sharing one
// process-wide interner, plus a lock guarding graph creation/lookup
// itself (not the graphs' contents — each Graph has its own lock).
type Store struct {
	interner *term.Interner

	mu     sync.RWMutex
	graphs map[GraphID]*Graph
}

// New creates an empty Store with a fresh interner.
func New() *Store {
	return &Store{
		interner: term.NewInterner(),
		graphs:   make(map[GraphID]*Graph),
	}
}

// Interner returns the store's shared term interner.
func (s *Store) Interner() *term.Interner { return s.interner }

// Graph returns the named graph, creating it on first use.
func (s *Store) Graph(id GraphID) *Graph {
	s.mu.RLock()
	g, ok := s.graphs[id]
	s.mu.RUnlock()
	if ok {
		return g
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok = s.graphs[id]; ok {
		return g
	}
	g = newGraph(id, s.interner)
	s.graphs[id] = g
	return g
}

// Graphs returns the ids of every graph that has been touched so far.
func (s *Store) Graphs() []GraphID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]GraphID, 0, len(s.graphs))
	for id := range s.graphs {
		out = append(out, id)
	}
	return out
}

// Clear removes every graph and its contents. The interner is left
// intact — handles remain stable for the lifetime of the process even
// across a clear, per the term model's invariant.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs = make(map[GraphID]*Graph)
}

// Stats aggregates Stats across every graph in the store.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	ids := make([]*Graph, 0, len(s.graphs))
	for _, g := range s.graphs {
		ids = append(ids, g)
	}
	s.mu.RUnlock()

	var total Stats
	for _, g := range ids {
		gs := g.Stats()
		total.TripleCount += gs.TripleCount
		total.DistinctSubjects += gs.DistinctSubjects
		total.DistinctPredicates += gs.DistinctPredicates
		total.DistinctObjects += gs.DistinctObjects
		total.IndexBytes += gs.IndexBytes
	}
	return total
}
