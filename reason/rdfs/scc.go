package rdfs

import (
	"errors"

	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// collapseSubClassCycles finds strongly connected components among
// classes linked by rdfs:subClassOf and materializes every pairwise
// subClassOf edge within each non-trivial SCC before the seminaive loop
// starts. Without this, the transitive-closure rule alone still
// terminates (the Herbrand base is finite), but cyclic subClassOf is
// resolved via this explicit SCC pass rather than relying on that
// incidental termination, so every member of a cycle reports the
// others as both super- and subclass immediately.
func collapseSubClassCycles(g *store.Graph) error {
	edges := make(map[string][]string)
	nodes := make(map[string]term.Term)

	cur := g.Match(store.Pattern{}.BindPredicate(subClassOfIRI))
	for cur.Next() {
		row := cur.Triple()
		s, o := row.Triple.Subject, row.Triple.Object
		sk, ok := s.Lexical, o.Lexical
		nodes[sk] = s
		nodes[ok] = o
		edges[sk] = append(edges[sk], ok)
	}

	sccs := tarjanSCC(nodes, edges)
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		for _, a := range scc {
			for _, b := range scc {
				if a == b {
					continue
				}
				_, err := g.Insert(
					store.Triple{Subject: nodes[a], Predicate: subClassOfIRI, Object: nodes[b]},
					store.Inferred("rdfs:subClassOf-scc", nil),
				)
				if err != nil && !isDuplicate(err) {
					return err
				}
			}
		}
	}
	return nil
}

func isDuplicate(err error) bool { return errors.Is(err, store.ErrDuplicate) }

// tarjanSCC computes strongly connected components of the directed graph
// (nodes, edges), returning each component as a slice of node keys.
// Standard Tarjan's algorithm, iterative-free (recursive) since the
// class hierarchies this runs over are shallow in practice.
func tarjanSCC(nodes map[string]term.Term, edges map[string][]string) [][]string {
	index := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var result [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			result = append(result, comp)
		}
	}

	for v := range nodes {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}
	return result
}
