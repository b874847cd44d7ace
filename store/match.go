package store

import (
	"sort"

	"github.com/vigilgraph/reasoner/term"
)

// Pattern is a triple pattern with optionally bound positions. A nil
// Term pointer means "unbound"; the helpers BindSubject etc. construct
// these conveniently.
type Pattern struct {
	Subject, Predicate, Object *term.Term
}

// BindSubject returns a copy of p with Subject bound to t.
func (p Pattern) BindSubject(t term.Term) Pattern { p.Subject = &t; return p }

// BindPredicate returns a copy of p with Predicate bound to t.
func (p Pattern) BindPredicate(t term.Term) Pattern { p.Predicate = &t; return p }

// BindObject returns a copy of p with Object bound to t.
func (p Pattern) BindObject(t term.Term) Pattern { p.Object = &t; return p }

// Cursor is a restartable, lazily-advanced view over a Match result.
// Each call to Graph.Match constructs a fresh Cursor positioned before
// the first row; Next advances it.
type Cursor struct {
	rows []*StoredTriple
	pos  int
}

// Next advances the cursor, reporting whether a row is available.
func (c *Cursor) Next() bool {
	if c.pos >= len(c.rows) {
		return false
	}
	c.pos++
	return true
}

// Triple returns the current row. Valid only after Next returned true.
func (c *Cursor) Triple() StoredTriple { return *c.rows[c.pos-1] }

// Len reports the total number of rows the cursor will yield.
func (c *Cursor) Len() int { return len(c.rows) }

// bound pairs a matched direction with its interned handle, used while
// planning a Match query.
type bound struct {
	dir Direction
	h   term.Handle
}

// Match returns a cursor over all stored triples whose bound positions
// in pattern match. Query planning selects the index whose bound
// position carries the smallest posting list, then scans and
// post-filters against any remaining bound positions; unbound patterns
// fall back to the full insertion-ordered list.
func (g *Graph) Match(p Pattern) *Cursor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var bounds []bound
	if p.Subject != nil {
		if h, ok := g.handleOf(*p.Subject); ok {
			bounds = append(bounds, bound{DirSubject, h})
		} else {
			return &Cursor{} // bound term never interned: no matches possible
		}
	}
	if p.Predicate != nil {
		if h, ok := g.handleOf(*p.Predicate); ok {
			bounds = append(bounds, bound{DirPredicate, h})
		} else {
			return &Cursor{}
		}
	}
	if p.Object != nil {
		if h, ok := g.handleOf(*p.Object); ok {
			bounds = append(bounds, bound{DirObject, h})
		} else {
			return &Cursor{}
		}
	}

	if len(bounds) == 0 {
		rows := make([]*StoredTriple, 0, len(g.order))
		for _, id := range g.order {
			rows = append(rows, g.rows[id])
		}
		return &Cursor{rows: rows}
	}

	best := bounds[0]
	bestLen := g.sizeOf(best.dir, best.h)
	for _, b := range bounds[1:] {
		n := g.sizeOf(b.dir, b.h)
		if n < bestLen {
			best, bestLen = b, n
		}
	}

	ids := g.idsFor(best.dir, best.h)
	rows := make([]*StoredTriple, 0, len(ids))
	for _, id := range ids {
		row, ok := g.rows[id]
		if !ok {
			continue
		}
		if matchesRemaining(row, bounds, best) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return &Cursor{rows: rows}
}

func matchesRemaining(row *StoredTriple, bounds []bound, chosen bound) bool {
	for _, b := range bounds {
		if b == chosen {
			continue
		}
		if dirHandle(row, b.dir) != b.h {
			return false
		}
	}
	return true
}

func dirHandle(row *StoredTriple, dir Direction) term.Handle {
	switch dir {
	case DirSubject:
		return row.Triple.Subject.Handle
	case DirPredicate:
		return row.Triple.Predicate.Handle
	case DirObject:
		return row.Triple.Object.Handle
	default:
		return 0
	}
}

func (g *Graph) sizeOf(dir Direction, h term.Handle) int {
	idx := g.indexFor(dir)
	if pl, ok := idx[h]; ok {
		return pl.len()
	}
	return 0
}

func (g *Graph) idsFor(dir Direction, h term.Handle) []TripleID {
	idx := g.indexFor(dir)
	if pl, ok := idx[h]; ok {
		return pl.slice()
	}
	return nil
}
