package store

// inlineCap is the small-vector optimization threshold: the first
// inlineCap triple ids for a given index key live in a fixed array with
// no heap allocation; beyond that, they overflow into a heap slice.
const inlineCap = 8

// posting is the per-index-key value type: a small-vector of TripleIDs
// kept in stable insertion order (ascending TripleID, since ids are
// assigned monotonically).
type posting struct {
	inline   [inlineCap]TripleID
	n        int // number of entries used in inline, when overflow is nil
	overflow []TripleID
}

// add appends id to the posting list. Callers guarantee id is not
// already present (insertion is checked at the quad-dedup layer above).
func (p *posting) add(id TripleID) {
	if p.overflow != nil {
		p.overflow = append(p.overflow, id)
		return
	}
	if p.n < inlineCap {
		p.inline[p.n] = id
		p.n++
		return
	}
	p.overflow = make([]TripleID, p.n, p.n*2+1)
	copy(p.overflow, p.inline[:p.n])
	p.overflow = append(p.overflow, id)
}

// remove deletes id from the posting list, preserving relative order of
// the remaining entries. Reports whether id was found.
func (p *posting) remove(id TripleID) bool {
	if p.overflow != nil {
		for i, v := range p.overflow {
			if v == id {
				p.overflow = append(p.overflow[:i], p.overflow[i+1:]...)
				return true
			}
		}
		return false
	}
	for i := 0; i < p.n; i++ {
		if p.inline[i] == id {
			copy(p.inline[i:p.n-1], p.inline[i+1:p.n])
			p.n--
			return true
		}
	}
	return false
}

// len reports the number of entries currently held.
func (p *posting) len() int {
	if p.overflow != nil {
		return len(p.overflow)
	}
	return p.n
}

// each calls fn for every TripleID in insertion order, stopping early if
// fn returns false.
func (p *posting) each(fn func(TripleID) bool) {
	if p.overflow != nil {
		for _, v := range p.overflow {
			if !fn(v) {
				return
			}
		}
		return
	}
	for i := 0; i < p.n; i++ {
		if !fn(p.inline[i]) {
			return
		}
	}
}

// slice materializes the posting list as a plain slice, for callers that
// need to sort or otherwise bulk-process it.
func (p *posting) slice() []TripleID {
	out := make([]TripleID, 0, p.len())
	p.each(func(id TripleID) bool {
		out = append(out, id)
		return true
	})
	return out
}
