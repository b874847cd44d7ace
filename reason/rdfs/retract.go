package rdfs

import "github.com/vigilgraph/reasoner/store"

// Retract removes the sensor triple id from g and cascades the removal
// to every inferred triple whose premise closure included it —
// transitively, since an inferred triple removed in this pass may itself
// have been a premise of another. Per testable property 3, adding
// triples never removes derived triples; only removing a sensor triple
// can, and only exactly the triples whose derivation depended on it.
func Retract(g *store.Graph, id store.TripleID) (removed []store.TripleID, err error) {
	if _, ok := g.RemoveID(id); !ok {
		return nil, nil
	}
	removed = append(removed, id)

	dead := map[store.TripleID]bool{id: true}
	for {
		progress := false
		cur := g.Match(store.Pattern{})
		var toRemove []store.TripleID
		for cur.Next() {
			row := cur.Triple()
			if dead[row.ID] {
				continue
			}
			if dependsOnDead(row, dead) {
				toRemove = append(toRemove, row.ID)
			}
		}
		for _, tid := range toRemove {
			if _, ok := g.RemoveID(tid); ok {
				dead[tid] = true
				removed = append(removed, tid)
				progress = true
			}
		}
		if !progress {
			break
		}
	}
	return removed, nil
}

func dependsOnDead(row store.StoredTriple, dead map[store.TripleID]bool) bool {
	if row.Provenance.Kind != store.ProvInferred {
		return false
	}
	for _, p := range row.Provenance.Premises {
		if dead[p] {
			return true
		}
	}
	return false
}
