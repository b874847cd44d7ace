package owldl

import "github.com/vigilgraph/reasoner/reason/owllite"

// NewTableau builds a Tableau over tb with pairwise blocking (subset
// blocking is unsound once nominals can re-introduce edges between
// already-blocked nodes) and ExtraRules wired to extraRules, adding the
// oneOf rule owllite's core does not cover. ⊓/⊔/∃/∀/⊑/hasValue and
// cardinality-of-any-n are all inherited unmodified from
// owllite.Tableau.
func NewTableau(tb *owllite.TBox, maxDepth int) *owllite.Tableau {
	t := owllite.NewTableau(tb, maxDepth)
	t.Mode = owllite.BlockPairwise
	t.ExtraRules = extraRules
	return t
}

// extraRules implements the one OWL DL rule owllite's core tableau does
// not already cover: oneOf / nominal. {a1,...,an} in a node's label is
// rewritten to a Union over Named(a1)...Named(an) and re-added, so
// owllite's own ⊔ branch-and-backtrack machinery decides which nominal
// the node is identified with — this package does not duplicate
// branching. >=n P.C and <=n P.C are both handled directly by
// owllite.Tableau now (applyMinCardinality/clashOf), since OWL Lite's
// own grammar already has cardinality restrictions, just bounded to 0
// or 1 by convention rather than by the rule itself.
func extraRules(s *owllite.State, t *owllite.Tableau) (changed bool, clashed bool) {
	for _, id := range s.NodeIDs() {
		for _, c := range s.Labels(id) {
			if c.Kind != owllite.ExprOneOf {
				continue
			}
			union := owllite.Union(c.Operands...)
			if s.AddLabel(id, union) {
				changed = true
			}
		}
	}
	return changed, false
}
