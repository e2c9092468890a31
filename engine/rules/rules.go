package rules

import (
	"sort"

	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// Select filters overrides by When criteria and conditions, ranks the
// survivors and returns the winner, or nil when none applies.
func Select(overrides []types.OverrideDef, w *state.World, p *state.Player,
	verb, objectID, targetID string) *types.OverrideDef {

	// Filter: When match + conditions.
	var candidates []types.OverrideDef
	for _, o := range overrides {
		if !MatchesCommand(o.When, verb, objectID, targetID, p.Location) {
			continue
		}
		if !EvalAllConditions(o.Conditions, w, p) {
			continue
		}
		candidates = append(candidates, o)
	}

	if len(candidates) == 0 {
		return nil
	}

	// Rank: specificity (desc) → priority (desc) → source order (asc).
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := Specificity(candidates[i]), Specificity(candidates[j])
		if si != sj {
			return si > sj
		}
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].SourceOrder < candidates[j].SourceOrder
	})

	// Select first.
	return &candidates[0]
}

// Phase returns the name of the first hint phase, in definition order, whose
// conditions all pass. It returns "" when none does.
func Phase(hints []types.HintDef, w *state.World, p *state.Player) string {
	sorted := make([]types.HintDef, len(hints))
	copy(sorted, hints)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	for _, h := range sorted {
		if EvalAllConditions(h.Conditions, w, p) {
			return h.Phase
		}
	}
	return ""
}
