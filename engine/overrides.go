package engine

import (
	"strings"

	"github.com/nathoo/wayfarer/engine/commands"
	"github.com/nathoo/wayfarer/engine/effects"
	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/rules"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// OverridesFromDefs turns declarative override definitions into per-verb
// overrides. For each command the best matching definition, if any, has its
// effects applied; otherwise the built-in runs.
func OverridesFromDefs(defs []types.OverrideDef) map[string]commands.Override {
	byVerb := make(map[string][]types.OverrideDef)
	for _, d := range defs {
		byVerb[d.When.Verb] = append(byVerb[d.When.Verb], d)
	}

	out := make(map[string]commands.Override, len(byVerb))
	for verb, list := range byVerb {
		out[verb] = func(ctx *commands.Context, cmd types.Command) ([]string, bool) {
			objectID := entityID(ctx, firstOf(cmd.Objects))
			targetID := entityID(ctx, firstOf(cmd.Targets))

			sel := rules.Select(list, ctx.World, ctx.Player, cmd.Verb, objectID, targetID)
			if sel == nil {
				return nil, false
			}
			ectx := effects.Context{Verb: cmd.Verb, ObjectID: objectID, TargetID: targetID}
			return effects.Apply(ctx.World, ctx.Player, sel.Effects, ectx), true
		}
	}
	return out
}

// HintsFromDefs builds a hint configuration whose phase is the first
// definition, in order, whose conditions hold. It returns nil for no hints.
func HintsFromDefs(defs []types.HintDef) *commands.HintConfig {
	if len(defs) == 0 {
		return nil
	}
	phases := make(map[string][3]string, len(defs))
	for _, d := range defs {
		phases[d.Phase] = d.Hints
	}
	return &commands.HintConfig{
		Phases: phases,
		Determine: func(p *state.Player, w *state.World) string {
			return rules.Phase(defs, w, p)
		},
	}
}

// entityID resolves a command name to an item or scenery ID for override
// matching. Unresolvable names are matched as typed, with spaces joined by
// underscores.
func entityID(ctx *commands.Context, name string) string {
	if name == "" {
		return ""
	}
	if id, err := resolve.Object(ctx.World, ctx.Player, name); err == nil {
		return id
	}
	if id, err := resolve.Scenery(ctx.World, ctx.Player, name); err == nil {
		return id
	}
	return strings.ReplaceAll(name, " ", "_")
}

func firstOf(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
