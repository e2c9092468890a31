package loader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/engine/text"
	"github.com/nathoo/wayfarer/types"
)

// ValidationError collects all validation errors.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Known effect types.
var validEffectTypes = map[string]bool{
	"say":         true,
	"give_item":   true,
	"remove_item": true,
	"move_item":   true,
	"move_player": true,
	"unlock":      true,
	"open":        true,
	"close":       true,
	"stop":        true,
}

// Known condition types.
var validConditionTypes = map[string]bool{
	"has_item":    true,
	"in_location": true,
	"item_in":     true,
	"is_open":     true,
	"is_unlocked": true,
	"visited":     true,
	"turns_gt":    true,
	"not":         true,
}

var validMechanisms = map[types.Mechanism]bool{
	types.MechanismNone: true,
	types.MechanismKey:  true,
	types.MechanismCode: true,
}

// validate checks the compiled game for referential integrity and
// consistency. Warnings are kept on the game.
func validate(game *Game) error {
	ve := &ValidationError{}
	defs := game.Defs

	if defs.Game.Title == "" {
		ve.errorf("Game.title is required")
	}
	if defs.Game.Start == "" {
		ve.errorf("Game.start is required")
	}

	// Placement, exits and containment are checked by the world itself.
	if _, err := state.NewWorld(defs); err != nil && defs.Game.Start != "" {
		ve.errorf("%v", err)
	}

	for _, id := range sortedKeys(defs.Locations) {
		loc := defs.Locations[id]
		for dir := range loc.Exits {
			if canon, ok := parser.NormalizeDirection(dir); !ok || canon != dir {
				ve.warnf("location %q exit %q is not a direction players can type", id, dir)
			}
		}
		if loc.Openable != nil {
			validateOpenable("location "+id, loc.Openable, defs, ve)
			for _, g := range loc.Openable.Guards {
				if _, ok := loc.Exits[g]; !ok {
					ve.errorf("location %q door guards %q, which is not one of its exits", id, g)
				}
			}
		}
	}

	for _, id := range defs.ItemIDs() {
		item := defs.Items[id]
		if item.Location == "" && item.In == "" && !item.Inventory {
			ve.warnf("item %q is never placed", id)
		}
		validateContainer("item "+id, item.Container, ve)
		if item.Openable != nil {
			validateOpenable("item "+id, item.Openable, defs, ve)
			validateNoGuards("item "+id, item.Openable, ve)
		}
		if _, clash := defs.Scenery[id]; clash {
			ve.errorf("%q is both an item and scenery", id)
		}
	}

	for _, id := range defs.SceneryIDs() {
		sc := defs.Scenery[id]
		if sc.Location == "" {
			ve.warnf("scenery %q has no location", id)
		}
		validateContainer("scenery "+id, sc.Container, ve)
		if sc.Openable != nil {
			validateOpenable("scenery "+id, sc.Openable, defs, ve)
			validateNoGuards("scenery "+id, sc.Openable, ve)
		}
	}

	overrideIDs := map[string]bool{}
	for _, o := range game.Overrides {
		if overrideIDs[o.ID] {
			ve.errorf("duplicate override ID %q", o.ID)
		}
		overrideIDs[o.ID] = true
		validateOverride(o, defs, ve)
	}

	phases := map[string]bool{}
	for _, h := range game.Hints {
		if phases[h.Phase] {
			ve.errorf("duplicate hint phase %q", h.Phase)
		}
		phases[h.Phase] = true
		for i, line := range h.Hints {
			if strings.TrimSpace(line) == "" {
				ve.errorf("hint phase %q: hint %d is empty", h.Phase, i+1)
			}
		}
		validateConditions(h.Conditions, defs, ve)
	}

	for _, name := range sortedKeys(game.Messages) {
		if !text.Known(name) {
			ve.errorf("unknown message %q", name)
		}
	}

	game.Warnings = ve.Warnings
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateOpenable(owner string, op *types.OpenableDef, defs *state.Defs, ve *ValidationError) {
	if !validMechanisms[op.Mechanism] {
		ve.errorf("%s: unknown lock mechanism %q", owner, op.Mechanism)
		return
	}
	switch op.Mechanism {
	case types.MechanismKey:
		if _, ok := defs.Items[op.Key]; !ok {
			ve.errorf("%s: key %q is not a defined item", owner, op.Key)
		}
	case types.MechanismCode:
		if len(state.NormalizeCode(op.Code, op.CaseSensitive)) == 0 {
			ve.errorf("%s: code lock has an empty code", owner)
		}
	case types.MechanismNone:
		if op.RequiresUnlocking {
			ve.errorf("%s: locked but has neither key nor code", owner)
		}
	}
	if op.Open && op.RequiresUnlocking {
		ve.warnf("%s: open is ignored on a locked openable", owner)
	}
}

func validateNoGuards(owner string, op *types.OpenableDef, ve *ValidationError) {
	if len(op.Guards) > 0 {
		ve.errorf("%s: only location doors can guard exits", owner)
	}
}

func validateContainer(owner string, c *types.ContainerDef, ve *ValidationError) {
	if c == nil {
		return
	}
	if c.Capacity < 0 {
		ve.errorf("%s: negative capacity %d", owner, c.Capacity)
	}
	for _, p := range c.Prepositions {
		if !state.SupportsPreposition(p) {
			ve.errorf("%s: unsupported container preposition %q", owner, p)
		}
	}
}

func validateOverride(o types.OverrideDef, defs *state.Defs, ve *ValidationError) {
	verb := o.When.Verb
	switch {
	case verb == "":
		ve.errorf("override %q has no verb", o.ID)
	case !parser.IsVerb(verb):
		ve.errorf("override %q uses unrecognized verb %q", o.ID, verb)
	case parser.NormalizeVerb(verb) != verb:
		ve.errorf("override %q uses verb alias %q; use %q", o.ID, verb, parser.NormalizeVerb(verb))
	}
	if loc := o.When.Location; loc != "" {
		if _, ok := defs.Locations[loc]; !ok {
			ve.errorf("override %q matches undefined location %q", o.ID, loc)
		}
	}
	validateConditions(o.Conditions, defs, ve)
	validateEffects(o.Effects, defs, ve)
}

func validateConditions(conditions []types.Condition, defs *state.Defs, ve *ValidationError) {
	for _, cond := range conditions {
		if !validConditionTypes[cond.Type] {
			ve.errorf("unknown condition type %q", cond.Type)
			continue
		}

		switch cond.Type {
		case "has_item":
			checkItem(ve, "condition has_item", cond.Params["item"], defs)
		case "in_location", "visited":
			checkLocation(ve, "condition "+cond.Type, cond.Params["location"], defs)
		case "item_in":
			checkItem(ve, "condition item_in", cond.Params["item"], defs)
		case "is_open", "is_unlocked":
			checkOpenable(ve, "condition "+cond.Type, cond.Params["target"], defs)
		case "not":
			if cond.Inner != nil {
				validateConditions([]types.Condition{*cond.Inner}, defs, ve)
			}
		}
	}
}

func validateEffects(effects []types.Effect, defs *state.Defs, ve *ValidationError) {
	for _, eff := range effects {
		if !validEffectTypes[eff.Type] {
			ve.errorf("unknown effect type %q", eff.Type)
			continue
		}

		switch eff.Type {
		case "give_item", "remove_item":
			checkItem(ve, "effect "+eff.Type, eff.Params["item"], defs)
		case "move_item":
			checkItem(ve, "effect move_item", eff.Params["item"], defs)
		case "move_player":
			checkLocation(ve, "effect move_player", eff.Params["location"], defs)
		case "unlock", "open", "close":
			checkOpenable(ve, "effect "+eff.Type, eff.Params["target"], defs)
		}
	}
}

func checkItem(ve *ValidationError, what string, v any, defs *state.Defs) {
	if id, ok := v.(string); ok && !isTemplate(id) {
		if _, ok := defs.Items[id]; !ok {
			ve.errorf("%s references undefined item %q", what, id)
		}
	}
}

func checkLocation(ve *ValidationError, what string, v any, defs *state.Defs) {
	if id, ok := v.(string); ok && !isTemplate(id) {
		if _, ok := defs.Locations[id]; !ok {
			ve.errorf("%s references undefined location %q", what, id)
		}
	}
}

func checkOpenable(ve *ValidationError, what string, v any, defs *state.Defs) {
	if id, ok := v.(string); ok && !isTemplate(id) {
		if _, ok := defs.OpenableByID(id); !ok {
			ve.errorf("%s references %q, which cannot be opened", what, id)
		}
	}
}

// isTemplate returns true if the string contains a template variable.
func isTemplate(s string) bool {
	return strings.Contains(s, "{") && strings.Contains(s, "}")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
