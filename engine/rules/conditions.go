// Package rules evaluates declarative conditions, selects custom verb
// overrides and determines the current hint phase.
package rules

import (
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// EvalCondition evaluates a single condition against a session's world and
// player.
func EvalCondition(c types.Condition, w *state.World, p *state.Player) bool {
	switch c.Type {
	case "has_item":
		item, _ := c.Params["item"].(string)
		return w.Carrying(item)

	case "in_location":
		loc, _ := c.Params["location"].(string)
		return p.Location == loc

	case "item_in":
		item, _ := c.Params["item"].(string)
		in, _ := c.Params["in"].(string)
		return itemIn(w, item, in)

	case "is_open":
		id, _ := c.Params["target"].(string)
		ref, ok := w.Defs().OpenableByID(id)
		return ok && w.IsOpen(ref)

	case "is_unlocked":
		id, _ := c.Params["target"].(string)
		ref, ok := w.Defs().OpenableByID(id)
		return ok && !w.IsLocked(ref)

	case "visited":
		loc, _ := c.Params["location"].(string)
		return w.Visited(loc)

	case "turns_gt":
		return p.Turns > toInt(c.Params["value"])

	case "not":
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, w, p)

	default:
		return false
	}
}

// itemIn reports whether item sits directly in a container, or anywhere at a
// location when in names one.
func itemIn(w *state.World, item, in string) bool {
	defs := w.Defs()
	owner := w.OwnerOf(item)
	if _, ok := defs.Locations[in]; ok {
		return w.HolderOf(item) == state.Owner{Kind: state.OwnerLocation, ID: in}
	}
	return (owner.Kind == state.OwnerItem || owner.Kind == state.OwnerScenery) && owner.ID == in
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, w *state.World, p *state.Player) bool {
	for _, c := range conditions {
		if !EvalCondition(c, w, p) {
			return false
		}
	}
	return true
}

// toInt converts an any value to int, handling float64 from Lua.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
