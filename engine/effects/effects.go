// Package effects implements override mutations via the Apply function.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"log/slog"
	"strings"

	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// Context carries the resolved command context used for interpolation.
type Context struct {
	Verb     string
	ObjectID string
	TargetID string
}

// Apply applies a list of effects to a session's world and player and
// returns the output text collected. Effects naming unknown entities are
// skipped.
func Apply(w *state.World, p *state.Player, effects []types.Effect, ctx Context) []string {
	defs := w.Defs()
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, p, ctx))

		case "give_item":
			item := param(eff, "item", ctx)
			if _, ok := defs.Items[item]; ok {
				w.MoveToPlayer(item)
			}

		case "remove_item":
			item := param(eff, "item", ctx)
			if _, ok := defs.Items[item]; ok {
				w.Detach(item)
			}

		case "move_item":
			item := param(eff, "item", ctx)
			to := param(eff, "to", ctx)
			if _, ok := defs.Items[item]; !ok {
				continue
			}
			moveItem(w, item, to)

		case "move_player":
			loc := param(eff, "location", ctx)
			if _, ok := defs.Locations[loc]; ok {
				p.Location = loc
			}

		case "unlock":
			if ref, ok := defs.OpenableByID(param(eff, "target", ctx)); ok {
				ls := w.Lock(ref)
				ls.Locked = false
				w.SetLock(ref, ls)
			}

		case "open":
			if ref, ok := defs.OpenableByID(param(eff, "target", ctx)); ok {
				w.SetLock(ref, state.LockState{Open: true})
			}

		case "close":
			if ref, ok := defs.OpenableByID(param(eff, "target", ctx)); ok {
				ls := w.Lock(ref)
				ls.Open = false
				w.SetLock(ref, ls)
			}

		case "stop":
			return output

		default:
			// Unknown effect types are ignored; the loader rejects them.
		}
	}

	return output
}

// moveItem places item at a location, in a container, or with the player
// when to is "player". Scripted moves ignore container filters and capacity
// but never nest an item inside itself.
func moveItem(w *state.World, item, to string) {
	defs := w.Defs()
	switch {
	case to == "player":
		w.MoveToPlayer(item)
	case isLocation(defs, to):
		w.MoveToLocation(item, to)
	default:
		for _, kind := range []state.OwnerKind{state.OwnerItem, state.OwnerScenery} {
			c := state.Owner{Kind: kind, ID: to}
			if defs.ContainerOf(c) == nil {
				continue
			}
			if w.WouldCycle(c, item) {
				slog.Warn("skipping circular move_item", "item", item, "to", to)
				return
			}
			w.Insert(c, item)
			return
		}
	}
}

func isLocation(defs *state.Defs, id string) bool {
	_, ok := defs.Locations[id]
	return ok
}

func param(eff types.Effect, key string, ctx Context) string {
	v, _ := eff.Params[key].(string)
	return resolveTemplate(v, ctx)
}

// interpolate replaces template variables in text.
func interpolate(text string, p *state.Player, ctx Context) string {
	r := strings.NewReplacer(
		"{verb}", ctx.Verb,
		"{object}", state.Name(ctx.ObjectID),
		"{target}", state.Name(ctx.TargetID),
		"{location}", state.Name(p.Location),
	)
	return r.Replace(text)
}

// resolveTemplate handles {object} and {target} in effect params like
// GiveItem("{object}").
func resolveTemplate(s string, ctx Context) string {
	s = strings.ReplaceAll(s, "{object}", ctx.ObjectID)
	s = strings.ReplaceAll(s, "{target}", ctx.TargetID)
	return s
}
