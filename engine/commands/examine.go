package commands

import (
	"strings"

	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// Examine describes an item, a scenery or the location's door.
func Examine(ctx *Context, cmd types.Command) []string {
	w, p := ctx.World, ctx.Player
	name := firstName(cmd.Objects, cmd.Targets)

	if name == "" || (len(cmd.Objects) > 0 && cmd.Implied) {
		t, err := resolve.Implied(w, p, "examine")
		if err != nil {
			return []string{failure(ctx, "examine", err)}
		}
		return examineItem(ctx, t.ID)
	}

	if id, err := resolve.Object(w, p, name); err == nil {
		return examineItem(ctx, id)
	}
	if id, err := resolve.Scenery(w, p, name); err == nil {
		return examineScenery(ctx, id)
	}
	if ref, err := resolve.Openable(w, p, name); err == nil && ref.Kind == state.RefLocation {
		return []string{openStatus(ctx, ref)}
	}
	return []string{ctx.Text.NotPresent(name)}
}

func examineItem(ctx *Context, id string) []string {
	def := ctx.World.Defs().Items[id]

	var out []string
	if def.Examined != "" {
		out = append(out, def.Examined)
	} else {
		out = append(out, ctx.Text.NothingSpecial(state.Name(id)))
	}
	if def.Openable != nil {
		out = append(out, openStatus(ctx, state.OpenableRef{Kind: state.RefItem, ID: id}))
	}
	if line := contentsLine(ctx, state.Owner{Kind: state.OwnerItem, ID: id}); line != "" {
		out = append(out, line)
	}
	return out
}

func examineScenery(ctx *Context, id string) []string {
	def := ctx.World.Defs().Scenery[id]

	var out []string
	switch {
	case def.Responses["examine"] != "":
		out = append(out, def.Responses["examine"])
	case def.Responses["look"] != "":
		out = append(out, def.Responses["look"])
	default:
		out = append(out, ctx.Text.NothingSpecial(state.Name(id)))
	}
	if def.Openable != nil {
		out = append(out, openStatus(ctx, state.OpenableRef{Kind: state.RefScenery, ID: id}))
	}
	if line := contentsLine(ctx, state.Owner{Kind: state.OwnerScenery, ID: id}); line != "" {
		out = append(out, line)
	}
	return out
}

func openStatus(ctx *Context, ref state.OpenableRef) string {
	ls := ctx.World.Lock(ref)
	return ctx.Text.OpenStatus(OpenableName(ctx.World.Defs(), ref), ls.Open, ls.Locked)
}

// Look describes the location in full, or examines a named thing.
func Look(ctx *Context, cmd types.Command) []string {
	if len(cmd.Objects) > 0 || len(cmd.Targets) > 0 {
		return Examine(ctx, cmd)
	}
	return Describe(ctx, true)
}

// Describe renders the player's location: the long description on the first
// visit or when forced, the short one afterwards, then what lies here and
// the exits. The location is marked visited.
func Describe(ctx *Context, forceLong bool) []string {
	w, p := ctx.World, ctx.Player
	defs := w.Defs()
	loc := defs.Locations[p.Location]

	var out []string
	if forceLong || !w.Visited(p.Location) || loc.Short == "" {
		out = append(out, loc.Description)
	} else {
		out = append(out, loc.Short)
	}
	w.MarkVisited(p.Location)

	for _, id := range w.ItemsAt(p.Location) {
		if at := defs.Items[id].AtLocation; at != "" {
			out = append(out, at)
		} else {
			out = append(out, ctx.Text.ItemHere(state.Name(id)))
		}
	}

	for _, sid := range w.SceneryAt(p.Location) {
		o := state.Owner{Kind: state.OwnerScenery, ID: sid}
		if defs.ContainerOf(o) == nil || !w.ContainerOpen(o) {
			continue
		}
		if on := w.Contents(o); len(on) > 0 {
			out = append(out, ctx.Text.ThingsOn(state.Name(sid), defs.Prepositions(o)[0], names(on)))
		}
	}

	if exits := w.Exits(p.Location); len(exits) > 0 {
		out = append(out, ctx.Text.Exits(exits))
	} else {
		out = append(out, ctx.Text.NoExits())
	}
	return out
}

// Inventory lists carried items in the order acquired. Contents of open
// containers are indented beneath them.
func Inventory(ctx *Context, _ types.Command) []string {
	w := ctx.World
	top := w.Inventory()
	if len(top) == 0 {
		return []string{ctx.Text.InventoryEmpty()}
	}

	var lines []string
	var walk func(ids []string, depth int)
	walk = func(ids []string, depth int) {
		for _, id := range ids {
			lines = append(lines, strings.Repeat("  ", depth)+carriedText(w.Defs(), id))
			o := state.Owner{Kind: state.OwnerItem, ID: id}
			if w.Defs().ContainerOf(o) != nil && w.ContainerOpen(o) {
				walk(w.Contents(o), depth+1)
			}
		}
	}
	walk(top, 0)
	return []string{ctx.Text.InventoryList(lines)}
}

func carriedText(defs *state.Defs, id string) string {
	if c := defs.Items[id].Carried; c != "" {
		return c
	}
	return state.Name(id)
}
