package commands

import (
	"errors"
	"slices"

	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// Take moves items into the player's inventory. Containers bring their
// contents along.
func Take(ctx *Context, cmd types.Command) []string {
	w, p := ctx.World, ctx.Player

	if len(cmd.Targets) > 0 {
		return takeFrom(ctx, cmd)
	}

	if isAll(cmd.Objects) {
		ids := excluding(w.Defs(), w.ItemsAt(p.Location), cmd.Except)
		if len(ids) == 0 {
			return []string{ctx.Text.NothingToTake()}
		}
		var out []string
		for _, id := range ids {
			out = append(out, takeItem(ctx, id))
		}
		return out
	}

	if cmd.Implied {
		t, err := resolve.Implied(w, p, "take")
		if err != nil {
			var nf *resolve.NotFoundError
			if errors.As(err, &nf) {
				return []string{ctx.Text.NothingToTake()}
			}
			return []string{failure(ctx, "take", err)}
		}
		return []string{takeItem(ctx, t.ID)}
	}

	var out []string
	for _, name := range cmd.Objects {
		out = append(out, takeNamed(ctx, name))
	}
	return out
}

// takeNamed takes one explicitly named item. Items already at the top of the
// inventory are out of scope; items nested in carried containers are taken
// out to the top level.
func takeNamed(ctx *Context, name string) string {
	w, p := ctx.World, ctx.Player

	inv := w.Inventory()
	nested := slices.DeleteFunc(w.InventoryScope(), func(id string) bool {
		return slices.Contains(inv, id)
	})
	scope := append(nested, w.LocationScope(p.Location)...)

	id, err := resolve.InScope(w, scope, name)
	if err != nil {
		if _, serr := resolve.Scenery(w, p, name); serr == nil {
			return ctx.Text.CannotTake(name)
		}
		return failure(ctx, "take", err)
	}
	return takeItem(ctx, id)
}

// takeFrom handles "take X from C", looking only inside C.
func takeFrom(ctx *Context, cmd types.Command) []string {
	w, p := ctx.World, ctx.Player

	container, err := resolve.Container(w, p, cmd.Targets[0])
	if err != nil {
		return []string{failure(ctx, "take", err)}
	}
	cname := ownerName(container)
	if !w.ContainerOpen(container) {
		return []string{ctx.Text.ContainerClosed(cname)}
	}

	inside := w.Contents(container)
	if isAll(cmd.Objects) {
		ids := excluding(w.Defs(), inside, cmd.Except)
		if len(ids) == 0 {
			return []string{ctx.Text.Empty(cname)}
		}
		var out []string
		for _, id := range ids {
			out = append(out, takeItem(ctx, id))
		}
		return out
	}
	if cmd.Implied {
		return []string{ctx.Text.WhatToVerb("take")}
	}

	var out []string
	for _, name := range cmd.Objects {
		id, err := resolve.InScope(w, inside, name)
		if err != nil {
			out = append(out, ctx.Text.NotInContainer(name, cname))
			continue
		}
		out = append(out, takeItem(ctx, id))
	}
	return out
}

func takeItem(ctx *Context, id string) string {
	from := ctx.World.OwnerOf(id)
	if from.Kind == state.OwnerItem && ctx.World.Carrying(id) {
		ctx.World.Remove(id)
	} else {
		ctx.World.MoveToPlayer(id)
	}
	if from.Kind == state.OwnerItem || from.Kind == state.OwnerScenery {
		return ctx.Text.TakenFrom(state.Name(id), ownerName(from))
	}
	return ctx.Text.Taken(state.Name(id))
}

// Drop leaves carried items at the player's location. A dropped container
// keeps its contents.
func Drop(ctx *Context, cmd types.Command) []string {
	w, p := ctx.World, ctx.Player

	if isAll(cmd.Objects) {
		ids := excluding(w.Defs(), w.Inventory(), cmd.Except)
		if len(ids) == 0 {
			return []string{ctx.Text.InventoryEmpty()}
		}
		var out []string
		for _, id := range ids {
			out = append(out, dropItem(ctx, id))
		}
		return out
	}

	if cmd.Implied {
		if len(w.Inventory()) == 0 {
			return []string{ctx.Text.InventoryEmpty()}
		}
		t, err := resolve.Implied(w, p, "drop")
		if err != nil {
			return []string{failure(ctx, "drop", err)}
		}
		return []string{dropItem(ctx, t.ID)}
	}

	var out []string
	for _, name := range cmd.Objects {
		id, err := resolve.InScope(w, w.InventoryScope(), name)
		if err != nil {
			out = append(out, ctx.Text.NotCarrying(name))
			continue
		}
		out = append(out, dropItem(ctx, id))
	}
	return out
}

func dropItem(ctx *Context, id string) string {
	ctx.World.MoveToLocation(id, ctx.Player.Location)
	return ctx.Text.Dropped(state.Name(id))
}
