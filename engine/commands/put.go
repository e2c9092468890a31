package commands

import (
	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// Put places items in or on a container. Checks run in a fixed order and the
// first failure wins; nothing changes unless every check passes.
func Put(ctx *Context, cmd types.Command) []string {
	w, p := ctx.World, ctx.Player
	what := firstName(cmd.Objects, nil)

	// 1. The preposition must introduce a container at all.
	if cmd.Preposition == "" || len(cmd.Targets) == 0 {
		if what == "" || cmd.Implied {
			return []string{ctx.Text.WhatToVerb("put")}
		}
		return []string{ctx.Text.PutWhere(what)}
	}
	if !state.SupportsPreposition(cmd.Preposition) {
		return []string{ctx.Text.UnsupportedPreposition(cmd.Preposition)}
	}

	// 2. Resolve the container; scenery without a container is distinct
	// from nothing found.
	container, err := resolve.Container(w, p, cmd.Targets[0])
	if err != nil {
		return []string{failure(ctx, "put", err)}
	}
	cname := ownerName(container)

	// 3-4. Closed, then preposition mismatch.
	switch out, suggestion := w.CheckContainer(container, cmd.Preposition); out {
	case state.PutNotContainer:
		return []string{ctx.Text.NotAContainer(cname)}
	case state.PutClosed:
		return []string{ctx.Text.ContainerClosed(cname)}
	case state.PutWrongPreposition:
		return []string{ctx.Text.WrongPreposition(cname, suggestion)}
	}

	// 5. Resolve the items.
	var ids []string
	switch {
	case isAll(cmd.Objects):
		ids = excluding(w.Defs(), w.Inventory(), cmd.Except)
		if len(ids) == 0 {
			return []string{ctx.Text.InventoryEmpty()}
		}
	case cmd.Implied:
		t, err := resolve.Implied(w, p, "drop")
		if err != nil {
			return []string{failure(ctx, "put", err)}
		}
		ids = []string{t.ID}
	}

	var out []string
	if ids == nil {
		for _, name := range cmd.Objects {
			id, err := resolve.Object(w, p, name)
			if err != nil {
				out = append(out, failure(ctx, "put", err))
				continue
			}
			out = append(out, putItem(ctx, container, id, cmd.Preposition))
		}
		return out
	}
	for _, id := range ids {
		out = append(out, putItem(ctx, container, id, cmd.Preposition))
	}
	return out
}

// putItem runs the item-level checks and inserts. Contents of id stay inside
// it and follow it to the container's holder.
func putItem(ctx *Context, container state.Owner, id, prep string) string {
	item, cname := state.Name(id), ownerName(container)

	// 6-8. Already there, filter, capacity, circularity.
	switch ctx.World.CheckInsert(container, id) {
	case state.PutNotContainer:
		return ctx.Text.NotAContainer(cname)
	case state.PutClosed:
		return ctx.Text.ContainerClosed(cname)
	case state.PutAlreadyThere:
		return ctx.Text.AlreadyThere(item, cname)
	case state.PutRejected:
		return ctx.Text.ItemRejected(item, cname)
	case state.PutFull:
		return ctx.Text.ContainerFull(cname)
	case state.PutCircular:
		return ctx.Text.Circular(item, cname)
	}

	// 9-12. Re-home under the container.
	ctx.World.Insert(container, id)
	return ctx.Text.Put(item, prep, cname)
}
