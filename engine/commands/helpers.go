package commands

import (
	"errors"
	"slices"

	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/state"
)

// failure maps a resolution error to the verb-specific message.
func failure(ctx *Context, verb string, err error) string {
	var (
		amb *resolve.AmbiguityError
		nc  *resolve.NotContainerError
		no  *resolve.NotOpenableError
		nf  *resolve.NotFoundError
	)
	switch {
	case errors.As(err, &amb):
		return ctx.Text.Ambiguous(verb, names(amb.Candidates))
	case errors.As(err, &nc):
		return ctx.Text.NotAContainer(nc.Name)
	case errors.As(err, &no):
		return ctx.Text.NotOpenable(no.Name)
	case errors.As(err, &nf):
		if nf.Name == "" || nf.Name == verb || parser.IsPronoun(nf.Name) {
			return ctx.Text.WhatToVerb(verb)
		}
		return ctx.Text.NotPresent(nf.Name)
	}
	return ctx.Text.NotUnderstood()
}

func names(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = state.Name(id)
	}
	return out
}

// OpenableName is the display name of an openable: the entity's own name,
// or the first target name for a location's door.
func OpenableName(defs *state.Defs, ref state.OpenableRef) string {
	if ref.Kind == state.RefLocation {
		if targets := defs.TargetNames(ref); len(targets) > 0 {
			return targets[0]
		}
	}
	return state.Name(ref.ID)
}

// ownerName is the display name of a container owner.
func ownerName(o state.Owner) string {
	return state.Name(o.ID)
}

// isAll reports whether the objects name everything in scope.
func isAll(objects []string) bool {
	return len(objects) == 1 && (objects[0] == "all" || objects[0] == "everything")
}

// excluding filters ids by the except names.
func excluding(defs *state.Defs, ids, except []string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
		for _, name := range except {
			if defs.MatchesName(state.OwnerItem, id, name) {
				return true
			}
		}
		return false
	})
}

// firstName is the object name of a command, falling back to the indirect
// phrase for forms like "climb on table" or "examine under bed".
func firstName(objects, targets []string) string {
	if len(objects) > 0 {
		return objects[0]
	}
	if len(targets) > 0 {
		return targets[0]
	}
	return ""
}

// contentsLine describes what is visible inside an open container, or that
// it is empty.
func contentsLine(ctx *Context, o state.Owner) string {
	defs := ctx.World.Defs()
	if defs.ContainerOf(o) == nil || !ctx.World.ContainerOpen(o) {
		return ""
	}
	inside := ctx.World.Contents(o)
	if len(inside) == 0 {
		return ctx.Text.Empty(ownerName(o))
	}
	return ctx.Text.Contents(ownerName(o), defs.Prepositions(o)[0], names(inside))
}
