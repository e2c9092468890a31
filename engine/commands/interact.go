package commands

import (
	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// SceneryVerbs are answered from a scenery's canned responses.
var SceneryVerbs = []string{
	"climb", "punch", "kick", "drink", "eat",
	"push", "pull", "touch", "smell", "listen", "read",
}

// Interact answers a scenery verb. Scenery must be named explicitly; items
// only respond to read.
func Interact(ctx *Context, cmd types.Command) []string {
	w, p := ctx.World, ctx.Player
	name := firstName(cmd.Objects, cmd.Targets)
	if name == "" || (len(cmd.Objects) > 0 && cmd.Implied) {
		return []string{ctx.Text.WhatToVerb(cmd.Verb)}
	}

	if id, err := resolve.Scenery(w, p, name); err == nil {
		if resp := w.Defs().Scenery[id].Responses[cmd.Verb]; resp != "" {
			return []string{resp}
		}
		return []string{ctx.Text.SceneryNoResponse(cmd.Verb, state.Name(id))}
	}

	id, err := resolve.Object(w, p, name)
	if err != nil {
		return []string{failure(ctx, cmd.Verb, err)}
	}
	if cmd.Verb == "read" {
		if text := w.Defs().Items[id].Examined; text != "" {
			return []string{text}
		}
	}
	return []string{ctx.Text.CannotInteract(cmd.Verb, state.Name(id))}
}

// Hint shows the next rung of the hint ladder for the current puzzle phase.
func Hint(ctx *Context, _ types.Command) []string {
	h := ctx.Hints
	if h == nil || h.Determine == nil {
		return []string{ctx.Text.NoHints()}
	}
	phase := h.Determine(ctx.Player, ctx.World)
	ladder, ok := h.Phases[phase]
	if phase == "" || !ok {
		return []string{ctx.Text.NoHints()}
	}
	level := ctx.Player.NextHint(phase)
	if ladder[level-1] == "" {
		return []string{ctx.Text.NoHints()}
	}
	return []string{ctx.Text.Hint(level, ladder[level-1])}
}
