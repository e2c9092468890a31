// Package commands maps canonical verbs to stateless handlers. All world
// mutation flows through the state package; all text through the Provider.
package commands

import (
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/engine/text"
	"github.com/nathoo/wayfarer/types"
)

// Context is everything a handler may touch for one command.
type Context struct {
	World  *state.World
	Player *state.Player
	Text   text.Provider
	Hints  *HintConfig
}

// HintConfig is the progressive hint ladder: three hints per named puzzle
// phase and a function picking the current phase.
type HintConfig struct {
	Phases    map[string][3]string
	Determine func(p *state.Player, w *state.World) string
}

// Handler runs one built-in verb.
type Handler func(ctx *Context, cmd types.Command) []string

// Override replaces a verb's behavior. Returning false defers to the
// built-in handler, if any.
type Override func(ctx *Context, cmd types.Command) ([]string, bool)

// Registry maps verbs to handlers and overrides. It is immutable once the
// engine starts and is shared by every session.
type Registry struct {
	handlers  map[string]Handler
	overrides map[string]Override
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:  make(map[string]Handler),
		overrides: make(map[string]Override),
	}
}

// Register binds verb to h. A later registration for the same verb wins.
func (r *Registry) Register(verb string, h Handler) {
	r.handlers[verb] = h
}

// RegisterOverride binds a custom override to verb. A later registration for
// the same verb wins.
func (r *Registry) RegisterOverride(verb string, o Override) {
	r.overrides[verb] = o
}

// Dispatch runs the override for cmd's verb, then the built-in handler.
// It returns false when neither handled the command so the caller can fall
// through to movement and system verbs.
func (r *Registry) Dispatch(ctx *Context, cmd types.Command) ([]string, bool) {
	if o, ok := r.overrides[cmd.Verb]; ok {
		if out, handled := o(ctx, cmd); handled {
			return out, true
		}
	}
	h, ok := r.handlers[cmd.Verb]
	if !ok {
		return nil, false
	}
	return h(ctx, cmd), true
}

// Builtins returns a registry with every built-in verb registered.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("take", Take)
	r.Register("drop", Drop)
	r.Register("put", Put)
	r.Register("examine", Examine)
	r.Register("look", Look)
	r.Register("inventory", Inventory)
	r.Register("open", Open)
	r.Register("unlock", Unlock)
	r.Register("close", Close)
	r.Register("hint", Hint)
	for _, verb := range SceneryVerbs {
		r.Register(verb, Interact)
	}
	return r
}
