// Package engine runs sessions: it owns the session table, the
// conversational state machine and sequence execution, and routes commands
// through parsing and dispatch into the per-session world.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nathoo/wayfarer/engine/commands"
	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/engine/text"
	"github.com/nathoo/wayfarer/types"
)

// ErrUnknownSession is returned for session ids that were never started.
var ErrUnknownSession = errors.New("unknown session")

// Config is everything needed to build an Engine. Only Defs is required.
type Config struct {
	Defs      *state.Defs
	Text      text.Provider
	Overrides map[string]commands.Override
	Hints     *commands.HintConfig
	Logger    *slog.Logger
}

// Engine holds the shared immutable game and every live session.
type Engine struct {
	defs     *state.Defs
	proto    *state.World
	text     text.Provider
	registry *commands.Registry
	hints    *commands.HintConfig
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// session is one player's world. mu is held for the whole of a command.
type session struct {
	mu     sync.Mutex
	world  *state.World
	player *state.Player
}

// New validates cfg and builds an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Defs == nil {
		return nil, fmt.Errorf("engine: no definitions")
	}
	proto, err := state.NewWorld(cfg.Defs)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	txt := cfg.Text
	if txt == nil {
		t, err := text.New(nil, logger)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		txt = t
	}

	registry := commands.Builtins()
	for verb, o := range cfg.Overrides {
		registry.RegisterOverride(verb, o)
	}

	return &Engine{
		defs:     cfg.Defs,
		proto:    proto,
		text:     txt,
		registry: registry,
		hints:    cfg.Hints,
		logger:   logger,
		sessions: make(map[string]*session),
	}, nil
}

// Defs returns the shared game definitions.
func (e *Engine) Defs() *state.Defs {
	return e.defs
}

func (e *Engine) newSession() *session {
	return &session{
		world:  e.proto.Clone(),
		player: state.NewPlayer(e.defs),
	}
}

// session returns the session for id, creating it if needed.
func (e *Engine) session(id string) *session {
	e.mu.RLock()
	s, ok := e.sessions[id]
	e.mu.RUnlock()
	if ok {
		return s
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[id]; ok {
		return s
	}
	s = e.newSession()
	e.sessions[id] = s
	return s
}

func (e *Engine) context(s *session) *commands.Context {
	return &commands.Context{
		World:  s.world,
		Player: s.player,
		Text:   e.text,
		Hints:  e.hints,
	}
}

// OnSessionStart creates a fresh session for id, replacing any existing one,
// and returns the opening text.
func (e *Engine) OnSessionStart(id string) types.Result {
	s := e.newSession()
	e.mu.Lock()
	e.sessions[id] = s
	e.mu.Unlock()
	e.logger.Debug("session started", "session", id)

	s.mu.Lock()
	defer s.mu.Unlock()
	return e.result(s, e.opening(e.context(s)), false)
}

// OnSessionEnd drops the session for id.
func (e *Engine) OnSessionEnd(id string) {
	e.mu.Lock()
	delete(e.sessions, id)
	e.mu.Unlock()
	e.logger.Debug("session ended", "session", id)
}

// WithSession runs fn on a session's world and player under its lock.
func (e *Engine) WithSession(id string, fn func(w *state.World, p *state.Player) error) error {
	e.mu.RLock()
	s, ok := e.sessions[id]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.world, s.player)
}

// ProcessCommand handles one line of input for a session. Sessions that do
// not exist yet are created.
func (e *Engine) ProcessCommand(id, raw string) types.Result {
	s := e.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	out, quit := e.step(s, raw)
	return e.result(s, out, quit)
}

func (e *Engine) result(s *session, out []string, quit bool) types.Result {
	return types.Result{
		Output:     out,
		Mode:       s.player.Mode,
		Directions: s.world.Exits(s.player.Location),
		Quit:       quit,
	}
}

// opening is the text shown when a game begins.
func (e *Engine) opening(ctx *commands.Context) []string {
	var out []string
	if intro := e.defs.Game.Intro; intro != "" {
		out = append(out, intro)
	}
	if ctx.Player.Mode == types.ModeAwaitingStart {
		return append(out, e.defs.Game.StartPrompt)
	}
	return append(out, commands.Describe(ctx, false)...)
}

// step runs the state machine for one input line.
func (e *Engine) step(s *session, raw string) (out []string, quit bool) {
	ctx := e.context(s)
	p := s.player

	switch p.Mode {
	case types.ModeAwaitingStart:
		switch classify(raw) {
		case answerYes:
			p.Mode = types.ModePlaying
			if e.defs.Game.Instructions != "" {
				out = append(out, e.defs.Game.Instructions)
			}
			return append(out, commands.Describe(ctx, false)...), false
		case answerNo:
			p.Mode = types.ModePlaying
			return commands.Describe(ctx, false), false
		}
		return []string{e.text.YesOrNo()}, false

	case types.ModeRestartConfirm:
		switch classify(raw) {
		case answerYes:
			s.world.Reset()
			s.player = state.NewPlayer(e.defs)
			ctx = e.context(s)
			return append([]string{e.text.Restarted()}, e.opening(ctx)...), false
		case answerNo:
			p.Mode = types.ModePlaying
			return []string{e.text.RestartCancelled()}, false
		}
		return []string{e.text.YesOrNo()}, false

	case types.ModeQuitConfirm:
		switch classify(raw) {
		case answerYes:
			p.Mode = types.ModePlaying
			return []string{e.text.QuitDone()}, true
		case answerNo:
			p.Mode = types.ModePlaying
			return []string{e.text.QuitCancelled()}, false
		}
		return []string{e.text.YesOrNo()}, false

	case types.ModeAwaitingUnlock, types.ModeAwaitingOpen:
		// The raw line is the answer, not a command.
		return commands.AnswerCode(ctx, raw), false
	}

	return e.play(ctx, raw), false
}

// play parses and runs a command line. The clauses of a sequence are parsed
// one at a time after the previous one has run, and the rest is dropped once
// the player leaves normal play.
func (e *Engine) play(ctx *commands.Context, raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{e.text.EmptyInput()}
	}

	var out []string
	pending := []string{raw}
	for len(pending) > 0 {
		cmd, err := parser.Parse(pending[0])
		pending = pending[1:]
		if err != nil {
			var pe *parser.PrepositionError
			if errors.As(err, &pe) {
				return append(out, e.text.InvalidPreposition(pe.Verb, pe.Preposition))
			}
			return append(out, e.text.NotUnderstood())
		}
		pending = append(cmd.Remaining, pending...)

		out = append(out, e.execute(ctx, cmd)...)
		ctx.Player.Turns++

		if ctx.Player.Mode != types.ModePlaying {
			break
		}
	}
	return out
}

// execute dispatches one parsed clause, falling through to movement and
// system verbs.
func (e *Engine) execute(ctx *commands.Context, cmd types.Command) []string {
	if cmd.Verb == "" {
		return []string{e.text.NotUnderstood()}
	}
	if out, ok := e.registry.Dispatch(ctx, cmd); ok {
		return out
	}

	switch cmd.Verb {
	case "go":
		return e.move(ctx, cmd)
	case "restart":
		ctx.Player.Mode = types.ModeRestartConfirm
		return []string{e.text.RestartConfirm()}
	case "quit":
		ctx.Player.Mode = types.ModeQuitConfirm
		return []string{e.text.QuitConfirm()}
	}
	return []string{e.text.NotUnderstood()}
}

// move walks the player through an exit unless a closed door guards it.
func (e *Engine) move(ctx *commands.Context, cmd types.Command) []string {
	if len(cmd.Objects) == 0 {
		return []string{e.text.GoWhere()}
	}
	w, p := ctx.World, ctx.Player
	dir := cmd.Objects[0]

	dest, ok := e.defs.Locations[p.Location].Exits[dir]
	if !ok {
		return []string{e.text.CantGoThatWay()}
	}
	if ref, guarded := w.GuardOf(p.Location, dir); guarded && !w.IsOpen(ref) {
		return []string{e.text.DoorBlocks(commands.OpenableName(e.defs, ref), w.IsLocked(ref))}
	}

	p.Location = dest
	return commands.Describe(ctx, false)
}
