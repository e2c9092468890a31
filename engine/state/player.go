package state

import "github.com/nathoo/wayfarer/types"

// HintState tracks the progressive hint ladder for one player.
type HintState struct {
	Phase string
	Count int
}

// Player is one session's player.
type Player struct {
	Location string
	Mode     types.Mode
	Pending  *OpenableRef // openable waiting for a code
	Hints    HintState
	Turns    int
}

// NewPlayer places a fresh player at the start location. Games with a start
// prompt begin by asking it.
func NewPlayer(defs *Defs) *Player {
	mode := types.ModePlaying
	if defs.Game.StartPrompt != "" {
		mode = types.ModeAwaitingStart
	}
	return &Player{
		Location: defs.Game.Start,
		Mode:     mode,
	}
}

// AwaitCode records ref as pending and switches to the matching code mode.
func (p *Player) AwaitCode(ref OpenableRef, mode types.Mode) {
	r := ref
	p.Pending = &r
	p.Mode = mode
}

// ClearPending drops the pending openable and resumes play.
func (p *Player) ClearPending() {
	p.Pending = nil
	p.Mode = types.ModePlaying
}

// NextHint advances the hint ladder for phase and returns the 1-based rung
// to show. A phase change restarts the ladder; the rung never exceeds 3.
func (p *Player) NextHint(phase string) int {
	if phase != p.Hints.Phase {
		p.Hints = HintState{Phase: phase}
	}
	if p.Hints.Count < 3 {
		p.Hints.Count++
	}
	return p.Hints.Count
}
