package engine

import (
	"errors"

	"github.com/nathoo/wayfarer/engine/commands"
	"github.com/nathoo/wayfarer/engine/save"
	"github.com/nathoo/wayfarer/types"
)

// Slots stores saved games by game title and slot name. *save.Store
// implements it.
type Slots interface {
	Put(game, slot string, data []byte) error
	Get(game, slot string) ([]byte, error)
}

// SaveSlot writes a session's state to a named slot.
func (e *Engine) SaveSlot(id, slot string, slots Slots) types.Result {
	s := e.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := save.Save(s.world, s.player)
	if err == nil {
		err = slots.Put(e.defs.Game.Title, slot, data)
	}
	if err != nil {
		e.logger.Error("saving game", "session", id, "slot", slot, "error", err)
		return e.result(s, []string{e.text.SaveFailed()}, false)
	}
	e.logger.Debug("game saved", "session", id, "slot", slot)
	return e.result(s, []string{e.text.Saved(slot)}, false)
}

// LoadSlot replaces a session's state with a named slot and describes the
// restored location. A failed load leaves the session as it was.
func (e *Engine) LoadSlot(id, slot string, slots Slots) types.Result {
	s := e.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := slots.Get(e.defs.Game.Title, slot)
	if errors.Is(err, save.ErrSlotNotFound) {
		return e.result(s, []string{e.text.NoSave(slot)}, false)
	}
	if err == nil {
		var sd *save.SaveData
		sd, err = save.Load(data)
		if err == nil {
			err = save.Apply(sd, s.world, s.player)
		}
	}
	if err != nil {
		e.logger.Error("loading game", "session", id, "slot", slot, "error", err)
		return e.result(s, []string{e.text.SaveFailed()}, false)
	}

	e.logger.Debug("game loaded", "session", id, "slot", slot)
	out := []string{e.text.Loaded(slot)}
	if s.player.Mode == types.ModePlaying {
		out = append(out, commands.Describe(e.context(s), true)...)
	}
	return e.result(s, out, false)
}
