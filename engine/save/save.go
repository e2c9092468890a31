// Package save implements JSON serialization of a session and a bbolt-backed
// store of named save slots.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version string         `json:"version"`
	Game    string         `json:"game"`
	Player  PlayerData     `json:"player"`
	World   state.Snapshot `json:"world"`
}

// PlayerData is the saved part of a Player.
type PlayerData struct {
	Location  string     `json:"location"`
	Mode      types.Mode `json:"mode"`
	Pending   string     `json:"pending,omitempty"` // OpenableRef.String()
	HintPhase string     `json:"hint_phase,omitempty"`
	HintCount int        `json:"hint_count,omitempty"`
	Turns     int        `json:"turns"`
}

// Save serializes a session's world and player to JSON bytes.
func Save(w *state.World, p *state.Player) ([]byte, error) {
	defs := w.Defs()
	data := SaveData{
		Version: defs.Game.Version,
		Game:    defs.Game.Title,
		Player: PlayerData{
			Location:  p.Location,
			Mode:      p.Mode,
			HintPhase: p.Hints.Phase,
			HintCount: p.Hints.Count,
			Turns:     p.Turns,
		},
		World: w.Snapshot(),
	}
	if p.Pending != nil {
		data.Player.Pending = p.Pending.String()
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	// Ensure maps are never nil after load.
	if sd.World.Owners == nil {
		sd.World.Owners = map[string]state.Owner{}
	}
	if sd.World.Seq == nil {
		sd.World.Seq = map[string]int{}
	}
	if sd.World.Locks == nil {
		sd.World.Locks = map[string]state.LockState{}
	}
	if sd.Player.Mode == "" {
		sd.Player.Mode = types.ModePlaying
	}
	return &sd, nil
}

// Apply restores loaded save data onto a session. Saves from another game or
// naming unknown locations are rejected and leave the session untouched.
func Apply(sd *SaveData, w *state.World, p *state.Player) error {
	defs := w.Defs()
	if sd.Game != defs.Game.Title {
		return fmt.Errorf("save is for %q, not %q", sd.Game, defs.Game.Title)
	}
	if _, ok := defs.Locations[sd.Player.Location]; !ok {
		return fmt.Errorf("save names unknown location %q", sd.Player.Location)
	}

	var pending *state.OpenableRef
	if sd.Player.Pending != "" {
		ref, err := state.ParseOpenableRef(sd.Player.Pending)
		if err != nil {
			return fmt.Errorf("applying save: %w", err)
		}
		pending = &ref
	}

	if err := w.Restore(sd.World); err != nil {
		return err
	}
	*p = state.Player{
		Location: sd.Player.Location,
		Mode:     sd.Player.Mode,
		Pending:  pending,
		Hints:    state.HintState{Phase: sd.Player.HintPhase, Count: sd.Player.HintCount},
		Turns:    sd.Player.Turns,
	}
	return nil
}
