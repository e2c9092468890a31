package cli

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// DefaultSlot is used by /save and /load without a name.
const DefaultSlot = "quicksave"

// The helpers below back the meta commands of every front end. Each returns
// the lines to show.

// HelpLines lists the meta and game commands.
func HelpLines() []string {
	return []string{
		"System:",
		"  /save [name]  Save game (default: " + DefaultSlot + ")",
		"  /load [name]  Load game (default: " + DefaultSlot + ")",
		"  /slots        List saved games",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Game commands:",
		"  look (l)                  Describe your surroundings",
		"  examine <thing> (x)       Look closely at something",
		"  go <dir>                  Move (or just type n/s/e/w/u/d)",
		"  take <item> [from <box>]  Pick something up",
		"  take all [except <item>]  Pick up everything here",
		"  drop <item>               Put something down",
		"  put <item> in/on <thing>  Put something in or on something",
		"  open / unlock / close     Work doors, boxes and locks",
		"  inventory (i)             Check what you're carrying",
		"  hint                      Ask for a nudge",
		"  restart / quit            Start over or stop playing",
		"  again (g)                 Repeat your last command",
		"",
		"Chain commands with 'then' or ';'.",
	}
}

// SaveLines saves session id to slot, or to DefaultSlot when slot is empty.
func SaveLines(eng *engine.Engine, id, slot string, slots SlotLister) []string {
	if slots == nil {
		return []string{"Saving is not available."}
	}
	if slot == "" {
		slot = DefaultSlot
	}
	return eng.SaveSlot(id, slot, slots).Output
}

// LoadLines restores session id from slot, or from DefaultSlot.
func LoadLines(eng *engine.Engine, id, slot string, slots SlotLister) []string {
	if slots == nil {
		return []string{"Loading is not available."}
	}
	if slot == "" {
		slot = DefaultSlot
	}
	return eng.LoadSlot(id, slot, slots).Output
}

// SlotLines lists the saved games for the engine's game.
func SlotLines(eng *engine.Engine, slots SlotLister) []string {
	if slots == nil {
		return []string{"Saving is not available."}
	}
	names, err := slots.List(eng.Defs().Game.Title)
	if err != nil {
		return []string{fmt.Sprintf("Listing saves failed: %v", err)}
	}
	if len(names) == 0 {
		return []string{"No saved games."}
	}
	return []string{"Saved games: " + strings.Join(names, ", ")}
}

// StateLines dumps the session for debugging.
func StateLines(eng *engine.Engine, id string) []string {
	var out []string
	err := eng.WithSession(id, func(w *state.World, p *state.Player) error {
		out = append(out,
			fmt.Sprintf("Turn: %d", p.Turns),
			fmt.Sprintf("Location: %s", p.Location),
			fmt.Sprintf("Mode: %s", p.Mode),
			fmt.Sprintf("Inventory: %v", w.Inventory()),
		)
		if p.Hints.Phase != "" {
			out = append(out, fmt.Sprintf("Hints: %s (%d shown)", p.Hints.Phase, p.Hints.Count))
		}
		return nil
	})
	if err != nil {
		return []string{err.Error()}
	}
	return out
}

// UnknownMeta is the reply to an unrecognized slash command.
func UnknownMeta(cmd string) string {
	return fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)
}

// TraceLine summarizes a result for /trace.
func TraceLine(result types.Result) string {
	return fmt.Sprintf("[trace] mode=%s exits=%v", result.Mode, result.Directions)
}
