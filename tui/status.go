package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// status is what the status bar shows, read from the session after each
// command.
type status struct {
	location  string
	exits     []string
	inventory []string
	turns     int
	mode      types.Mode
}

var titleCaser = cases.Title(language.English)

// locationDisplayName derives a human-readable name from a location ID.
// "great_hall" -> "Great Hall".
func locationDisplayName(id string) string {
	return titleCaser.String(state.Name(id))
}

// refreshStatus re-reads the status bar from the session. A session that
// has ended keeps the last status.
func (m *Model) refreshStatus() {
	_ = m.engine.WithSession(m.sessionID, func(w *state.World, p *state.Player) error {
		var inv []string
		for _, id := range w.Inventory() {
			inv = append(inv, state.Name(id))
		}
		m.status = status{
			location:  p.Location,
			exits:     w.Exits(p.Location),
			inventory: inv,
			turns:     p.Turns,
			mode:      p.Mode,
		}
		return nil
	})
}

// renderStatusBar produces a full-width inverted status line showing the
// current location, exits, inventory and turn count.
func (m Model) renderStatusBar() string {
	s := m.status

	left := fmt.Sprintf(" %s | Exits: %s", locationDisplayName(s.location), strings.Join(s.exits, ","))
	if s.mode != "" && s.mode != types.ModePlaying {
		left += " | " + modeLabel(s.mode)
	}
	right := fmt.Sprintf("T:%d ", s.turns)

	// Show inventory names if they fit, otherwise just the count.
	if len(s.inventory) > 0 {
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(s.inventory, ", "), s.turns)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(s.inventory), s.turns)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

func modeLabel(mode types.Mode) string {
	switch mode {
	case types.ModeAwaitingUnlock, types.ModeAwaitingOpen:
		return "Code?"
	default:
		return "Yes/No?"
	}
}
