package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleItem = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	stylePrompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindItem
	kindExits
	kindHint
	kindPrompt
	kindSystem
	kindError
	kindTrace
)

// classifyLine guesses what an output line is from the default message
// wording. Games that override messages simply get plain narrative styling.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "There is a "):
		return kindItem
	case strings.HasPrefix(line, "Exits:"),
		line == "There are no obvious exits.":
		return kindExits
	case strings.HasPrefix(line, "Hint "):
		return kindHint
	case strings.HasPrefix(line, "You don't see"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You aren't"),
		strings.HasPrefix(line, "I don't understand"),
		strings.HasPrefix(line, "That's not the right code"):
		return kindError
	case strings.HasSuffix(line, "?"),
		strings.HasSuffix(line, "(yes/no)"):
		return kindPrompt
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindItem:
		return styledItemHere(line)
	case kindExits:
		return styleExits.Render(line)
	case kindHint:
		return styleHint.Render(line)
	case kindPrompt:
		return stylePrompt.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledItemHere renders "There is a lamp here." with the item name bold.
func styledItemHere(line string) string {
	const prefix, suffix = "There is a ", " here."
	if !strings.HasSuffix(line, suffix) {
		return styleNarrative.Render(line)
	}
	name := strings.TrimSuffix(strings.TrimPrefix(line, prefix), suffix)
	return styleNarrative.Render(prefix) + styleItem.Render(name) + styleNarrative.Render(suffix)
}

func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
