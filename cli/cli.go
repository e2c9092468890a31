// Package cli provides line-based I/O, output formatting and meta-command
// dispatch for one wayfarer session. It serves the plain terminal, script
// playback and each telnet connection.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/types"
)

// SlotLister is a save store that can list its slots. *save.Store
// implements it.
type SlotLister interface {
	engine.Slots
	List(game string) ([]string, error)
}

// CLI handles line-based interaction with one player.
type CLI struct {
	Engine    *engine.Engine
	SessionID string     // generated when empty
	Slots     SlotLister // nil disables /save and /load
	In        io.Reader
	Out       io.Writer
	Width     int // wrap output at this many columns; 0 disables wrapping
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI on stdin and stdout wired to the given engine.
func New(eng *engine.Engine, slots SlotLister) *CLI {
	return &CLI{
		Engine: eng,
		Slots:  slots,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the session and loops prompt → input → dispatch → output until
// input ends, the player quits or ctx is cancelled.
func (c *CLI) Run(ctx context.Context) {
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
	c.printResult(c.Engine.OnSessionStart(c.SessionID))
	defer c.Engine.OnSessionEnd(c.SessionID)

	scanner := bufio.NewScanner(c.In)
	for ctx.Err() == nil {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printSystem("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else if input != "" {
			c.lastCmd = input
		}

		result := c.Engine.ProcessCommand(c.SessionID, input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
		if result.Quit {
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the session should end.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.printLines(SaveLines(c.Engine, c.SessionID, arg, c.Slots))

	case "/load":
		c.printLines(LoadLines(c.Engine, c.SessionID, arg, c.Slots))

	case "/slots":
		c.printSystemLines(SlotLines(c.Engine, c.Slots))

	case "/help":
		c.printLines(HelpLines())

	case "/state":
		c.printSystemLines(StateLines(c.Engine, c.SessionID))

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(UnknownMeta(cmd))
	}

	return false
}

func (c *CLI) printTrace(result types.Result) {
	c.printLine(TraceLine(result))
}

func (c *CLI) printResult(result types.Result) {
	c.printLines(result.Output)
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printSystemLines(lines []string) {
	for _, line := range lines {
		c.printSystem(line)
	}
}

func (c *CLI) printLine(text string) {
	if c.Width > 0 {
		text = wordwrap.String(text, c.Width)
	}
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	c.printLine("[" + text + "]")
}
