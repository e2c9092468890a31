// Wayfarer plays parser-driven interactive fiction written in a Lua DSL.
// Usage: wayfarer [--version] [--config <file>] [--plain] [--serve] [--script <file>] [--trace] <game_directory>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nathoo/wayfarer/cli"
	"github.com/nathoo/wayfarer/config"
	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/save"
	"github.com/nathoo/wayfarer/engine/text"
	"github.com/nathoo/wayfarer/listener"
	"github.com/nathoo/wayfarer/loader"
	"github.com/nathoo/wayfarer/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: wayfarer [--version] [--config <file>] [--plain] [--serve] [--script <file>] [--trace] <game_directory>"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configFile string
	scriptFile string
	gameDir    string
	mode       config.Mode
	trace      bool
	version    bool
}

func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			o.version = true
		case "--plain":
			o.mode = config.ModePlain
		case "--serve":
			o.mode = config.ModeServe
		case "--trace":
			o.trace = true
		case "--script", "--config":
			if i+1 >= len(args) {
				return o, fmt.Errorf("%s requires a file path", args[i])
			}
			if args[i] == "--script" {
				o.scriptFile = args[i+1]
			} else {
				o.configFile = args[i+1]
			}
			i++
		default:
			if o.gameDir == "" {
				o.gameDir = args[i]
			}
		}
	}
	return o, nil
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}
	if opts.version {
		fmt.Printf("wayfarer %s (commit %s, built %s)\n", version, commit, date)
		return nil
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.gameDir != "" {
		cfg.GameDir = opts.gameDir
	}
	if opts.mode != "" {
		cfg.Mode = opts.mode
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w\n%s", err, usage)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	game, err := loader.Load(cfg.GameDir)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}
	for _, w := range game.Warnings {
		logger.Warn("game definition", "warning", w)
	}

	txt, err := text.New(game.Messages, logger)
	if err != nil {
		return fmt.Errorf("loading messages: %w", err)
	}

	eng, err := engine.New(engine.Config{
		Defs:      game.Defs,
		Text:      txt,
		Overrides: engine.OverridesFromDefs(game.Overrides),
		Hints:     engine.HintsFromDefs(game.Hints),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	var slots cli.SlotLister
	if cfg.SavePath != "" {
		store, err := save.Open(cfg.SavePath)
		if err != nil {
			return fmt.Errorf("opening saves: %w", err)
		}
		defer store.Close()
		slots = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Script mode: read the file, force plain output, echo commands.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()

		printHeader(game)
		c := cli.New(eng, slots)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Width = cfg.WrapWidth
		c.Run(ctx)
		return nil
	}

	switch cfg.Mode {
	case config.ModeServe:
		cm := listener.NewConnectionManager(eng, slots, cfg.WrapWidth, cfg.Telnet.MaxSessions, logger)
		return listener.NewTelnetListener(cfg.Telnet.Port, cm, logger).Start(ctx)

	case config.ModeTUI:
		if isTerminal() {
			return tui.Run(eng, slots, cfg.HistorySize)
		}
	}

	// Plain mode, or the TUI was asked for but stdout is not a terminal.
	printHeader(game)
	c := cli.New(eng, slots)
	c.Trace = opts.trace
	c.Width = cfg.WrapWidth
	c.Run(ctx)
	return nil
}

func printHeader(game *loader.Game) {
	g := game.Defs.Game
	fmt.Printf("%s v%s by %s\n\n", g.Title, g.Version, g.Author)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
