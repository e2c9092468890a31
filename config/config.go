// Package config holds runtime settings: where the game lives, how output
// is wrapped, where saves go and which front end to run.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WAYFARER_"

// Mode selects the front end.
type Mode string

const (
	ModeTUI   Mode = "tui"
	ModePlain Mode = "plain"
	ModeServe Mode = "serve"
)

func (m *Mode) UnmarshalText(text []byte) error {
	switch Mode(text) {
	case ModeTUI, ModePlain, ModeServe:
		*m = Mode(text)
	default:
		return fmt.Errorf("unknown mode: %s", text)
	}
	return nil
}

type Config struct {
	GameDir     string       `yaml:"game_dir"`
	LogLevel    string       `yaml:"log_level"`
	WrapWidth   int          `yaml:"wrap_width"`
	SavePath    string       `yaml:"save_path"`
	Mode        Mode         `yaml:"mode"`
	HistorySize int          `yaml:"history_size"`
	Telnet      TelnetConfig `yaml:"telnet"`
}

type TelnetConfig struct {
	Port        uint16 `yaml:"port"`
	MaxSessions int    `yaml:"max_sessions"`
}

// Default returns the settings used when nothing else is given.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		WrapWidth:   78,
		SavePath:    "wayfarer.db",
		Mode:        ModeTUI,
		HistorySize: 100,
		Telnet: TelnetConfig{
			Port:        4000,
			MaxSessions: 64,
		},
	}
}

// Load builds a config from defaults, an optional YAML file and WAYFARER_*
// environment variables, in that order. Variables in a .env file in the
// working directory are loaded first but never replace the real environment.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
		}
	}

	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return c, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	el := errors.NewErrorList()

	if v, ok := lookup(EnvPrefix + "GAME_DIR"); ok {
		c.GameDir = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "SAVE_PATH"); ok {
		c.SavePath = v
	}
	if v, ok := lookup(EnvPrefix + "MODE"); ok {
		el.Add(c.Mode.UnmarshalText([]byte(v)))
	}
	el.Add(intEnv(lookup, "WRAP_WIDTH", &c.WrapWidth))
	el.Add(intEnv(lookup, "HISTORY_SIZE", &c.HistorySize))
	el.Add(intEnv(lookup, "TELNET_MAX_SESSIONS", &c.Telnet.MaxSessions))
	if v, ok := lookup(EnvPrefix + "TELNET_PORT"); ok {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			el.Add(fmt.Errorf("parsing %sTELNET_PORT: %w", EnvPrefix, err))
		} else {
			c.Telnet.Port = uint16(n)
		}
	}

	return el.Err()
}

// intEnv sets *dst from the variable EnvPrefix+name when it is present.
func intEnv(lookup func(string) (string, bool), name string, dst *int) error {
	v, ok := lookup(EnvPrefix + name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parsing %s%s: %w", EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.GameDir == "" {
		el.Add(fmt.Errorf("game_dir is required"))
	}
	if _, err := c.Level(); err != nil {
		el.Add(err)
	}
	if c.WrapWidth < 0 {
		el.Add(fmt.Errorf("wrap_width must not be negative"))
	}
	if c.HistorySize < 1 {
		el.Add(fmt.Errorf("history_size must be at least 1"))
	}
	switch c.Mode {
	case ModeTUI, ModePlain:
	case ModeServe:
		el.Add(c.Telnet.Validate())
	default:
		el.Add(fmt.Errorf("unknown mode: %s", c.Mode))
	}

	return el.Err()
}

func (c *TelnetConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Port == 0 {
		el.Add(fmt.Errorf("telnet.port must be set to a positive integer"))
	}
	if c.MaxSessions < 0 {
		el.Add(fmt.Errorf("telnet.max_sessions must not be negative"))
	}

	return el.Err()
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("parsing log_level: %w", err)
	}
	return l, nil
}
