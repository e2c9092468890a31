package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "wayfarer.yaml", `
game_dir: games/cottage
log_level: debug
wrap_width: 60
mode: serve
telnet:
  port: 2323
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	testutil.AssertEqual(t, "game dir", c.GameDir, "games/cottage")
	testutil.AssertEqual(t, "wrap width", c.WrapWidth, 60)
	testutil.AssertEqual(t, "mode", c.Mode, ModeServe)
	testutil.AssertEqual(t, "port", c.Telnet.Port, uint16(2323))
	testutil.AssertEqual(t, "default kept", c.Telnet.MaxSessions, 64)
	testutil.AssertEqual(t, "default save path", c.SavePath, "wayfarer.db")
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		content string
		expErr  string
	}{
		"bad yaml": {
			content: "game_dir: [unclosed",
			expErr:  "parsing YAML",
		},
		"bad mode": {
			content: "mode: web",
			expErr:  "unknown mode: web",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", tt.content))
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	testutil.AssertErrorContains(t, err, "reading")
}

func TestApplyEnv(t *testing.T) {
	tests := map[string]struct {
		vars   map[string]string
		check  func(t *testing.T, c *Config)
		expErr string
	}{
		"overrides": {
			vars: map[string]string{
				"WAYFARER_GAME_DIR":            "/srv/game",
				"WAYFARER_LOG_LEVEL":           "warn",
				"WAYFARER_SAVE_PATH":           "/tmp/saves.db",
				"WAYFARER_MODE":                "plain",
				"WAYFARER_WRAP_WIDTH":          "0",
				"WAYFARER_HISTORY_SIZE":        "20",
				"WAYFARER_TELNET_PORT":         "5555",
				"WAYFARER_TELNET_MAX_SESSIONS": "8",
			},
			check: func(t *testing.T, c *Config) {
				testutil.AssertEqual(t, "game dir", c.GameDir, "/srv/game")
				testutil.AssertEqual(t, "log level", c.LogLevel, "warn")
				testutil.AssertEqual(t, "save path", c.SavePath, "/tmp/saves.db")
				testutil.AssertEqual(t, "mode", c.Mode, ModePlain)
				testutil.AssertEqual(t, "wrap width", c.WrapWidth, 0)
				testutil.AssertEqual(t, "port", c.Telnet.Port, uint16(5555))
				testutil.AssertEqual(t, "max sessions", c.Telnet.MaxSessions, 8)
				testutil.AssertEqual(t, "history size", c.HistorySize, 20)
			},
		},
		"nothing set": {
			vars: map[string]string{},
			check: func(t *testing.T, c *Config) {
				testutil.AssertEqual(t, "mode", c.Mode, ModeTUI)
				testutil.AssertEqual(t, "wrap width", c.WrapWidth, 78)
			},
		},
		"bad width": {
			vars:   map[string]string{"WAYFARER_WRAP_WIDTH": "wide"},
			expErr: "parsing WAYFARER_WRAP_WIDTH",
		},
		"bad max sessions": {
			vars:   map[string]string{"WAYFARER_TELNET_MAX_SESSIONS": "lots"},
			expErr: "parsing WAYFARER_TELNET_MAX_SESSIONS",
		},
		"port out of range": {
			vars:   map[string]string{"WAYFARER_TELNET_PORT": "70000"},
			expErr: "parsing WAYFARER_TELNET_PORT",
		},
		"bad mode": {
			vars:   map[string]string{"WAYFARER_MODE": "gui"},
			expErr: "unknown mode: gui",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := Default()
			err := c.ApplyEnv(env(tt.vars))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		modify func(c *Config)
		expErr string
	}{
		"valid": {
			modify: func(c *Config) {},
		},
		"no game dir": {
			modify: func(c *Config) { c.GameDir = "" },
			expErr: "game_dir is required",
		},
		"bad log level": {
			modify: func(c *Config) { c.LogLevel = "loud" },
			expErr: "parsing log_level",
		},
		"negative width": {
			modify: func(c *Config) { c.WrapWidth = -1 },
			expErr: "wrap_width must not be negative",
		},
		"serve without port": {
			modify: func(c *Config) {
				c.Mode = ModeServe
				c.Telnet.Port = 0
			},
			expErr: "telnet.port must be set",
		},
		"plain ignores telnet": {
			modify: func(c *Config) {
				c.Mode = ModePlain
				c.Telnet.Port = 0
			},
		},
		"no history": {
			modify: func(c *Config) { c.HistorySize = 0 },
			expErr: "history_size must be at least 1",
		},
		"unknown mode": {
			modify: func(c *Config) { c.Mode = "web" },
			expErr: "unknown mode: web",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := Default()
			c.GameDir = "games/cottage"
			tt.modify(c)
			err := c.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "DEBUG"
	l, err := c.Level()
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	testutil.AssertEqual(t, "level", l, slog.LevelDebug)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "WAYFARER_TEST_DOTENV=from-file\n")
	t.Setenv("WAYFARER_TEST_DOTENV", "")
	os.Unsetenv("WAYFARER_TEST_DOTENV")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	testutil.AssertEqual(t, "loaded", os.Getenv("WAYFARER_TEST_DOTENV"), "from-file")

	if err := loadDotEnv(filepath.Join(t.TempDir(), "none.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}
