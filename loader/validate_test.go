package loader

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

const validBase = `
Game { title = "T", start = "hall" }
Location "hall" { description = "A hall.", exits = { north = "yard" } }
Location "yard" { description = "A yard.", exits = { south = "hall" } }
Item "key" { location = "hall" }
Item "chest" { location = "hall", container = {}, openable = { locked = true, key = "key" } }
Scenery "well" { location = "yard" }
`

func TestValidate_Errors(t *testing.T) {
	tests := map[string]struct {
		src    string
		expErr string
	}{
		"missing title": {
			src: `Game { start = "hall" }
				Location "hall" {}`,
			expErr: "Game.title is required",
		},
		"missing start": {
			src:    `Game { title = "T" }`,
			expErr: "Game.start is required",
		},
		"exit to nowhere": {
			src:    validBase + `Location "attic" { exits = { up = "sky" } }`,
			expErr: `leads to unknown location "sky"`,
		},
		"unknown item location": {
			src:    validBase + `Item "lamp" { location = "moon" }`,
			expErr: `unknown location "moon"`,
		},
		"in a non-container": {
			src:    validBase + `Item "pebble" { inside = "key" }`,
			expErr: `"key" is not a container`,
		},
		"undefined key": {
			src:    validBase + `Item "safe" { location = "hall", openable = { locked = true, key = "crowbar" } }`,
			expErr: `key "crowbar" is not a defined item`,
		},
		"empty code": {
			src:    validBase + `Item "safe" { location = "hall", openable = { mechanism = "code", code = " , " } }`,
			expErr: "code lock has an empty code",
		},
		"bad mechanism": {
			src:    validBase + `Item "safe" { location = "hall", openable = { mechanism = "magic" } }`,
			expErr: `unknown lock mechanism "magic"`,
		},
		"item guards exit": {
			src:    validBase + `Item "gate" { location = "hall", openable = { guards = { "north" } } }`,
			expErr: "only location doors can guard exits",
		},
		"negative capacity": {
			src:    validBase + `Item "sack" { location = "hall", container = { capacity = -1 } }`,
			expErr: "negative capacity -1",
		},
		"item and scenery share an id": {
			src:    validBase + `Scenery "key" { location = "hall" }`,
			expErr: `"key" is both an item and scenery`,
		},
		"duplicate override": {
			src: validBase + `
				Override("a", When { verb = "push" }, Then { Say("x") })
				Override("a", When { verb = "pull" }, Then { Say("y") })`,
			expErr: `duplicate override ID "a"`,
		},
		"override without verb": {
			src:    validBase + `Override("a", When { object = "key" }, Then { Say("x") })`,
			expErr: `override "a" has no verb`,
		},
		"override in unknown location": {
			src:    validBase + `Override("a", When { verb = "push", location = "moon" }, Then { Say("x") })`,
			expErr: `matches undefined location "moon"`,
		},
		"condition on undefined item": {
			src:    validBase + `Override("a", When { verb = "push" }, { HasItem("lamp") }, Then { Say("x") })`,
			expErr: `condition has_item references undefined item "lamp"`,
		},
		"negated condition is checked": {
			src:    validBase + `Override("a", When { verb = "push" }, { Not(Visited("moon")) }, Then { Say("x") })`,
			expErr: `condition visited references undefined location "moon"`,
		},
		"unknown condition type": {
			src:    validBase + `Override("a", When { verb = "push" }, { { type = "is_raining" } }, Then { Say("x") })`,
			expErr: `unknown condition type "is_raining"`,
		},
		"effect moves player nowhere": {
			src:    validBase + `Override("a", When { verb = "push" }, Then { MovePlayer("moon") })`,
			expErr: `effect move_player references undefined location "moon"`,
		},
		"effect opens non-openable": {
			src:    validBase + `Override("a", When { verb = "push" }, Then { OpenTarget("key") })`,
			expErr: `effect open references "key", which cannot be opened`,
		},
		"duplicate hint phase": {
			src: validBase + `
				Hint("stuck", { "a", "b", "c" })
				Hint("stuck", { "d", "e", "f" })`,
			expErr: `duplicate hint phase "stuck"`,
		},
		"blank hint": {
			src:    validBase + `Hint("stuck", { "a", " ", "c" })`,
			expErr: `hint phase "stuck": hint 2 is empty`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadString(tt.src)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestValidate_TemplatesSkipReferenceChecks(t *testing.T) {
	_, err := LoadString(validBase + `
		Override("take_any", When { verb = "take" }, Then { GiveItem("{object}") })
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Warnings(t *testing.T) {
	game, err := LoadString(validBase + `
		Location "cave" { description = "A cave.", exits = { sideways = "hall" } }
		Item "dust" {}
		Scenery "cloud" {}
		Item "crate" { location = "hall", openable = { locked = true, open = true, code = "1" } }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := strings.Join(game.Warnings, "\n")
	for _, want := range []string{
		`exit "sideways" is not a direction`,
		`item "dust" is never placed`,
		`scenery "cloud" has no location`,
		`open is ignored on a locked openable`,
	} {
		if !strings.Contains(all, want) {
			t.Errorf("missing warning %q in:\n%s", want, all)
		}
	}
}

func TestValidate_ValidBase(t *testing.T) {
	game, err := LoadString(validBase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "warnings", len(game.Warnings), 0)
}
