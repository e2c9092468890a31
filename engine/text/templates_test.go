package text

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDefaultsParse(t *testing.T) {
	tmpl, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	testutil.AssertEqual(t, "template count", len(tmpl.tmpls), len(Defaults))
}

func TestMessages(t *testing.T) {
	p := MustDefault()

	tests := map[string]struct {
		got string
		exp string
	}{
		"not present": {
			got: p.NotPresent("key"),
			exp: "You don't see any key here.",
		},
		"ambiguous lists candidates": {
			got: p.Ambiguous("take", []string{"red key", "blue key", "iron key"}),
			exp: "Which do you want to take: red key, blue key or iron key?",
		},
		"inventory list": {
			got: p.InventoryList([]string{"bag", "  coin"}),
			exp: "You are carrying:\n  bag\n    coin",
		},
		"wrong preposition": {
			got: p.WrongPreposition("table", "on"),
			exp: "You can't do that. Try putting it on the table.",
		},
		"circular with itself": {
			got: p.Circular("bag", "bag"),
			exp: "You can't put the bag inside itself.",
		},
		"circular nested": {
			got: p.Circular("bag", "box"),
			exp: "You can't put the bag in the box while the box is inside it.",
		},
		"open status locked": {
			got: p.OpenStatus("chest", false, true),
			exp: "The chest is closed and locked.",
		},
		"open status open": {
			got: p.OpenStatus("chest", true, false),
			exp: "The chest is open.",
		},
		"things on titlecases preposition": {
			got: p.ThingsOn("table", "on", []string{"coin", "key"}),
			exp: "On the table you see: coin and key.",
		},
		"exits": {
			got: p.Exits([]string{"north", "south"}),
			exp: "Exits: north, south.",
		},
		"hint level": {
			got: p.Hint(2, "Look under the mat."),
			exp: "Hint 2 of 3: Look under the mat.",
		},
		"saved quotes slot": {
			got: p.Saved("alpha"),
			exp: `Game saved to slot "alpha".`,
		},
		"door blocks closed": {
			got: p.DoorBlocks("door", false),
			exp: "The door is closed.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "message", tt.got, tt.exp)
		})
	}
}

func TestNew_Overrides(t *testing.T) {
	tests := map[string]struct {
		overrides map[string]string
		expErr    string
		check     func(*testing.T, *Templates)
	}{
		"override replaces default": {
			overrides: map[string]string{"NotPresent": "No {{ upper .Name }} around."},
			check: func(t *testing.T, p *Templates) {
				testutil.AssertEqual(t, "message", p.NotPresent("lamp"), "No LAMP around.")
				testutil.AssertEqual(t, "untouched", p.GoWhere(), "Where do you want to go?")
			},
		},
		"unknown message": {
			overrides: map[string]string{"Teleported": "Whoosh."},
			expErr:    `unknown message "Teleported"`,
		},
		"bad template": {
			overrides: map[string]string{"Taken": "{{ .Name "},
			expErr:    `parsing message "Taken"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := New(tt.overrides, nil)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestKnown(t *testing.T) {
	testutil.AssertEqual(t, "known", Known("Taken"), true)
	testutil.AssertEqual(t, "unknown", Known("taken"), false)
}

func TestSeries(t *testing.T) {
	tests := map[string]struct {
		items []string
		exp   string
	}{
		"empty": {items: nil, exp: ""},
		"one":   {items: []string{"a"}, exp: "a"},
		"two":   {items: []string{"a", "b"}, exp: "a and b"},
		"three": {items: []string{"a", "b", "c"}, exp: "a, b and c"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "series", series(tt.items, "and"), tt.exp)
		})
	}
}
