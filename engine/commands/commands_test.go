package commands

import (
	"slices"
	"testing"

	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/engine/text"
	"github.com/nathoo/wayfarer/types"
	"github.com/pixil98/go-testutil"
)

var txt = text.MustDefault()

func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{Start: "start"},
		Locations: map[string]types.LocationDef{
			"start": {
				ID:          "start",
				Description: "A dusty antechamber.",
				Short:       "The antechamber.",
				Exits:       map[string]string{"north": "hall"},
				Openable: &types.OpenableDef{
					Targets:           []string{"door", "oak door"},
					RequiresUnlocking: true,
					Mechanism:         types.MechanismKey,
					Key:               "key",
					Guards:            []string{"north"},
				},
			},
			"hall": {
				ID:          "hall",
				Description: "A long hall.",
				Exits:       map[string]string{"south": "start"},
			},
		},
		Items: map[string]types.ItemDef{
			"key":  {ID: "key", Location: "start", Examined: "A small brass key."},
			"bag":  {ID: "bag", Inventory: true, Container: &types.ContainerDef{Capacity: 1}},
			"coin": {ID: "coin", In: "bag"},
			"gem":  {ID: "gem", Location: "start"},
			"box": {
				ID: "box", Location: "start",
				Container: &types.ContainerDef{},
				Openable:  &types.OpenableDef{},
			},
			"safe": {
				ID: "safe", Location: "start",
				Container: &types.ContainerDef{},
				Openable: &types.OpenableDef{
					RequiresUnlocking: true,
					Mechanism:         types.MechanismCode,
					Code:              "1 2 3 4",
				},
			},
			"crate": {ID: "crate", Location: "start", Container: &types.ContainerDef{}},
		},
		ItemOrder: []string{"key", "bag", "coin", "gem", "box", "safe", "crate"},
		Scenery: map[string]types.SceneryDef{
			"table": {ID: "table", Location: "start", Container: &types.ContainerDef{}},
			"statue": {
				ID: "statue", Location: "start",
				Responses: map[string]string{"climb": "The statue is too slippery."},
			},
		},
		SceneryOrder: []string{"table", "statue"},
	}
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	defs := testDefs()
	w, err := state.NewWorld(defs)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return &Context{World: w, Player: state.NewPlayer(defs), Text: txt}
}

func run(t *testing.T, ctx *Context, input string) []string {
	t.Helper()
	cmd, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	out, ok := Builtins().Dispatch(ctx, cmd)
	if !ok {
		t.Fatalf("%q was not dispatched", input)
	}
	return out
}

func assertOutput(t *testing.T, got []string, exp ...string) {
	t.Helper()
	if !slices.Equal(got, exp) {
		t.Errorf("output = %q, want %q", got, exp)
	}
}

func TestTakeKeyTwice(t *testing.T) {
	ctx := newTestContext(t)

	assertOutput(t, run(t, ctx, "take key"), txt.Taken("key"))
	testutil.AssertEqual(t, "carrying", ctx.World.Carrying("key"), true)
	testutil.AssertEqual(t, "at location", slices.Contains(ctx.World.ItemsAt("start"), "key"), false)

	assertOutput(t, run(t, ctx, "take key"), txt.NotPresent("key"))
}

func TestOpenDoorWithKey(t *testing.T) {
	ctx := newTestContext(t)
	run(t, ctx, "take key")

	assertOutput(t, run(t, ctx, "open door"), txt.UnlockedAndOpened("door"))
	door := state.OpenableRef{Kind: state.RefLocation, ID: "start"}
	testutil.AssertEqual(t, "lock", ctx.World.Lock(door), state.LockState{Open: true})

	assertOutput(t, run(t, ctx, "open oak door"), txt.AlreadyOpen("door"))
}

func TestOpenDoorWithoutKey(t *testing.T) {
	ctx := newTestContext(t)
	assertOutput(t, run(t, ctx, "open door"), txt.Locked("door"))
}

func TestPutIntoFullBag(t *testing.T) {
	ctx := newTestContext(t)
	run(t, ctx, "take gem")

	assertOutput(t, run(t, ctx, "put gem in bag"), txt.ContainerFull("bag"))
	got := ctx.World.Contents(state.Owner{Kind: state.OwnerItem, ID: "bag"})
	testutil.AssertEqual(t, "bag contents", len(got), 1)
	testutil.AssertEqual(t, "bag holds", got[0], "coin")
}

func TestDropBagKeepsContents(t *testing.T) {
	ctx := newTestContext(t)

	assertOutput(t, run(t, ctx, "drop bag"), txt.Dropped("bag"))
	testutil.AssertEqual(t, "bag owner", ctx.World.OwnerOf("bag"), state.Owner{Kind: state.OwnerLocation, ID: "start"})
	testutil.AssertEqual(t, "coin owner", ctx.World.OwnerOf("coin"), state.Owner{Kind: state.OwnerItem, ID: "bag"})
	testutil.AssertEqual(t, "coin holder", ctx.World.HolderOf("coin"), state.Owner{Kind: state.OwnerLocation, ID: "start"})
}

func TestPut(t *testing.T) {
	tests := map[string]struct {
		setup []string
		input string
		exp   string
	}{
		"onto scenery": {
			input: "put gem on table",
			exp:   txt.Put("gem", "on", "table"),
		},
		"wrong preposition for scenery": {
			input: "put gem in table",
			exp:   txt.WrongPreposition("table", "on"),
		},
		"wrong preposition for item": {
			setup: []string{"open box"},
			input: "put gem on box",
			exp:   txt.WrongPreposition("box", "in"),
		},
		"closed container": {
			input: "put gem in box",
			exp:   txt.ContainerClosed("box"),
		},
		"scenery without container": {
			input: "put gem on statue",
			exp:   txt.NotAContainer("statue"),
		},
		"missing container": {
			input: "put gem in chest",
			exp:   txt.NotPresent("chest"),
		},
		"missing item": {
			input: "put ruby in crate",
			exp:   txt.NotPresent("ruby"),
		},
		"no container named": {
			input: "put gem",
			exp:   txt.PutWhere("gem"),
		},
		"already there": {
			input: "put coin in bag",
			exp:   txt.AlreadyThere("coin", "bag"),
		},
		"into itself": {
			input: "put crate in crate",
			exp:   txt.Circular("crate", "crate"),
		},
		"circular nesting": {
			setup: []string{"open box", "put crate in box"},
			input: "put box in crate",
			exp:   txt.Circular("box", "crate"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(t)
			for _, in := range tt.setup {
				run(t, ctx, in)
			}
			assertOutput(t, run(t, ctx, tt.input), tt.exp)
		})
	}
}

func TestPut_RehomesWithContainer(t *testing.T) {
	ctx := newTestContext(t)

	// The gem lies at the location; putting it in the carried bag after
	// emptying it brings it into the inventory.
	run(t, ctx, "take coin from bag")
	assertOutput(t, run(t, ctx, "put gem in bag"), txt.Put("gem", "in", "bag"))
	testutil.AssertEqual(t, "gem holder", ctx.World.HolderOf("gem"), state.PlayerOwner)
}

func TestTake(t *testing.T) {
	tests := map[string]struct {
		setup []string
		input string
		exp   []string
	}{
		"scenery": {
			input: "take statue",
			exp:   []string{txt.CannotTake("statue")},
		},
		"from carried container": {
			input: "take coin",
			exp:   []string{txt.TakenFrom("coin", "bag")},
		},
		"from named container": {
			input: "take coin from bag",
			exp:   []string{txt.TakenFrom("coin", "bag")},
		},
		"not in named container": {
			input: "take gem from bag",
			exp:   []string{txt.NotInContainer("gem", "bag")},
		},
		"from closed container": {
			input: "take coin from box",
			exp:   []string{txt.ContainerClosed("box")},
		},
		"conjunction": {
			input: "take key and gem",
			exp:   []string{txt.Taken("key"), txt.Taken("gem")},
		},
		"all except": {
			input: "take all except gem and safe",
			exp:   []string{txt.Taken("key"), txt.Taken("box"), txt.Taken("crate")},
		},
		"implied with several candidates": {
			input: "take",
			exp:   []string{txt.Ambiguous("take", []string{"key", "gem", "box", "safe", "crate"})},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(t)
			for _, in := range tt.setup {
				run(t, ctx, in)
			}
			assertOutput(t, run(t, ctx, tt.input), tt.exp...)
		})
	}
}

func TestTake_OutOfContainer(t *testing.T) {
	tests := map[string]struct {
		setup []string
		input string
		item  string
	}{
		"carried bag": {
			input: "take coin",
			item:  "coin",
		},
		"crate on the floor": {
			setup: []string{"take gem", "put gem in crate"},
			input: "take gem from crate",
			item:  "gem",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(t)
			for _, in := range tt.setup {
				run(t, ctx, in)
			}
			run(t, ctx, tt.input)
			testutil.AssertEqual(t, "owner", ctx.World.OwnerOf(tt.item), state.PlayerOwner)
			testutil.AssertEqual(t, "carrying", ctx.World.Carrying(tt.item), true)
		})
	}
}

func TestDrop(t *testing.T) {
	ctx := newTestContext(t)

	assertOutput(t, run(t, ctx, "drop gem"), txt.NotCarrying("gem"))
	assertOutput(t, run(t, ctx, "drop it"), txt.Dropped("bag"))
	assertOutput(t, run(t, ctx, "drop"), txt.InventoryEmpty())
}

func TestDrop_IntoContainerIsPut(t *testing.T) {
	ctx := newTestContext(t)
	run(t, ctx, "take gem")
	assertOutput(t, run(t, ctx, "drop gem on table"), txt.Put("gem", "on", "table"))
}

func TestCodeLock(t *testing.T) {
	tests := map[string]struct {
		input    string
		answer   string
		expFirst string
		expAfter string
		expOpen  bool
	}{
		"open then right code": {
			input:    "open safe",
			answer:   "1, 2, 3, 4",
			expFirst: txt.CodePrompt("safe"),
			expAfter: txt.UnlockedAndOpened("safe"),
			expOpen:  true,
		},
		"open then wrong code": {
			input:    "open safe",
			answer:   "4 3 2 1",
			expFirst: txt.CodePrompt("safe"),
			expAfter: txt.WrongCode("safe"),
		},
		"unlock then blank answer": {
			input:    "unlock safe",
			answer:   "  ",
			expFirst: txt.CodePrompt("safe"),
			expAfter: txt.WrongCode("safe"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(t)
			assertOutput(t, run(t, ctx, tt.input), tt.expFirst)
			if ctx.Player.Pending == nil {
				t.Fatal("expected a pending openable")
			}

			assertOutput(t, AnswerCode(ctx, tt.answer), tt.expAfter)
			testutil.AssertEqual(t, "mode", ctx.Player.Mode, types.ModePlaying)
			testutil.AssertEqual(t, "pending cleared", ctx.Player.Pending == nil, true)
			safe := state.OpenableRef{Kind: state.RefItem, ID: "safe"}
			testutil.AssertEqual(t, "open", ctx.World.IsOpen(safe), tt.expOpen)
		})
	}
}

func TestCodeLock_ModeMatchesVerb(t *testing.T) {
	ctx := newTestContext(t)
	run(t, ctx, "open safe")
	testutil.AssertEqual(t, "open mode", ctx.Player.Mode, types.ModeAwaitingOpen)

	ctx = newTestContext(t)
	run(t, ctx, "unlock safe")
	testutil.AssertEqual(t, "unlock mode", ctx.Player.Mode, types.ModeAwaitingUnlock)
}

func TestUnlockWith(t *testing.T) {
	tests := map[string]struct {
		setup []string
		input string
		exp   string
	}{
		"inline code": {
			input: "unlock safe with 1 2 3 4",
			exp:   txt.Unlocked("safe"),
		},
		"inline wrong code": {
			input: "unlock safe with 9 9 9 9",
			exp:   txt.WrongCode("safe"),
		},
		"key not carried": {
			input: "unlock door with key",
			exp:   txt.NotCarrying("key"),
		},
		"wrong key": {
			input: "unlock door with coin",
			exp:   txt.WrongKey("door", "coin"),
		},
		"right key": {
			setup: []string{"take key"},
			input: "unlock door with key",
			exp:   txt.Unlocked("door"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(t)
			for _, in := range tt.setup {
				run(t, ctx, in)
			}
			assertOutput(t, run(t, ctx, tt.input), tt.exp)
		})
	}
}

func TestOpenCloseBox(t *testing.T) {
	ctx := newTestContext(t)

	assertOutput(t, run(t, ctx, "close box"), txt.AlreadyClosed("box"))
	assertOutput(t, run(t, ctx, "open box"), txt.Opened("box"))
	assertOutput(t, run(t, ctx, "close box"), txt.Closed("box"))
	assertOutput(t, run(t, ctx, "open statue"), txt.NotOpenable("statue"))
	assertOutput(t, run(t, ctx, "open"), txt.Ambiguous("open", []string{"box", "safe"}))
}

func TestExamine(t *testing.T) {
	ctx := newTestContext(t)

	assertOutput(t, run(t, ctx, "examine key"), "A small brass key.")
	assertOutput(t, run(t, ctx, "x gem"), txt.NothingSpecial("gem"))
	assertOutput(t, run(t, ctx, "examine bag"), txt.NothingSpecial("bag"), txt.Contents("bag", "in", []string{"coin"}))
	assertOutput(t, run(t, ctx, "look at safe"), txt.NothingSpecial("safe"), txt.OpenStatus("safe", false, true))
	assertOutput(t, run(t, ctx, "examine door"), txt.OpenStatus("door", false, true))
	assertOutput(t, run(t, ctx, "examine unicorn"), txt.NotPresent("unicorn"))
}

func TestDescribe(t *testing.T) {
	ctx := newTestContext(t)
	run(t, ctx, "put gem on table")

	first := Describe(ctx, false)
	testutil.AssertEqual(t, "long description", first[0], "A dusty antechamber.")
	testutil.AssertEqual(t, "visited", ctx.World.Visited("start"), true)

	again := Describe(ctx, false)
	testutil.AssertEqual(t, "short description", again[0], "The antechamber.")
	if !slices.Contains(again, txt.ThingsOn("table", "on", []string{"gem"})) {
		t.Errorf("expected the gem on the table in %q", again)
	}
	testutil.AssertEqual(t, "exits", again[len(again)-1], txt.Exits([]string{"north"}))

	forced := run(t, ctx, "look")
	testutil.AssertEqual(t, "look is long", forced[0], "A dusty antechamber.")
}

func TestInventory(t *testing.T) {
	ctx := newTestContext(t)
	assertOutput(t, run(t, ctx, "i"), txt.InventoryList([]string{"bag", "  coin"}))

	run(t, ctx, "drop bag")
	assertOutput(t, run(t, ctx, "inventory"), txt.InventoryEmpty())
}

func TestInteract(t *testing.T) {
	ctx := newTestContext(t)

	assertOutput(t, run(t, ctx, "climb statue"), "The statue is too slippery.")
	assertOutput(t, run(t, ctx, "kick statue"), txt.SceneryNoResponse("kick", "statue"))
	assertOutput(t, run(t, ctx, "kick gem"), txt.CannotInteract("kick", "gem"))
	assertOutput(t, run(t, ctx, "read key"), "A small brass key.")
	assertOutput(t, run(t, ctx, "climb"), txt.WhatToVerb("climb"))
}

func TestHint(t *testing.T) {
	ctx := newTestContext(t)
	assertOutput(t, run(t, ctx, "hint"), txt.NoHints())

	phase := "door"
	ctx.Hints = &HintConfig{
		Phases: map[string][3]string{
			"door":  {"Doors open.", "Keys open doors.", "Take the key."},
			"north": {"Go north.", "", ""},
		},
		Determine: func(*state.Player, *state.World) string { return phase },
	}

	assertOutput(t, run(t, ctx, "hint"), txt.Hint(1, "Doors open."))
	assertOutput(t, run(t, ctx, "hint"), txt.Hint(2, "Keys open doors."))
	assertOutput(t, run(t, ctx, "hint"), txt.Hint(3, "Take the key."))
	assertOutput(t, run(t, ctx, "hint"), txt.Hint(3, "Take the key."))

	phase = "north"
	assertOutput(t, run(t, ctx, "hint"), txt.Hint(1, "Go north."))
	assertOutput(t, run(t, ctx, "hint"), txt.NoHints())
}

func TestRegistry(t *testing.T) {
	ctx := newTestContext(t)
	r := Builtins()

	_, ok := r.Dispatch(ctx, types.Command{Verb: "go", Objects: []string{"north"}})
	testutil.AssertEqual(t, "go falls through", ok, false)

	r.Register("take", func(*Context, types.Command) []string { return []string{"replaced"} })
	out, ok := r.Dispatch(ctx, types.Command{Verb: "take", Objects: []string{"key"}})
	testutil.AssertEqual(t, "dispatched", ok, true)
	assertOutput(t, out, "replaced")

	r.RegisterOverride("kick", func(_ *Context, cmd types.Command) ([]string, bool) {
		if firstName(cmd.Objects, nil) == "table" {
			return []string{"Ouch."}, true
		}
		return nil, false
	})
	out, _ = r.Dispatch(ctx, types.Command{Verb: "kick", Objects: []string{"table"}})
	assertOutput(t, out, "Ouch.")
	out, _ = r.Dispatch(ctx, types.Command{Verb: "kick", Objects: []string{"statue"}})
	assertOutput(t, out, txt.SceneryNoResponse("kick", "statue"))
}
