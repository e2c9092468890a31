package resolve

import (
	"errors"
	"testing"

	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
	"github.com/pixil98/go-testutil"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{Start: "hall"},
		Locations: map[string]types.LocationDef{
			"hall": {
				ID:    "hall",
				Exits: map[string]string{"south": "entrance"},
				Openable: &types.OpenableDef{
					Targets:           []string{"door", "vault", "vault door"},
					RequiresUnlocking: true,
					Mechanism:         types.MechanismCode,
					Code:              "7 7",
				},
			},
			"entrance": {ID: "entrance", Exits: map[string]string{"north": "hall"}},
		},
		Items: map[string]types.ItemDef{
			"rusty_key": {ID: "rusty_key", Aliases: []string{"key"}, Location: "hall"},
			"lamp":      {ID: "lamp", Location: "entrance"},
			"chest": {
				ID: "chest", Location: "entrance",
				Container: &types.ContainerDef{},
				Openable:  &types.OpenableDef{Targets: []string{"lid"}},
			},
		},
		Scenery: map[string]types.SceneryDef{
			"statue": {ID: "statue", Location: "hall"},
			"shelf": {
				ID: "shelf", Location: "hall",
				Container: &types.ContainerDef{},
			},
			"tree": {ID: "tree", Location: "entrance"},
		},
		ItemOrder:    []string{"rusty_key", "lamp", "chest"},
		SceneryOrder: []string{"statue", "shelf", "tree"},
	}
}

func setup(t *testing.T) (*state.World, *state.Player) {
	t.Helper()
	defs := testDefs()
	w, err := state.NewWorld(defs)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w, state.NewPlayer(defs)
}

func TestObject(t *testing.T) {
	tests := map[string]struct {
		name  string
		expID string
		found bool
	}{
		"by id":               {name: "rusty_key", expID: "rusty_key", found: true},
		"by spaced id":        {name: "rusty key", expID: "rusty_key", found: true},
		"by alias":            {name: "KEY", expID: "rusty_key", found: true},
		"elsewhere":           {name: "lamp", found: false},
		"no substring":        {name: "rust", found: false},
		"pronoun":             {name: "it", found: false},
		"scenery is not item": {name: "statue", found: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, p := setup(t)
			id, err := Object(w, p, tt.name)
			if !tt.found {
				var nf *NotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("expected NotFoundError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "id", id, tt.expID)
		})
	}
}

func TestObject_InventoryWins(t *testing.T) {
	defs := testDefs()
	defs.Items["spare_key"] = types.ItemDef{ID: "spare_key", Aliases: []string{"key"}, Inventory: true}
	defs.ItemOrder = append(defs.ItemOrder, "spare_key")
	w, err := state.NewWorld(defs)
	if err != nil {
		t.Fatal(err)
	}
	p := state.NewPlayer(defs)

	id, err := Object(w, p, "key")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "id", id, "spare_key")
}

func TestImplied(t *testing.T) {
	tests := map[string]struct {
		setup   func(w *state.World, p *state.Player)
		verb    string
		exp     Target
		ambig   bool
		missing bool
	}{
		"take single location item": {
			verb: "take",
			exp:  Target{Kind: TargetItem, ID: "rusty_key"},
		},
		"take ignores scenery": {
			setup:   func(w *state.World, p *state.Player) { w.Detach("rusty_key") },
			verb:    "take",
			missing: true,
		},
		"take ambiguous": {
			setup: func(w *state.World, p *state.Player) { p.Location = "entrance" },
			verb:  "take",
			ambig: true,
		},
		"examine prefers inventory": {
			setup: func(w *state.World, p *state.Player) { w.MoveToPlayer("lamp") },
			verb:  "examine",
			exp:   Target{Kind: TargetItem, ID: "lamp"},
		},
		"examine falls back to location": {
			verb: "examine",
			exp:  Target{Kind: TargetItem, ID: "rusty_key"},
		},
		"drop from inventory": {
			setup: func(w *state.World, p *state.Player) { w.MoveToPlayer("lamp") },
			verb:  "drop",
			exp:   Target{Kind: TargetItem, ID: "lamp"},
		},
		"drop with empty inventory": {
			verb:    "drop",
			missing: true,
		},
		"open location item": {
			setup: func(w *state.World, p *state.Player) { p.Location = "entrance" },
			verb:  "open",
			exp:   Target{Kind: TargetItem, ID: "chest"},
		},
		"unlock falls back to location": {
			verb: "unlock",
			exp:  Target{Kind: TargetLocation, ID: "hall"},
		},
		"unsupported verb": {
			verb:    "kick",
			missing: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, p := setup(t)
			if tt.setup != nil {
				tt.setup(w, p)
			}
			got, err := Implied(w, p, tt.verb)
			switch {
			case tt.ambig:
				var ae *AmbiguityError
				if !errors.As(err, &ae) {
					t.Fatalf("expected AmbiguityError, got %v", err)
				}
			case tt.missing:
				var nf *NotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("expected NotFoundError, got %v (%+v)", err, got)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				testutil.AssertEqual(t, "target", got, tt.exp)
			}
		})
	}
}

func TestImplied_NeverScenery(t *testing.T) {
	w, p := setup(t)
	w.Detach("rusty_key")

	for _, verb := range []string{"take", "examine", "drop", "open", "unlock"} {
		got, err := Implied(w, p, verb)
		if err == nil && got.Kind == TargetItem {
			if _, ok := w.Defs().Scenery[got.ID]; ok {
				t.Errorf("%s implied scenery %q", verb, got.ID)
			}
		}
	}
}

func TestOpenable(t *testing.T) {
	tests := map[string]struct {
		location string
		name     string
		exp      state.OpenableRef
		expErr   string
	}{
		"location door by synonym": {
			location: "hall",
			name:     "Vault Door",
			exp:      state.OpenableRef{Kind: state.RefLocation, ID: "hall"},
		},
		"item by target name": {
			location: "entrance",
			name:     "lid",
			exp:      state.OpenableRef{Kind: state.RefItem, ID: "chest"},
		},
		"item by its own name": {
			location: "entrance",
			name:     "chest",
			exp:      state.OpenableRef{Kind: state.RefItem, ID: "chest"},
		},
		"present but not openable": {
			location: "hall",
			name:     "statue",
			expErr:   "cannot be opened",
		},
		"absent": {
			location: "entrance",
			name:     "door",
			expErr:   "you don't see",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, p := setup(t)
			p.Location = tt.location
			got, err := Openable(w, p, tt.name)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "ref", got, tt.exp)
		})
	}
}

func TestContainer(t *testing.T) {
	w, p := setup(t)

	got, err := Container(w, p, "shelf")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "shelf", got, state.Owner{Kind: state.OwnerScenery, ID: "shelf"})

	_, err = Container(w, p, "statue")
	var nc *NotContainerError
	if !errors.As(err, &nc) {
		t.Errorf("statue: expected NotContainerError, got %v", err)
	}

	_, err = Container(w, p, "key")
	if !errors.As(err, &nc) {
		t.Errorf("key: expected NotContainerError, got %v", err)
	}

	_, err = Container(w, p, "wardrobe")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("wardrobe: expected NotFoundError, got %v", err)
	}
}

func TestScenery(t *testing.T) {
	w, p := setup(t)

	id, err := Scenery(w, p, "Statue")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "id", id, "statue")

	_, err = Scenery(w, p, "tree")
	testutil.AssertErrorContains(t, err, "you don't see")
}
