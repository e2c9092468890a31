// Package resolve maps object names from parsed commands to world entities.
package resolve

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/state"
)

// AmbiguityError indicates more than one candidate for an implied object.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no entity matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't see %q here", e.Name)
}

// NotContainerError indicates the name matched something that holds nothing.
type NotContainerError struct {
	Name string
}

func (e *NotContainerError) Error() string {
	return fmt.Sprintf("%q is not a container", e.Name)
}

// NotOpenableError indicates the name matched something that cannot be
// opened or locked.
type NotOpenableError struct {
	Name string
}

func (e *NotOpenableError) Error() string {
	return fmt.Sprintf("%q cannot be opened", e.Name)
}

// TargetKind tags what an implied target is.
type TargetKind int

const (
	TargetItem TargetKind = iota
	TargetLocation
)

// Target is an implied object: an item, or the location's own openable.
type Target struct {
	Kind TargetKind
	ID   string
}

// Object resolves an explicit item name. The inventory scope is searched
// before the location scope and the first match wins. Pronouns never
// resolve; callers fall back to Implied.
func Object(w *state.World, p *state.Player, name string) (string, error) {
	if name == "" || parser.IsPronoun(name) {
		return "", &NotFoundError{Name: name}
	}
	if id, ok := findItem(w, w.InventoryScope(), name); ok {
		return id, nil
	}
	if id, ok := findItem(w, w.LocationScope(p.Location), name); ok {
		return id, nil
	}
	return "", &NotFoundError{Name: name}
}

// InScope resolves an item name within an explicit candidate list.
func InScope(w *state.World, scope []string, name string) (string, error) {
	if parser.IsPronoun(name) {
		return "", &NotFoundError{Name: name}
	}
	if id, ok := findItem(w, scope, name); ok {
		return id, nil
	}
	return "", &NotFoundError{Name: name}
}

func findItem(w *state.World, scope []string, name string) (string, bool) {
	defs := w.Defs()
	for _, id := range scope {
		if defs.MatchesName(state.OwnerItem, id, name) {
			return id, true
		}
	}
	return "", false
}

// Scenery resolves a scenery name at the player's location. Scenery is only
// ever addressed explicitly.
func Scenery(w *state.World, p *state.Player, name string) (string, error) {
	if name == "" || parser.IsPronoun(name) {
		return "", &NotFoundError{Name: name}
	}
	defs := w.Defs()
	for _, id := range w.SceneryAt(p.Location) {
		if defs.MatchesName(state.OwnerScenery, id, name) {
			return id, nil
		}
	}
	return "", &NotFoundError{Name: name}
}

// Implied infers the object of a command given without one. Exactly one
// candidate must exist; scenery is never a candidate.
func Implied(w *state.World, p *state.Player, verb string) (Target, error) {
	var candidates []string

	switch verb {
	case "take":
		candidates = w.LocationScope(p.Location)
	case "examine", "look":
		candidates = w.InventoryScope()
		if len(candidates) == 0 {
			candidates = w.LocationScope(p.Location)
		}
	case "drop":
		candidates = w.Inventory()
	case "open", "unlock", "close":
		for _, id := range w.LocationScope(p.Location) {
			if w.Defs().Items[id].Openable != nil {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) == 0 {
			if w.Defs().Locations[p.Location].Openable != nil {
				return Target{Kind: TargetLocation, ID: p.Location}, nil
			}
		}
	default:
		return Target{}, &NotFoundError{Name: verb}
	}

	switch len(candidates) {
	case 0:
		return Target{}, &NotFoundError{Name: verb}
	case 1:
		return Target{Kind: TargetItem, ID: candidates[0]}, nil
	default:
		return Target{}, &AmbiguityError{Name: verb, Candidates: candidates}
	}
}

// Openable resolves an open/unlock/close target name. Carried items are
// searched first, then location items, location scenery and finally the
// location's own openable, each against its target-name set.
func Openable(w *state.World, p *state.Player, name string) (state.OpenableRef, error) {
	if name == "" || parser.IsPronoun(name) {
		return state.OpenableRef{}, &NotFoundError{Name: name}
	}
	defs := w.Defs()
	lower := strings.ToLower(name)

	var refs []state.OpenableRef
	for _, id := range w.InventoryScope() {
		refs = append(refs, state.OpenableRef{Kind: state.RefItem, ID: id})
	}
	for _, id := range w.LocationScope(p.Location) {
		refs = append(refs, state.OpenableRef{Kind: state.RefItem, ID: id})
	}
	for _, id := range w.SceneryAt(p.Location) {
		refs = append(refs, state.OpenableRef{Kind: state.RefScenery, ID: id})
	}
	refs = append(refs, state.OpenableRef{Kind: state.RefLocation, ID: p.Location})

	for _, ref := range refs {
		if defs.OpenableOf(ref) == nil {
			continue
		}
		if slices.Contains(defs.TargetNames(ref), lower) || matchesEntity(defs, ref, name) {
			return ref, nil
		}
	}

	// Something by that name exists but has no lock or lid.
	if _, err := Object(w, p, name); err == nil {
		return state.OpenableRef{}, &NotOpenableError{Name: name}
	}
	if _, err := Scenery(w, p, name); err == nil {
		return state.OpenableRef{}, &NotOpenableError{Name: name}
	}
	return state.OpenableRef{}, &NotFoundError{Name: name}
}

func matchesEntity(defs *state.Defs, ref state.OpenableRef, name string) bool {
	switch ref.Kind {
	case state.RefItem:
		return defs.MatchesName(state.OwnerItem, ref.ID, name)
	case state.RefScenery:
		return defs.MatchesName(state.OwnerScenery, ref.ID, name)
	}
	return false
}

// Container resolves a put/take-from target to an item or scenery container.
// A match without container capability yields *NotContainerError.
func Container(w *state.World, p *state.Player, name string) (state.Owner, error) {
	var found state.Owner
	if id, err := Object(w, p, name); err == nil {
		found = state.Owner{Kind: state.OwnerItem, ID: id}
	} else if id, err := Scenery(w, p, name); err == nil {
		found = state.Owner{Kind: state.OwnerScenery, ID: id}
	} else {
		return state.Owner{}, &NotFoundError{Name: name}
	}

	if w.Defs().ContainerOf(found) == nil {
		return state.Owner{}, &NotContainerError{Name: name}
	}
	return found, nil
}
