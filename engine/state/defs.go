// Package state holds the immutable world definitions and the per-session
// mutable world: item ownership, containment, openable lock states and
// visited flags.
package state

import (
	"sort"
	"strings"

	"github.com/nathoo/wayfarer/types"
)

// Defs holds the immutable game definitions loaded from Lua. It is shared
// read-only by every session.
type Defs struct {
	Game      types.GameDef
	Locations map[string]types.LocationDef
	Items     map[string]types.ItemDef
	Scenery   map[string]types.SceneryDef

	// Definition order, used for initial placement and stable listings.
	ItemOrder    []string
	SceneryOrder []string
}

// ItemIDs returns item IDs in definition order, falling back to sorted order
// when no order was recorded.
func (d *Defs) ItemIDs() []string {
	if len(d.ItemOrder) == len(d.Items) {
		return d.ItemOrder
	}
	return sortedKeys(d.Items)
}

// SceneryIDs returns scenery IDs in definition order, falling back to sorted
// order when no order was recorded.
func (d *Defs) SceneryIDs() []string {
	if len(d.SceneryOrder) == len(d.Scenery) {
		return d.SceneryOrder
	}
	return sortedKeys(d.Scenery)
}

// ContainerOf returns the container capability of an item or scenery owner.
func (d *Defs) ContainerOf(o Owner) *types.ContainerDef {
	switch o.Kind {
	case OwnerItem:
		if def, ok := d.Items[o.ID]; ok {
			return def.Container
		}
	case OwnerScenery:
		if def, ok := d.Scenery[o.ID]; ok {
			return def.Container
		}
	}
	return nil
}

// OpenableOf returns the openable capability behind ref, or nil.
func (d *Defs) OpenableOf(ref OpenableRef) *types.OpenableDef {
	switch ref.Kind {
	case RefItem:
		if def, ok := d.Items[ref.ID]; ok {
			return def.Openable
		}
	case RefScenery:
		if def, ok := d.Scenery[ref.ID]; ok {
			return def.Openable
		}
	case RefLocation:
		if def, ok := d.Locations[ref.ID]; ok {
			return def.Openable
		}
	}
	return nil
}

// OpenableByID finds the openable owned by an item, scenery or location ID,
// checked in that order.
func (d *Defs) OpenableByID(id string) (OpenableRef, bool) {
	for _, ref := range []OpenableRef{
		{Kind: RefItem, ID: id},
		{Kind: RefScenery, ID: id},
		{Kind: RefLocation, ID: id},
	} {
		if d.OpenableOf(ref) != nil {
			return ref, true
		}
	}
	return OpenableRef{}, false
}

// TargetNames returns the lowercased names that address ref in open/unlock
// commands. An openable without explicit targets answers to its entity's
// name and aliases.
func (d *Defs) TargetNames(ref OpenableRef) []string {
	op := d.OpenableOf(ref)
	if op == nil {
		return nil
	}
	names := op.Targets
	if len(names) == 0 {
		names = append([]string{ref.ID}, d.aliases(ref)...)
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}

func (d *Defs) aliases(ref OpenableRef) []string {
	switch ref.Kind {
	case RefItem:
		return d.Items[ref.ID].Aliases
	case RefScenery:
		return d.Scenery[ref.ID].Aliases
	}
	return nil
}

// Prepositions returns the prepositions a container accepts. Scenery
// defaults to surfaces, items to receptacles.
func (d *Defs) Prepositions(o Owner) []string {
	c := d.ContainerOf(o)
	if c == nil {
		return nil
	}
	if len(c.Prepositions) > 0 {
		return c.Prepositions
	}
	if o.Kind == OwnerScenery {
		return []string{"on", "onto"}
	}
	return []string{"in", "into", "inside"}
}

// MatchesName reports whether name addresses the item or scenery id, by ID
// or alias, case-insensitively. "brass key" matches the ID "brass_key".
func (d *Defs) MatchesName(kind OwnerKind, id, name string) bool {
	if strings.EqualFold(id, name) || strings.EqualFold(id, strings.ReplaceAll(name, " ", "_")) {
		return true
	}
	var aliases []string
	switch kind {
	case OwnerItem:
		aliases = d.Items[id].Aliases
	case OwnerScenery:
		aliases = d.Scenery[id].Aliases
	}
	for _, a := range aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// Name returns the display name of an item, scenery or location ID.
func Name(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
