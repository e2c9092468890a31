package state

import (
	"fmt"
	"sort"

	"github.com/nathoo/wayfarer/types"
	"github.com/pixil98/go-errors"
)

// OwnerKind tags what currently owns an item.
type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerLocation
	OwnerPlayer
	OwnerItem    // a container item
	OwnerScenery // a container scenery
)

// Owner is the single ownership relation of an item. An item inside a
// container is owned by the container; the Location or Player holding it is
// derived with HolderOf.
type Owner struct {
	Kind OwnerKind
	ID   string
}

// PlayerOwner is the owner value for the session's player.
var PlayerOwner = Owner{Kind: OwnerPlayer}

// LockState is the runtime state of one openable.
type LockState struct {
	Locked bool
	Open   bool
}

// World is one session's mutable view of the game: an arena keyed by the
// stable IDs in Defs.
type World struct {
	defs    *Defs
	owners  map[string]Owner
	seq     map[string]int
	nextSeq int
	locks   map[OpenableRef]LockState
	visited map[string]bool
}

// NewWorld validates defs and builds a world with the initial placements.
// Unknown location or container references are setup errors.
func NewWorld(defs *Defs) (*World, error) {
	if err := validateDefs(defs); err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	w := &World{defs: defs}
	w.Reset()
	return w, nil
}

// Reset restores initial item placement and lock states and clears visited
// flags.
func (w *World) Reset() {
	w.owners = make(map[string]Owner, len(w.defs.Items))
	w.seq = make(map[string]int, len(w.defs.Items))
	w.nextSeq = 0
	w.locks = map[OpenableRef]LockState{}
	w.visited = map[string]bool{}

	for _, id := range w.defs.ItemIDs() {
		def := w.defs.Items[id]
		switch {
		case def.Inventory:
			w.setOwner(id, PlayerOwner)
		case def.In != "":
			w.setOwner(id, containerOwner(w.defs, def.In))
		case def.Location != "":
			w.setOwner(id, Owner{Kind: OwnerLocation, ID: def.Location})
		default:
			w.setOwner(id, Owner{})
		}
		if def.Openable != nil {
			w.locks[OpenableRef{Kind: RefItem, ID: id}] = initialLock(def.Openable)
		}
	}
	for id, def := range w.defs.Scenery {
		if def.Openable != nil {
			w.locks[OpenableRef{Kind: RefScenery, ID: id}] = initialLock(def.Openable)
		}
	}
	for id, def := range w.defs.Locations {
		if def.Openable != nil {
			w.locks[OpenableRef{Kind: RefLocation, ID: id}] = initialLock(def.Openable)
		}
	}
}

func initialLock(op *types.OpenableDef) LockState {
	if op.RequiresUnlocking {
		return LockState{Locked: true}
	}
	return LockState{Open: op.Open}
}

// containerOwner returns the owner value for a container ID, preferring items.
func containerOwner(defs *Defs, id string) Owner {
	if _, ok := defs.Items[id]; ok {
		return Owner{Kind: OwnerItem, ID: id}
	}
	return Owner{Kind: OwnerScenery, ID: id}
}

// Clone returns an independent copy sharing only the immutable Defs.
func (w *World) Clone() *World {
	c := &World{
		defs:    w.defs,
		owners:  make(map[string]Owner, len(w.owners)),
		seq:     make(map[string]int, len(w.seq)),
		nextSeq: w.nextSeq,
		locks:   make(map[OpenableRef]LockState, len(w.locks)),
		visited: make(map[string]bool, len(w.visited)),
	}
	for k, v := range w.owners {
		c.owners[k] = v
	}
	for k, v := range w.seq {
		c.seq[k] = v
	}
	for k, v := range w.locks {
		c.locks[k] = v
	}
	for k, v := range w.visited {
		c.visited[k] = v
	}
	return c
}

// Defs returns the definitions this world was built from.
func (w *World) Defs() *Defs {
	return w.defs
}

// OwnerOf returns the direct owner of an item.
func (w *World) OwnerOf(itemID string) Owner {
	return w.owners[itemID]
}

func (w *World) setOwner(itemID string, o Owner) {
	w.owners[itemID] = o
	w.nextSeq++
	w.seq[itemID] = w.nextSeq
}

// HolderOf walks up the container chain and returns the Location or Player
// holding an item. Unplaced items return the zero Owner.
func (w *World) HolderOf(itemID string) Owner {
	o := w.owners[itemID]
	for range len(w.owners) + 1 {
		switch o.Kind {
		case OwnerItem:
			o = w.owners[o.ID]
		case OwnerScenery:
			return Owner{Kind: OwnerLocation, ID: w.defs.Scenery[o.ID].Location}
		default:
			return o
		}
	}
	return Owner{}
}

// Carrying reports whether the player holds the item, however deeply nested.
func (w *World) Carrying(itemID string) bool {
	return w.HolderOf(itemID).Kind == OwnerPlayer
}

// Contents returns the items directly owned by o, in insertion order.
func (w *World) Contents(o Owner) []string {
	var ids []string
	for id, owner := range w.owners {
		if owner == o {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return w.seq[ids[i]] < w.seq[ids[j]] })
	return ids
}

// Inventory returns the player's top-level items in the order acquired.
func (w *World) Inventory() []string {
	return w.Contents(PlayerOwner)
}

// ItemsAt returns the top-level items lying at a location.
func (w *World) ItemsAt(locationID string) []string {
	return w.Contents(Owner{Kind: OwnerLocation, ID: locationID})
}

// SceneryAt returns the scenery fixed at a location.
func (w *World) SceneryAt(locationID string) []string {
	var ids []string
	for _, id := range w.defs.SceneryIDs() {
		if w.defs.Scenery[id].Location == locationID {
			ids = append(ids, id)
		}
	}
	return ids
}

// Nested returns everything transitively inside a container, open or not.
func (w *World) Nested(container Owner) []string {
	var out []string
	for _, id := range w.Contents(container) {
		out = append(out, id)
		out = append(out, w.Nested(Owner{Kind: OwnerItem, ID: id})...)
	}
	return out
}

// InventoryScope returns the items the player can refer to among the things
// they carry: top-level items plus anything inside open carried containers.
func (w *World) InventoryScope() []string {
	return w.reachable(w.Inventory())
}

// LocationScope returns the items the player can refer to at a location:
// loose items, items in open item containers and items in open scenery
// containers.
func (w *World) LocationScope(locationID string) []string {
	out := w.reachable(w.ItemsAt(locationID))
	for _, sid := range w.SceneryAt(locationID) {
		o := Owner{Kind: OwnerScenery, ID: sid}
		if w.defs.ContainerOf(o) == nil || !w.ContainerOpen(o) {
			continue
		}
		out = append(out, w.reachable(w.Contents(o))...)
	}
	return out
}

func (w *World) reachable(top []string) []string {
	var out []string
	for _, id := range top {
		out = append(out, id)
		o := Owner{Kind: OwnerItem, ID: id}
		if w.defs.ContainerOf(o) != nil && w.ContainerOpen(o) {
			out = append(out, w.reachable(w.Contents(o))...)
		}
	}
	return out
}

// ContainerOpen reports whether a container's contents are accessible.
// Containers without an openable capability are always open.
func (w *World) ContainerOpen(o Owner) bool {
	ref, ok := RefForOwner(o)
	if !ok || w.defs.OpenableOf(ref) == nil {
		return true
	}
	return w.locks[ref].Open
}

// MoveToPlayer puts an item at the top level of the player's inventory.
// Its contents come along.
func (w *World) MoveToPlayer(itemID string) {
	w.setOwner(itemID, PlayerOwner)
}

// MoveToLocation leaves an item loose at a location. Its contents come along.
func (w *World) MoveToLocation(itemID, locationID string) {
	w.setOwner(itemID, Owner{Kind: OwnerLocation, ID: locationID})
}

// Detach removes an item from the world entirely.
func (w *World) Detach(itemID string) {
	w.setOwner(itemID, Owner{})
}

// Visited reports whether the player has seen a location.
func (w *World) Visited(locationID string) bool {
	return w.visited[locationID]
}

// MarkVisited records a location as seen.
func (w *World) MarkVisited(locationID string) {
	w.visited[locationID] = true
}

// Lock returns the runtime state of an openable.
func (w *World) Lock(ref OpenableRef) LockState {
	return w.locks[ref]
}

// SetLock overwrites the runtime state of an openable.
func (w *World) SetLock(ref OpenableRef, ls LockState) {
	w.locks[ref] = ls
}

// Exits returns the exits of a location, sorted by direction.
func (w *World) Exits(locationID string) []string {
	return sortedKeys(w.defs.Locations[locationID].Exits)
}

// GuardOf returns the openable guarding an exit, if any.
func (w *World) GuardOf(locationID, direction string) (OpenableRef, bool) {
	loc := w.defs.Locations[locationID]
	if loc.Openable == nil {
		return OpenableRef{}, false
	}
	for _, g := range loc.Openable.Guards {
		if g == direction {
			return OpenableRef{Kind: RefLocation, ID: locationID}, true
		}
	}
	return OpenableRef{}, false
}

// Snapshot is the serializable runtime state of a world.
type Snapshot struct {
	Owners  map[string]Owner
	Seq     map[string]int
	Locks   map[string]LockState // keyed by OpenableRef.String()
	Visited []string
}

// Snapshot captures the world's runtime state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Owners: make(map[string]Owner, len(w.owners)),
		Seq:    make(map[string]int, len(w.seq)),
		Locks:  make(map[string]LockState, len(w.locks)),
	}
	for k, v := range w.owners {
		s.Owners[k] = v
	}
	for k, v := range w.seq {
		s.Seq[k] = v
	}
	for k, v := range w.locks {
		s.Locks[k.String()] = v
	}
	for k := range w.visited {
		s.Visited = append(s.Visited, k)
	}
	sort.Strings(s.Visited)
	return s
}

// Restore replaces the world's runtime state with s. Entries that no longer
// match a definition are rejected.
func (w *World) Restore(s Snapshot) error {
	el := errors.NewErrorList()
	for _, id := range sortedKeys(s.Owners) {
		if _, ok := w.defs.Items[id]; !ok {
			el.Add(fmt.Errorf("unknown item %q", id))
			continue
		}
		el.Add(w.defs.checkOwner(id, s.Owners[id]))
	}
	el.Add(checkCycles(sortedKeys(s.Owners), func(id string) string {
		if o := s.Owners[id]; o.Kind == OwnerItem {
			return o.ID
		}
		return ""
	}))
	locks := make(map[OpenableRef]LockState, len(s.Locks))
	for k, v := range s.Locks {
		ref, err := ParseOpenableRef(k)
		if err != nil {
			el.Add(err)
			continue
		}
		locks[ref] = v
	}
	if err := el.Err(); err != nil {
		return fmt.Errorf("restoring world: %w", err)
	}

	w.Reset()
	for k, v := range s.Owners {
		w.owners[k] = v
	}
	for k, v := range s.Seq {
		w.seq[k] = v
		w.nextSeq = max(w.nextSeq, v)
	}
	for k, v := range locks {
		w.locks[k] = v
	}
	for _, id := range s.Visited {
		w.visited[id] = true
	}
	return nil
}

func validateDefs(defs *Defs) error {
	if defs == nil {
		return fmt.Errorf("no definitions")
	}
	el := errors.NewErrorList()

	if _, ok := defs.Locations[defs.Game.Start]; !ok {
		el.Add(fmt.Errorf("start location %q not defined", defs.Game.Start))
	}
	for _, id := range sortedKeys(defs.Locations) {
		for dir, target := range defs.Locations[id].Exits {
			if _, ok := defs.Locations[target]; !ok {
				el.Add(fmt.Errorf("location %q: exit %s leads to unknown location %q", id, dir, target))
			}
		}
	}
	for _, id := range defs.ItemIDs() {
		def := defs.Items[id]
		if def.Location != "" {
			if _, ok := defs.Locations[def.Location]; !ok {
				el.Add(fmt.Errorf("item %q: unknown location %q", id, def.Location))
			}
		}
		if def.In != "" {
			if defs.ContainerOf(containerOwner(defs, def.In)) == nil {
				el.Add(fmt.Errorf("item %q: %q is not a container", id, def.In))
			}
		}
	}
	for _, id := range defs.SceneryIDs() {
		if loc := defs.Scenery[id].Location; loc != "" {
			if _, ok := defs.Locations[loc]; !ok {
				el.Add(fmt.Errorf("scenery %q: unknown location %q", id, loc))
			}
		}
	}
	el.Add(checkInitialCycles(defs))

	return el.Err()
}

// checkInitialCycles rejects definitions that start an item inside itself.
func checkInitialCycles(defs *Defs) error {
	return checkCycles(defs.ItemIDs(), func(id string) string {
		return defs.Items[id].In
	})
}

// checkCycles walks each item's parent chain and rejects the first item
// that ends up inside itself. parent returns "" at the top of a chain.
func checkCycles(ids []string, parent func(string) string) error {
	for _, id := range ids {
		seen := map[string]bool{id: true}
		for cur := parent(id); cur != ""; cur = parent(cur) {
			if seen[cur] {
				return fmt.Errorf("item %q: circular containment", id)
			}
			seen[cur] = true
		}
	}
	return nil
}

// checkOwner reports whether o can legally own an item.
func (d *Defs) checkOwner(itemID string, o Owner) error {
	switch o.Kind {
	case OwnerNone, OwnerPlayer:
		return nil
	case OwnerLocation:
		if _, ok := d.Locations[o.ID]; !ok {
			return fmt.Errorf("item %q: unknown location %q", itemID, o.ID)
		}
		return nil
	case OwnerItem, OwnerScenery:
		if d.ContainerOf(o) == nil {
			return fmt.Errorf("item %q: %q is not a container", itemID, o.ID)
		}
		return nil
	}
	return fmt.Errorf("item %q: invalid owner kind %d", itemID, o.Kind)
}
