package state

import (
	"slices"
	"strings"
)

// PutOutcome is the result of putting an item into a container, in the
// order the checks are made.
type PutOutcome int

const (
	PutOK PutOutcome = iota
	PutUnsupportedPreposition
	PutTargetNotFound
	PutNotContainer
	PutClosed
	PutWrongPreposition
	PutItemNotFound
	PutAlreadyThere
	PutRejected
	PutFull
	PutCircular
)

// containerPrepositions are the only prepositions put accepts at all.
var containerPrepositions = []string{"in", "into", "inside", "on", "onto"}

// SupportsPreposition reports whether prep can introduce a container.
func SupportsPreposition(prep string) bool {
	return slices.Contains(containerPrepositions, prep)
}

// CheckContainer validates a resolved container for prep: it must be open and
// accept the preposition. suggestion is the container's preferred
// preposition when PutWrongPreposition is returned.
func (w *World) CheckContainer(container Owner, prep string) (out PutOutcome, suggestion string) {
	preps := w.defs.Prepositions(container)
	if preps == nil {
		return PutNotContainer, ""
	}
	if !w.ContainerOpen(container) {
		return PutClosed, ""
	}
	if !slices.Contains(preps, strings.ToLower(prep)) {
		return PutWrongPreposition, preps[0]
	}
	return PutOK, ""
}

// CanAccept reports whether container would take itemID right now: it is
// open, its filter admits the item and it has room.
func (w *World) CanAccept(container Owner, itemID string) bool {
	c := w.defs.ContainerOf(container)
	if c == nil || !w.ContainerOpen(container) {
		return false
	}
	return w.admits(container, itemID) && !w.full(container)
}

func (w *World) admits(container Owner, itemID string) bool {
	c := w.defs.ContainerOf(container)
	if len(c.Allowed) == 0 {
		return true
	}
	for _, name := range c.Allowed {
		if w.defs.MatchesName(OwnerItem, itemID, name) {
			return true
		}
	}
	return false
}

func (w *World) full(container Owner) bool {
	c := w.defs.ContainerOf(container)
	return c.Capacity > 0 && len(w.Contents(container)) >= c.Capacity
}

// CheckInsert runs the item-level checks for putting itemID into container.
// When CanAccept refuses, the outcome names the first reason.
func (w *World) CheckInsert(container Owner, itemID string) PutOutcome {
	if w.owners[itemID] == container {
		return PutAlreadyThere
	}
	if !w.CanAccept(container, itemID) {
		switch {
		case w.defs.ContainerOf(container) == nil:
			return PutNotContainer
		case !w.ContainerOpen(container):
			return PutClosed
		case !w.admits(container, itemID):
			return PutRejected
		default:
			return PutFull
		}
	}
	if w.WouldCycle(container, itemID) {
		return PutCircular
	}
	return PutOK
}

// WouldCycle reports whether putting itemID into container would make an
// item contain itself: the container is the item or sits inside it.
func (w *World) WouldCycle(container Owner, itemID string) bool {
	if container.Kind != OwnerItem {
		return false
	}
	if container.ID == itemID {
		return true
	}
	return slices.Contains(w.Nested(Owner{Kind: OwnerItem, ID: itemID}), container.ID)
}

// Insert makes container the item's owner, detaching it from wherever it was.
// Nested contents stay inside the item and follow it.
func (w *World) Insert(container Owner, itemID string) {
	w.setOwner(itemID, container)
}

// Remove takes an item out of its container and gives it to the container's
// holder.
func (w *World) Remove(itemID string) {
	holder := w.HolderOf(itemID)
	w.setOwner(itemID, holder)
}
