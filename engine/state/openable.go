package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nathoo/wayfarer/types"
)

// RefKind tags which kind of entity an openable belongs to.
type RefKind int

const (
	RefItem RefKind = iota
	RefScenery
	RefLocation
)

var refKindNames = map[RefKind]string{
	RefItem:     "item",
	RefScenery:  "scenery",
	RefLocation: "location",
}

// OpenableRef addresses the openable capability of an item, a scenery or a
// location.
type OpenableRef struct {
	Kind RefKind
	ID   string
}

func (r OpenableRef) String() string {
	return refKindNames[r.Kind] + ":" + r.ID
}

// ParseOpenableRef is the inverse of OpenableRef.String.
func ParseOpenableRef(s string) (OpenableRef, error) {
	kind, id, ok := strings.Cut(s, ":")
	if ok {
		for k, name := range refKindNames {
			if name == kind {
				return OpenableRef{Kind: k, ID: id}, nil
			}
		}
	}
	return OpenableRef{}, fmt.Errorf("invalid openable reference %q", s)
}

// RefForOwner maps a container owner to its openable reference.
func RefForOwner(o Owner) (OpenableRef, bool) {
	switch o.Kind {
	case OwnerItem:
		return OpenableRef{Kind: RefItem, ID: o.ID}, true
	case OwnerScenery:
		return OpenableRef{Kind: RefScenery, ID: o.ID}, true
	}
	return OpenableRef{}, false
}

// LockOutcome is the result of an unlock, open or close attempt. Every
// outcome other than LockUnlocked, LockOpened, LockUnlockedAndOpened and
// LockClosed leaves the world untouched.
type LockOutcome int

const (
	LockNotOpenable LockOutcome = iota
	LockAlreadyUnlocked
	LockUnlocked
	LockNeedsKey
	LockNeedsCode
	LockWrongCode
	LockAlreadyOpen
	LockOpened
	LockUnlockedAndOpened
	LockAlreadyClosed
	LockClosed
)

// Changed reports whether the outcome mutated the openable.
func (o LockOutcome) Changed() bool {
	switch o {
	case LockUnlocked, LockOpened, LockUnlockedAndOpened, LockClosed:
		return true
	}
	return false
}

// TryUnlock attempts to unlock ref. Key openables ignore answer and succeed
// when the player carries the key. Code openables need a non-blank answer
// matching the code.
func (w *World) TryUnlock(ref OpenableRef, answer string) LockOutcome {
	op := w.defs.OpenableOf(ref)
	if op == nil {
		return LockNotOpenable
	}
	ls := w.locks[ref]
	if !ls.Locked {
		return LockAlreadyUnlocked
	}
	if out := w.checkMechanism(op, answer); out != LockUnlocked {
		return out
	}
	ls.Locked = false
	w.locks[ref] = ls
	return LockUnlocked
}

// TryOpen attempts to open ref, unlocking it first with the same mechanism
// as TryUnlock when it is locked.
func (w *World) TryOpen(ref OpenableRef, answer string) LockOutcome {
	op := w.defs.OpenableOf(ref)
	if op == nil {
		return LockNotOpenable
	}
	ls := w.locks[ref]
	if ls.Open {
		return LockAlreadyOpen
	}
	if !ls.Locked {
		w.locks[ref] = LockState{Open: true}
		return LockOpened
	}
	if out := w.checkMechanism(op, answer); out != LockUnlocked {
		return out
	}
	w.locks[ref] = LockState{Open: true}
	return LockUnlockedAndOpened
}

// TryClose closes an open openable. It stays unlocked.
func (w *World) TryClose(ref OpenableRef) LockOutcome {
	if w.defs.OpenableOf(ref) == nil {
		return LockNotOpenable
	}
	ls := w.locks[ref]
	if !ls.Open {
		return LockAlreadyClosed
	}
	ls.Open = false
	w.locks[ref] = ls
	return LockClosed
}

// checkMechanism returns LockUnlocked when the mechanism is satisfied.
func (w *World) checkMechanism(op *types.OpenableDef, answer string) LockOutcome {
	switch op.Mechanism {
	case types.MechanismKey:
		if op.Key != "" && w.Carrying(op.Key) {
			return LockUnlocked
		}
		return LockNeedsKey
	case types.MechanismCode:
		given := NormalizeCode(answer, op.CaseSensitive)
		if len(given) == 0 {
			return LockNeedsCode
		}
		if !slices.Equal(given, NormalizeCode(op.Code, op.CaseSensitive)) {
			return LockWrongCode
		}
		return LockUnlocked
	}
	return LockUnlocked
}

// NormalizeCode splits a code on whitespace and commas. Tokens are
// lowercased unless caseSensitive.
func NormalizeCode(code string, caseSensitive bool) []string {
	fields := strings.FieldsFunc(code, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if !caseSensitive {
		for i, f := range fields {
			fields[i] = strings.ToLower(f)
		}
	}
	return fields
}

// IsOpen reports whether ref is open.
func (w *World) IsOpen(ref OpenableRef) bool {
	return w.locks[ref].Open
}

// IsLocked reports whether ref is locked.
func (w *World) IsLocked(ref OpenableRef) bool {
	return w.locks[ref].Locked
}
