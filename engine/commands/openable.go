package commands

import (
	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
)

// Open opens a door, lid or hatch, unlocking it first when the player can.
func Open(ctx *Context, cmd types.Command) []string {
	return lockCommand(ctx, cmd, "open")
}

// Unlock unlocks an openable without opening it.
func Unlock(ctx *Context, cmd types.Command) []string {
	return lockCommand(ctx, cmd, "unlock")
}

// Close closes an open openable. It stays unlocked.
func Close(ctx *Context, cmd types.Command) []string {
	return lockCommand(ctx, cmd, "close")
}

func lockCommand(ctx *Context, cmd types.Command, verb string) []string {
	w, p := ctx.World, ctx.Player
	defs := w.Defs()

	ref, err := openableTarget(ctx, cmd, verb)
	if err != nil {
		return []string{failure(ctx, verb, err)}
	}
	name := OpenableName(defs, ref)

	// "with ..." names the key, or speaks the code.
	var answer string
	if verb != "close" && len(cmd.Targets) > 0 {
		op := defs.OpenableOf(ref)
		switch op.Mechanism {
		case types.MechanismCode:
			answer = cmd.Targets[0]
		case types.MechanismKey:
			key, err := resolve.InScope(w, w.InventoryScope(), cmd.Targets[0])
			if err != nil {
				return []string{ctx.Text.NotCarrying(cmd.Targets[0])}
			}
			if key != op.Key {
				return []string{ctx.Text.WrongKey(name, state.Name(key))}
			}
		}
	}

	var out state.LockOutcome
	switch verb {
	case "open":
		out = w.TryOpen(ref, answer)
	case "unlock":
		out = w.TryUnlock(ref, answer)
	default:
		out = w.TryClose(ref)
	}

	switch out {
	case state.LockNotOpenable:
		return []string{ctx.Text.NotOpenable(name)}
	case state.LockAlreadyUnlocked:
		return []string{ctx.Text.AlreadyUnlocked(name)}
	case state.LockUnlocked:
		return []string{ctx.Text.Unlocked(name)}
	case state.LockNeedsKey:
		return []string{ctx.Text.Locked(name)}
	case state.LockNeedsCode:
		mode := types.ModeAwaitingUnlock
		if verb == "open" {
			mode = types.ModeAwaitingOpen
		}
		p.AwaitCode(ref, mode)
		return []string{ctx.Text.CodePrompt(name)}
	case state.LockWrongCode:
		return []string{ctx.Text.WrongCode(name)}
	case state.LockAlreadyOpen:
		return []string{ctx.Text.AlreadyOpen(name)}
	case state.LockAlreadyClosed:
		return []string{ctx.Text.AlreadyClosed(name)}
	case state.LockClosed:
		return []string{ctx.Text.Closed(name)}
	case state.LockOpened:
		return withContents(ctx, ref, ctx.Text.Opened(name))
	case state.LockUnlockedAndOpened:
		return withContents(ctx, ref, ctx.Text.UnlockedAndOpened(name))
	}
	return []string{ctx.Text.NotUnderstood()}
}

// openableTarget resolves the explicit or implied target of a lock command.
func openableTarget(ctx *Context, cmd types.Command, verb string) (state.OpenableRef, error) {
	w, p := ctx.World, ctx.Player
	if !cmd.Implied {
		return resolve.Openable(w, p, cmd.Objects[0])
	}
	t, err := resolve.Implied(w, p, verb)
	if err != nil {
		return state.OpenableRef{}, err
	}
	if t.Kind == resolve.TargetLocation {
		return state.OpenableRef{Kind: state.RefLocation, ID: t.ID}, nil
	}
	return state.OpenableRef{Kind: state.RefItem, ID: t.ID}, nil
}

// withContents appends what a freshly opened container holds.
func withContents(ctx *Context, ref state.OpenableRef, msg string) []string {
	out := []string{msg}
	var o state.Owner
	switch ref.Kind {
	case state.RefItem:
		o = state.Owner{Kind: state.OwnerItem, ID: ref.ID}
	case state.RefScenery:
		o = state.Owner{Kind: state.OwnerScenery, ID: ref.ID}
	default:
		return out
	}
	if len(ctx.World.Contents(o)) == 0 {
		return out
	}
	if line := contentsLine(ctx, o); line != "" {
		out = append(out, line)
	}
	return out
}

// AnswerCode feeds a raw answer to the pending openable, then clears it and
// resumes play whatever the outcome.
func AnswerCode(ctx *Context, answer string) []string {
	p := ctx.Player
	if p.Pending == nil {
		p.ClearPending()
		return []string{ctx.Text.NotUnderstood()}
	}
	ref := *p.Pending
	mode := p.Mode
	p.ClearPending()

	name := OpenableName(ctx.World.Defs(), ref)
	var out state.LockOutcome
	if mode == types.ModeAwaitingOpen {
		out = ctx.World.TryOpen(ref, answer)
	} else {
		out = ctx.World.TryUnlock(ref, answer)
	}

	switch out {
	case state.LockUnlocked:
		return []string{ctx.Text.Unlocked(name)}
	case state.LockOpened:
		return withContents(ctx, ref, ctx.Text.Opened(name))
	case state.LockUnlockedAndOpened:
		return withContents(ctx, ref, ctx.Text.UnlockedAndOpened(name))
	case state.LockAlreadyUnlocked:
		return []string{ctx.Text.AlreadyUnlocked(name)}
	case state.LockAlreadyOpen:
		return []string{ctx.Text.AlreadyOpen(name)}
	}
	return []string{ctx.Text.WrongCode(name)}
}
