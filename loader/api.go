package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

// curried returns a constructor used as Name "id" { ... }.
func curried(add func(id string, tbl *lua.LTable)) lua.LGFunction {
	return func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(id, L.CheckTable(1))
			return 0
		}))
		return 1
	}
}

// passThrough returns its table argument. It names tables in game files.
func passThrough(L *lua.LState) int {
	L.Push(L.CheckTable(1))
	return 1
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Location", L.NewFunction(curried(func(id string, tbl *lua.LTable) {
		coll.locations = append(coll.locations, rawDef{id: id, table: tbl})
	})))
	L.SetGlobal("Item", L.NewFunction(curried(func(id string, tbl *lua.LTable) {
		coll.items = append(coll.items, rawDef{id: id, table: tbl})
	})))
	L.SetGlobal("Scenery", L.NewFunction(curried(func(id string, tbl *lua.LTable) {
		coll.scenery = append(coll.scenery, rawDef{id: id, table: tbl})
	})))

	// Override("id", when, conditions, then) or Override("id", when, then).
	L.SetGlobal("Override", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		when := L.CheckTable(2)

		var conditions, then *lua.LTable
		if L.Get(4) != lua.LNil {
			if t, ok := L.Get(3).(*lua.LTable); ok {
				conditions = t
			}
			then = L.CheckTable(4)
		} else {
			then = L.CheckTable(3)
		}

		coll.overrides = append(coll.overrides, rawOverride{
			id:         id,
			when:       when,
			conditions: conditions,
			then:       then,
			order:      coll.nextSourceOrder(),
		})
		return 0
	}))

	// Hint("phase", conditions, {h1, h2, h3}) or Hint("phase", {h1, h2, h3}).
	L.SetGlobal("Hint", L.NewFunction(func(L *lua.LState) int {
		phase := L.CheckString(1)

		var conditions, hints *lua.LTable
		if L.Get(3) != lua.LNil {
			if t, ok := L.Get(2).(*lua.LTable); ok {
				conditions = t
			}
			hints = L.CheckTable(3)
		} else {
			hints = L.CheckTable(2)
		}

		coll.hints = append(coll.hints, rawHint{
			phase:      phase,
			conditions: conditions,
			hints:      hints,
			order:      coll.nextSourceOrder(),
		})
		return 0
	}))

	// Messages { NotPresent = "...", ... } may appear more than once; later
	// keys win.
	L.SetGlobal("Messages", L.NewFunction(func(L *lua.LState) int {
		coll.messages = append(coll.messages, L.CheckTable(1))
		return 0
	}))

	for _, name := range []string{"When", "Then", "Openable", "Container"} {
		L.SetGlobal(name, L.NewFunction(passThrough))
	}
}

// helper registers a global that builds a {type = typ, key1 = arg1, ...}
// table from its arguments.
func helper(L *lua.LState, name, typ string, keys ...string) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(typ))
		for i, key := range keys {
			tbl.RawSetString(key, L.CheckAny(i+1))
		}
		L.Push(tbl)
		return 1
	}))
}

func registerConditionHelpers(L *lua.LState) {
	helper(L, "HasItem", "has_item", "item")
	helper(L, "InLocation", "in_location", "location")
	helper(L, "ItemIn", "item_in", "item", "in")
	helper(L, "IsOpen", "is_open", "target")
	helper(L, "IsUnlocked", "is_unlocked", "target")
	helper(L, "Visited", "visited", "location")
	helper(L, "TurnsGt", "turns_gt", "value")

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("not"))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	helper(L, "Say", "say", "text")
	helper(L, "GiveItem", "give_item", "item")
	helper(L, "RemoveItem", "remove_item", "item")
	helper(L, "MoveItem", "move_item", "item", "to")
	helper(L, "MovePlayer", "move_player", "location")
	helper(L, "UnlockTarget", "unlock", "target")
	helper(L, "OpenTarget", "open", "target")
	helper(L, "CloseTarget", "close", "target")
	helper(L, "Stop", "stop")
}
