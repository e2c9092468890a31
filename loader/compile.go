// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a location, item or scenery table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// rawOverride holds an override before compilation.
type rawOverride struct {
	id         string
	when       *lua.LTable
	conditions *lua.LTable // may be nil
	then       *lua.LTable
	order      int
}

// rawHint holds a hint phase before compilation.
type rawHint struct {
	phase      string
	conditions *lua.LTable // may be nil
	hints      *lua.LTable
	order      int
}

// getString returns a string field from a Lua table, or "" if missing.
// Numbers are accepted and formatted, so code = 1234 works.
func getString(tbl *lua.LTable, key string) string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return v.String()
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns a list field. A single string is a list of one.
func getStrings(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		return arrayStrings(v)
	}
	return nil
}

// arrayStrings returns the string elements of a Lua array in order.
func arrayStrings(tbl *lua.LTable) []string {
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		// Otherwise treat as map.
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a Game.
func compile(coll *collector) (*Game, error) {
	defs := &state.Defs{
		Locations: map[string]types.LocationDef{},
		Items:     map[string]types.ItemDef{},
		Scenery:   map[string]types.SceneryDef{},
	}
	game := &Game{Defs: defs, Messages: map[string]string{}}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.locations {
		if _, dup := defs.Locations[raw.id]; dup {
			return nil, fmt.Errorf("location %s defined twice", raw.id)
		}
		defs.Locations[raw.id] = compileLocation(raw)
	}
	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("item %s defined twice", raw.id)
		}
		defs.Items[raw.id] = compileItem(raw)
		defs.ItemOrder = append(defs.ItemOrder, raw.id)
	}
	for _, raw := range coll.scenery {
		if _, dup := defs.Scenery[raw.id]; dup {
			return nil, fmt.Errorf("scenery %s defined twice", raw.id)
		}
		defs.Scenery[raw.id] = compileScenery(raw)
		defs.SceneryOrder = append(defs.SceneryOrder, raw.id)
	}

	for _, raw := range coll.overrides {
		game.Overrides = append(game.Overrides, compileOverride(raw))
	}
	for _, raw := range coll.hints {
		h, err := compileHint(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling hint %s: %w", raw.phase, err)
		}
		game.Hints = append(game.Hints, h)
	}

	for _, tbl := range coll.messages {
		for k, v := range tableToStringMap(tbl) {
			game.Messages[k] = v
		}
	}

	return game, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:        getString(tbl, "title"),
		Author:       getString(tbl, "author"),
		Version:      getString(tbl, "version"),
		Start:        getString(tbl, "start"),
		Intro:        getString(tbl, "intro"),
		StartPrompt:  getString(tbl, "start_prompt"),
		Instructions: getString(tbl, "instructions"),
	}
}

func compileLocation(raw rawDef) types.LocationDef {
	tbl := raw.table
	return types.LocationDef{
		ID:          raw.id,
		Description: getString(tbl, "description"),
		Short:       getString(tbl, "short"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
		Openable:    compileOpenable(getTable(tbl, "door")),
	}
}

func compileItem(raw rawDef) types.ItemDef {
	tbl := raw.table
	return types.ItemDef{
		ID:         raw.id,
		Aliases:    getStrings(tbl, "aliases"),
		Carried:    getString(tbl, "carried"),
		AtLocation: getString(tbl, "at_location"),
		Examined:   getString(tbl, "examined"),
		Location:   getString(tbl, "location"),
		In:         getString(tbl, "inside"),
		Inventory:  getBool(tbl, "inventory", false),
		Container:  compileContainer(getTable(tbl, "container")),
		Openable:   compileOpenable(getTable(tbl, "openable")),
	}
}

func compileScenery(raw rawDef) types.SceneryDef {
	tbl := raw.table
	responses := tableToStringMap(getTable(tbl, "responses"))
	// A bare description is the look response.
	if desc := getString(tbl, "description"); desc != "" {
		if responses == nil {
			responses = map[string]string{}
		}
		if _, ok := responses["look"]; !ok {
			responses["look"] = desc
		}
	}
	return types.SceneryDef{
		ID:        raw.id,
		Aliases:   getStrings(tbl, "aliases"),
		Location:  getString(tbl, "location"),
		Responses: responses,
		Container: compileContainer(getTable(tbl, "container")),
		Openable:  compileOpenable(getTable(tbl, "openable")),
	}
}

// compileOpenable reads an openable table. The mechanism is inferred from
// key or code unless given explicitly.
func compileOpenable(tbl *lua.LTable) *types.OpenableDef {
	if tbl == nil {
		return nil
	}
	op := &types.OpenableDef{
		Targets:           getStrings(tbl, "targets"),
		RequiresUnlocking: getBool(tbl, "locked", false),
		Open:              getBool(tbl, "open", false),
		Mechanism:         types.Mechanism(getString(tbl, "mechanism")),
		Key:               getString(tbl, "key"),
		Code:              getString(tbl, "code"),
		CaseSensitive:     getBool(tbl, "case_sensitive", false),
		Guards:            getStrings(tbl, "guards"),
	}
	if op.Mechanism == "" {
		switch {
		case op.Key != "":
			op.Mechanism = types.MechanismKey
		case op.Code != "":
			op.Mechanism = types.MechanismCode
		default:
			op.Mechanism = types.MechanismNone
		}
	}
	return op
}

func compileContainer(tbl *lua.LTable) *types.ContainerDef {
	if tbl == nil {
		return nil
	}
	return &types.ContainerDef{
		Capacity:     getInt(tbl, "capacity"),
		Allowed:      getStrings(tbl, "allowed"),
		Prepositions: getStrings(tbl, "prepositions"),
	}
}

func compileOverride(raw rawOverride) types.OverrideDef {
	o := types.OverrideDef{
		ID: raw.id,
		When: types.MatchCriteria{
			Verb:     getString(raw.when, "verb"),
			Object:   getString(raw.when, "object"),
			Target:   getString(raw.when, "target"),
			Location: getString(raw.when, "location"),
		},
		Effects:     compileEffects(raw.then),
		Priority:    getInt(raw.when, "priority"),
		SourceOrder: raw.order,
	}
	if raw.conditions != nil {
		o.Conditions = compileConditions(raw.conditions)
	}
	return o
}

func compileHint(raw rawHint) (types.HintDef, error) {
	lines := arrayStrings(raw.hints)
	if len(lines) != 3 {
		return types.HintDef{}, fmt.Errorf("expected 3 hints, got %d", len(lines))
	}
	h := types.HintDef{
		Phase: raw.phase,
		Hints: [3]string{lines[0], lines[1], lines[2]},
		Order: raw.order,
	}
	if raw.conditions != nil {
		h.Conditions = compileConditions(raw.conditions)
	}
	return h, nil
}

func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	for i := 1; i <= tbl.MaxN(); i++ {
		if condTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			conditions = append(conditions, compileCondition(condTbl))
		}
	}
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	condType := getString(tbl, "type")

	if condType == "not" {
		if innerTbl := getTable(tbl, "inner"); innerTbl != nil {
			inner := compileCondition(innerTbl)
			return types.Condition{
				Type:   "not",
				Negate: true,
				Inner:  &inner,
			}
		}
	}

	return types.Condition{
		Type:   condType,
		Params: params(tbl),
	}
}

func compileEffects(tbl *lua.LTable) []types.Effect {
	var effects []types.Effect
	for i := 1; i <= tbl.MaxN(); i++ {
		if effTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			effects = append(effects, types.Effect{
				Type:   getString(effTbl, "type"),
				Params: params(effTbl),
			})
		}
	}
	return effects
}

// params returns every string-keyed field except type.
func params(tbl *lua.LTable) map[string]any {
	out := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && ks != "type" {
			out[string(ks)] = toGoValue(v)
		}
	})
	return out
}

// sortedLuaFiles returns .lua files in a directory, with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
