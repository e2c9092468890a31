// Package types defines the shared data structures for the wayfarer engine.
// It holds type definitions only, with no logic or methods.
package types

// CommandKind is the structural shape of a parsed command.
type CommandKind int

const (
	KindSingle CommandKind = iota
	KindConjunction
	KindSequence
	KindExclusion
)

// Command is the parsed representation of one clause of player input.
type Command struct {
	Verb        string
	Objects     []string // direct-object names, in input order
	Targets     []string // indirect-object names (after the preposition)
	Except      []string // names excluded from "all"
	Preposition string   // empty when none was given
	Kind        CommandKind
	Implied     bool     // no object name, or only a pronoun
	Raw         string   // the clause as typed
	Remaining   []string // unparsed clauses of a sequence
}

// Mode is the player's conversational state.
type Mode string

const (
	ModeAwaitingStart  Mode = "AWAITING_START_ANSWER"
	ModePlaying        Mode = "PLAYING"
	ModeRestartConfirm Mode = "AWAITING_RESTART_CONFIRM"
	ModeQuitConfirm    Mode = "AWAITING_QUIT_CONFIRM"
	ModeAwaitingUnlock Mode = "AWAITING_UNLOCK_CODE"
	ModeAwaitingOpen   Mode = "AWAITING_OPEN_CODE"
)

// Result is the output of processing one line of input for a session.
type Result struct {
	Output     []string
	Mode       Mode
	Directions []string // valid exits from the player's location, sorted
	Quit       bool     // the player confirmed quitting
}

// Mechanism is how an openable gets unlocked.
type Mechanism string

const (
	MechanismNone Mechanism = "none"
	MechanismKey  Mechanism = "key"
	MechanismCode Mechanism = "code"
)

// OpenableDef is the lock/open capability of an item, scenery or location.
type OpenableDef struct {
	Targets           []string // command target names, matched case-insensitively
	RequiresUnlocking bool
	Open              bool // initially open; ignored when RequiresUnlocking
	Mechanism         Mechanism
	Key               string // item name for MechanismKey
	Code              string // expected code or word for MechanismCode
	CaseSensitive     bool
	Guards            []string // exit directions blocked until open (locations only)
}

// ContainerDef is the container capability of an item or scenery.
type ContainerDef struct {
	Capacity     int      // 0 = unbounded
	Allowed      []string // item names; empty = anything
	Prepositions []string // accepted prepositions
}

// GameDef holds game metadata.
type GameDef struct {
	Title        string
	Author       string
	Version      string
	Start        string // starting location ID
	Intro        string
	StartPrompt  string // optional yes/no question asked before play
	Instructions string // shown when StartPrompt is answered "yes"
}

// LocationDef is the base definition of a location.
type LocationDef struct {
	ID          string
	Description string            // first visit
	Short       string            // repeat visits
	Exits       map[string]string // direction → location ID
	Openable    *OpenableDef
}

// ItemDef is the base definition of a takeable item.
type ItemDef struct {
	ID         string // unique name, also the lookup key
	Aliases    []string
	Carried    string // shown in the inventory
	AtLocation string // shown in a location listing
	Examined   string // shown when examined
	Location   string // initial location; empty = unplaced
	In         string // initial container (item or scenery ID)
	Inventory  bool   // starts carried by the player
	Container  *ContainerDef
	Openable   *OpenableDef
}

// SceneryDef is the base definition of a fixed, non-takeable entity.
type SceneryDef struct {
	ID        string
	Aliases   []string
	Location  string
	Responses map[string]string // interaction kind (look, climb, kick...) → text
	Container *ContainerDef
	Openable  *OpenableDef
}

// Condition is a predicate over a session's world and player.
type Condition struct {
	Type   string         // "has_item", "in_location", "item_in", "is_open", ...
	Params map[string]any // condition-specific parameters
	Negate bool           // true if wrapped in Not()
	Inner  *Condition     // for Not(): the negated inner condition
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// MatchCriteria defines which commands an override applies to.
type MatchCriteria struct {
	Verb     string
	Object   string // resolved item/scenery ID, or the raw name
	Target   string // indirect object ID, or the raw name
	Location string // player location
}

// OverrideDef replaces a built-in verb's behavior when it matches.
type OverrideDef struct {
	ID          string
	When        MatchCriteria
	Conditions  []Condition
	Effects     []Effect
	Priority    int
	SourceOrder int
}

// HintDef is one puzzle phase of the progressive hint ladder.
type HintDef struct {
	Phase      string
	Conditions []Condition // the phase applies when all pass
	Hints      [3]string
	Order      int
}
