package parser

import "strings"

var directionExpansions = map[string]string{
	"n":  "north",
	"s":  "south",
	"e":  "east",
	"w":  "west",
	"ne": "northeast",
	"nw": "northwest",
	"se": "southeast",
	"sw": "southwest",
	"u":  "up",
	"d":  "down",
}

// Full direction names. "in" and "out" double as prepositions.
var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"northeast": true, "northwest": true, "southeast": true, "southwest": true,
	"up": true, "down": true, "in": true, "out": true,
}

// Canonical verbs the engine knows how to route.
var canonicalVerbs = map[string]bool{
	"take": true, "drop": true, "put": true, "examine": true, "look": true,
	"inventory": true, "open": true, "unlock": true, "close": true,
	"go": true, "hint": true, "restart": true, "quit": true,
	"climb": true, "punch": true, "kick": true, "drink": true, "eat": true,
	"push": true, "pull": true, "touch": true, "smell": true, "listen": true,
	"read": true, "yes": true, "no": true,
}

var verbAliases = map[string]string{
	// Look / Examine
	"l":        "look",
	"x":        "examine",
	"inspect":  "examine",
	"check":    "examine",
	"study":    "examine",
	"describe": "examine",

	// Movement
	"walk":  "go",
	"run":   "go",
	"move":  "go",
	"head":  "go",
	"enter": "go",

	// Take / Drop / Put
	"get":     "take",
	"grab":    "take",
	"carry":   "take",
	"discard": "drop",
	"place":   "put",
	"insert":  "put",
	"stash":   "put",

	// Open / Close
	"shut": "close",

	// Scenery interactions
	"hit":     "punch",
	"strike":  "punch",
	"scale":   "climb",
	"sip":     "drink",
	"quaff":   "drink",
	"swallow": "drink",
	"consume": "eat",
	"taste":   "eat",
	"press":   "push",
	"shove":   "push",
	"tug":     "pull",
	"yank":    "pull",
	"feel":    "touch",
	"rub":     "touch",
	"sniff":   "smell",
	"hear":    "listen",

	// System
	"inv":   "inventory",
	"i":     "inventory",
	"help":  "hint",
	"hints": "hint",
	"clue":  "hint",
	"q":     "quit",
	"exit":  "quit",
	"reset": "restart",
	"y":     "yes",
	"yeah":  "yes",
	"nope":  "no",
}

// clauseAliases may start a new clause after "and". Other aliases are also
// common nouns.
var clauseAliases = map[string]bool{
	"get": true, "grab": true, "inspect": true, "discard": true,
	"shut": true, "sniff": true,
}

var prepositions = map[string]bool{
	"in": true, "into": true, "inside": true,
	"on": true, "onto": true,
	"with": true, "from": true, "at": true,
	"to": true, "under": true, "off": true,
}

// verbPrepositions lists the prepositions each verb accepts. A verb missing
// from the table accepts none.
var verbPrepositions = map[string]map[string]bool{
	"put":     {"in": true, "into": true, "inside": true, "on": true, "onto": true},
	"drop":    {"in": true, "into": true, "inside": true, "on": true, "onto": true},
	"take":    {"from": true, "off": true},
	"open":    {"with": true},
	"unlock":  {"with": true},
	"climb":   {"on": true, "onto": true},
	"examine": {"at": true, "in": true, "inside": true, "under": true, "on": true},
	"look":    {"at": true, "in": true, "inside": true, "under": true, "on": true},
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "some": true,
}

var pronouns = map[string]bool{
	"it": true, "them": true, "this": true, "that": true,
}

var conjunctions = map[string]bool{
	"and": true, "&": true,
}

var sequenceMarkers = map[string]bool{
	"then": true, ";": true,
}

var exclusionMarkers = map[string]bool{
	"except": true, "but": true,
}

// NormalizeVerb maps a raw verb token to its canonical form. Unknown tokens
// are returned unchanged.
func NormalizeVerb(word string) string {
	word = strings.ToLower(word)
	if alias, ok := verbAliases[word]; ok {
		return alias
	}
	return word
}

// NormalizeDirection expands direction abbreviations. The bool is false when
// word is not a direction.
func NormalizeDirection(word string) (string, bool) {
	word = strings.ToLower(word)
	if dir, ok := directionExpansions[word]; ok {
		return dir, true
	}
	if directionNames[word] {
		return word, true
	}
	return "", false
}

// IsVerb reports whether word starts a command on its own: a known verb, a
// verb alias or a direction.
func IsVerb(word string) bool {
	if canonicalVerbs[NormalizeVerb(word)] {
		return true
	}
	_, ok := NormalizeDirection(word)
	return ok
}

// IsPronoun reports whether word is a pronoun token.
func IsPronoun(word string) bool {
	return pronouns[strings.ToLower(word)]
}

// AllowsPreposition reports whether verb may be combined with prep.
func AllowsPreposition(verb, prep string) bool {
	return verbPrepositions[verb][prep]
}
