// Package parser converts command strings into Command structs.
// Intentionally small: a closed grammar of verb, objects, preposition,
// indirect objects, conjunctions and sequences.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/types"
)

// ErrInvalidPreposition is the sentinel behind PrepositionError.
var ErrInvalidPreposition = errors.New("invalid preposition")

// PrepositionError reports a verb used with a preposition it never takes,
// e.g. "climb with".
type PrepositionError struct {
	Verb        string
	Preposition string
}

func (e *PrepositionError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s something", ErrInvalidPreposition, e.Verb, e.Preposition)
}

func (e *PrepositionError) Unwrap() error {
	return ErrInvalidPreposition
}

// separators are padded with spaces so they come out as their own tokens.
var separators = []string{";", "&", ","}

// Parse converts a raw line into the Command for its first clause. Later
// clauses of a sequence are left unparsed in Command.Remaining so they can be
// parsed after the first one has run.
func Parse(input string) (types.Command, error) {
	words := tokenize(input)
	if len(words) == 0 {
		return types.Command{}, nil
	}

	clauses := splitClauses(words)
	if len(clauses) == 0 {
		return types.Command{}, nil
	}

	cmd, err := parseClause(clauses[0])
	if err != nil {
		return cmd, err
	}

	if len(clauses) > 1 {
		cmd.Kind = types.KindSequence
		for _, c := range clauses[1:] {
			cmd.Remaining = append(cmd.Remaining, strings.Join(c, " "))
		}
	}
	return cmd, nil
}

// tokenize trims, lowercases, pads separator punctuation and splits on
// whitespace.
func tokenize(input string) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, sep := range separators {
		input = strings.ReplaceAll(input, sep, " "+sep+" ")
	}
	return strings.Fields(input)
}

// splitClauses breaks tokens on sequence markers, and on a conjunction when
// the word after it starts a new command ("take key and open door").
func splitClauses(words []string) [][]string {
	var clauses [][]string
	var current []string

	flush := func() {
		current = trimCommas(current)
		if len(current) > 0 {
			clauses = append(clauses, current)
		}
		current = nil
	}

	for i, w := range words {
		if sequenceMarkers[w] {
			flush()
			continue
		}
		if conjunctions[w] && len(current) > 0 && startsCommand(words[i+1:]) {
			flush()
			continue
		}
		current = append(current, w)
	}
	flush()

	return clauses
}

// startsCommand reports whether the words after "and" begin a new clause.
// Only canonical verbs, full direction words, multi-word verb forms and a
// few unambiguous aliases count, so aliases that double as nouns ("head",
// "press", "check") stay part of an object list.
func startsCommand(next []string) bool {
	if len(next) == 0 {
		return false
	}
	word := next[0]
	switch {
	case canonicalVerbs[word], clauseAliases[word]:
		return true
	case directionNames[word]:
		return word != "in" && word != "out"
	}
	return expandMultiWordVerbs(next)[0] != word
}

func trimCommas(words []string) []string {
	for len(words) > 0 && words[0] == "," {
		words = words[1:]
	}
	for len(words) > 0 && words[len(words)-1] == "," {
		words = words[:len(words)-1]
	}
	return words
}

// parseClause parses a single clause into a Command.
func parseClause(words []string) (types.Command, error) {
	raw := strings.Join(words, " ")

	// Direction shortcut: bare "n", "south", "in" etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := NormalizeDirection(words[0]); ok {
			return types.Command{Verb: "go", Objects: []string{dir}, Raw: raw}, nil
		}
	}

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	verb := NormalizeVerb(words[0])
	rest := words[1:]
	cmd := types.Command{Verb: verb, Raw: raw}

	if verb == "go" {
		// Everything after "go" is a destination; "in" here is a direction.
		dest := strings.Join(stripArticles(dropCommas(rest)), " ")
		if dir, ok := NormalizeDirection(dest); ok {
			dest = dir
		}
		if dest != "" {
			cmd.Objects = []string{dest}
		}
		cmd.Implied = dest == ""
		return cmd, nil
	}

	// Use the first preposition as a delimiter between object and target.
	direct, prep, indirect := splitOnPreposition(rest)
	if prep != "" && !AllowsPreposition(verb, prep) {
		return cmd, &PrepositionError{Verb: verb, Preposition: prep}
	}
	cmd.Preposition = prep

	var except []string
	cmd.Objects, except = splitNames(direct)
	if prep == "with" {
		// The instrument is one phrase; it may be a spoken code like "1, 2, 3".
		if phrase := strings.Join(stripArticles(dropCommas(indirect)), " "); phrase != "" {
			cmd.Targets = []string{phrase}
		}
	} else {
		cmd.Targets, _ = splitNames(indirect)
	}

	switch {
	case len(except) > 0:
		cmd.Kind = types.KindExclusion
		cmd.Except = except
	case len(cmd.Objects) > 1 || len(cmd.Targets) > 1:
		cmd.Kind = types.KindConjunction
	}

	cmd.Implied = len(cmd.Objects) == 0 || (len(cmd.Objects) == 1 && IsPronoun(cmd.Objects[0]))

	// "drop coin in bag" is a put.
	if verb == "drop" && prep != "" {
		cmd.Verb = "put"
	}

	return cmd, nil
}

// expandMultiWordVerbs handles "look at", "pick up", "put down" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look", "l":
		switch words[1] {
		case "at", "in", "inside", "under", "on":
			return append([]string{"examine"}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "put", "set":
		if words[1] == "down" {
			return append([]string{"drop"}, words[2:]...)
		}
	case "go", "walk", "run":
		if words[1] == "to" && len(words) > 2 {
			return append([]string{"go"}, words[2:]...)
		}
	}

	return words
}

// splitOnPreposition splits words on the first recognized preposition.
// A leading preposition ("climb on table") leaves the direct phrase empty.
func splitOnPreposition(words []string) (direct []string, prep string, indirect []string) {
	for i, w := range words {
		if prepositions[w] {
			return words[:i], w, words[i+1:]
		}
	}
	return words, "", nil
}

// splitNames turns a phrase into object names: commas and conjunctions split
// names, leading articles go, and "all except X" yields the excluded names
// separately.
func splitNames(words []string) (names, except []string) {
	words = trimCommas(words)
	if len(words) == 0 {
		return nil, nil
	}

	if words[0] == "all" || words[0] == "everything" {
		for i, w := range words[1:] {
			if exclusionMarkers[w] {
				except, _ = splitNames(words[i+2:])
				break
			}
		}
		return []string{"all"}, except
	}

	var part []string
	flush := func() {
		part = stripArticles(part)
		if len(part) > 0 {
			names = append(names, strings.Join(part, " "))
		}
		part = nil
	}
	for _, w := range words {
		if conjunctions[w] || w == "," {
			flush()
			continue
		}
		part = append(part, w)
	}
	flush()

	return names, nil
}

// stripArticles removes leading articles ("the", "a", "an", "some").
func stripArticles(words []string) []string {
	for len(words) > 0 && articles[words[0]] {
		words = words[1:]
	}
	return words
}

func dropCommas(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "," {
			result = append(result, w)
		}
	}
	return result
}
