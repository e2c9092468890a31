package rules

import "github.com/nathoo/wayfarer/types"

// MatchesCommand checks if an override's When criteria match a command.
// objectID and targetID are resolved entity IDs, or the raw names when they
// did not resolve.
func MatchesCommand(when types.MatchCriteria, verb, objectID, targetID, location string) bool {
	// Verb is required and must match.
	if when.Verb != verb {
		return false
	}

	// If When specifies an object, it must match the resolved object.
	if when.Object != "" && when.Object != objectID {
		return false
	}

	// If When specifies a target, it must match the resolved target.
	if when.Target != "" && when.Target != targetID {
		return false
	}

	// If When specifies a location, the player must be there.
	if when.Location != "" && when.Location != location {
		return false
	}

	return true
}

// Specificity returns a numeric score for ranking overrides.
// Higher is more specific.
func Specificity(o types.OverrideDef) int {
	score := 0
	if o.When.Target != "" {
		score += 4
	}
	if o.When.Object != "" {
		score += 2
	}
	if o.When.Location != "" {
		score += 1
	}
	return score
}
