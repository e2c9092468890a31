package engine

import "strings"

type answer int

const (
	answerOther answer = iota
	answerYes
	answerNo
)

var yesWords = map[string]bool{
	"y": true, "yes": true, "yeah": true, "yep": true, "sure": true, "ok": true,
}

var noWords = map[string]bool{
	"n": true, "no": true, "nope": true, "nah": true,
}

// classify matches a confirmation answer against the fixed yes/no words.
// It bypasses the parser so "n" is never read as north.
func classify(raw string) answer {
	word := strings.Trim(strings.ToLower(strings.TrimSpace(raw)), ".!?")
	switch {
	case yesWords[word]:
		return answerYes
	case noWords[word]:
		return answerNo
	}
	return answerOther
}
