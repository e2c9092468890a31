package text

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults is the built-in English message table, keyed by Provider method
// name. Each value is a text/template with sprig functions available.
var Defaults = map[string]string{
	"NotUnderstood":      "I don't understand that.",
	"EmptyInput":         "I beg your pardon?",
	"InvalidPreposition": "I don't know how to {{ .Verb }} something {{ .Prep }} something.",
	"WhatToVerb":         "What do you want to {{ .Verb }}?",
	"NotPresent":         "You don't see any {{ .Name }} here.",
	"Ambiguous":          "Which do you want to {{ .Verb }}: {{ series .Names \"or\" }}?",

	"CannotTake":     "The {{ .Name }} can't be taken.",
	"Taken":          "You take the {{ .Name }}.",
	"TakenFrom":      "You take the {{ .Name }} from the {{ .Container }}.",
	"NotInContainer": "There's no {{ .Name }} in the {{ .Container }}.",
	"NothingToTake":  "There is nothing here to take.",
	"NotCarrying":    "You aren't carrying any {{ .Name }}.",
	"Dropped":        "You drop the {{ .Name }}.",
	"InventoryEmpty": "You are empty-handed.",
	"InventoryList":  "You are carrying:\n{{ range .Lines }}  {{ . }}\n{{ end }}",

	"PutWhere":               "Where do you want to put the {{ .Name }}?",
	"UnsupportedPreposition": "You can't put things {{ .Prep }} other things.",
	"NotAContainer":          "You can't put anything in the {{ .Name }}.",
	"ContainerClosed":        "The {{ .Name }} is closed.",
	"WrongPreposition":       "You can't do that. Try putting it {{ .Suggestion }} the {{ .Container }}.",
	"ItemRejected":           "The {{ .Item }} doesn't belong in the {{ .Container }}.",
	"ContainerFull":          "The {{ .Container }} is full.",
	"Circular":               "{{ if eq .Item .Container }}You can't put the {{ .Item }} inside itself.{{ else }}You can't put the {{ .Item }} in the {{ .Container }} while the {{ .Container }} is inside it.{{ end }}",
	"AlreadyThere":           "The {{ .Item }} is already in the {{ .Container }}.",
	"Put":                    "You put the {{ .Item }} {{ .Prep }} the {{ .Container }}.",

	"NotOpenable":       "The {{ .Name }} can't be opened.",
	"AlreadyUnlocked":   "The {{ .Name }} is already unlocked.",
	"AlreadyOpen":       "The {{ .Name }} is already open.",
	"AlreadyClosed":     "The {{ .Name }} is already closed.",
	"Unlocked":          "You unlock the {{ .Name }}.",
	"Opened":            "You open the {{ .Name }}.",
	"UnlockedAndOpened": "You unlock the {{ .Name }} and open it.",
	"Closed":            "You close the {{ .Name }}.",
	"Locked":            "The {{ .Name }} is locked.",
	"WrongKey":          "The {{ .Key }} doesn't fit the {{ .Name }}.",
	"CodePrompt":        "The {{ .Name }} needs a code. What do you enter?",
	"WrongCode":         "That's not the right code. The {{ .Name }} stays locked.",
	"OpenStatus":        "The {{ .Name }} is {{ if .Open }}open{{ else if .Locked }}closed and locked{{ else }}closed{{ end }}.",

	"GoWhere":       "Where do you want to go?",
	"CantGoThatWay": "You can't go that way.",
	"DoorBlocks":    "The {{ .Name }} is {{ if .Locked }}locked{{ else }}closed{{ end }}.",
	"ItemHere":      "There is a {{ .Name }} here.",
	"ThingsOn":      "{{ titlecase .Prep }} the {{ .Container }} you see: {{ series .Names \"and\" }}.",
	"Exits":         "Exits: {{ join \", \" .Directions }}.",
	"NoExits":       "There are no obvious exits.",

	"NothingSpecial":    "You see nothing special about the {{ .Name }}.",
	"Contents":          "{{ titlecase .Prep }} the {{ .Name }} you see: {{ series .Names \"and\" }}.",
	"Empty":             "The {{ .Name }} is empty.",
	"SceneryNoResponse": "Nothing happens when you {{ .Verb }} the {{ .Name }}.",
	"CannotInteract":    "You can't {{ .Verb }} the {{ .Name }}.",

	"NoHints": "There are no hints right now.",
	"Hint":    "Hint {{ .Level }} of 3: {{ .Hint }}",

	"YesOrNo":          "Please answer yes or no.",
	"RestartConfirm":   "Are you sure you want to restart? (yes/no)",
	"Restarted":        "Starting over.",
	"RestartCancelled": "Okay, carrying on.",
	"QuitConfirm":      "Are you sure you want to quit? (yes/no)",
	"QuitDone":         "Thanks for playing. Goodbye!",
	"QuitCancelled":    "Okay, carrying on.",

	"Saved":      "Game saved to slot {{ quote .Slot }}.",
	"Loaded":     "Game restored from slot {{ quote .Slot }}.",
	"NoSave":     "There is no saved game in slot {{ quote .Slot }}.",
	"SaveFailed": "Something went wrong with the saved game.",
}

// templateFuncs provides sprig plus a few message helpers.
var templateFuncs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["series"] = series
	fm["titlecase"] = func(s string) string {
		return cases.Title(language.English).String(s)
	}
	return fm
}()

// series joins items as "a, b and c".
func series(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + conj + " " + items[len(items)-1]
}

// Templates is the template-backed Provider.
type Templates struct {
	tmpls  map[string]*template.Template
	logger *slog.Logger
}

// New parses the default message table with overrides layered on top.
// Unknown message names and unparsable templates are errors.
func New(overrides map[string]string, logger *slog.Logger) (*Templates, error) {
	if logger == nil {
		logger = slog.Default()
	}

	el := errors.NewErrorList()
	for _, name := range sortedNames(overrides) {
		if _, ok := Defaults[name]; !ok {
			el.Add(fmt.Errorf("unknown message %q", name))
		}
	}

	t := &Templates{tmpls: make(map[string]*template.Template, len(Defaults)), logger: logger}
	for name, src := range Defaults {
		if o, ok := overrides[name]; ok {
			src = o
		}
		tmpl, err := template.New(name).Funcs(templateFuncs).Parse(src)
		if err != nil {
			el.Add(fmt.Errorf("parsing message %q: %w", name, err))
			continue
		}
		t.tmpls[name] = tmpl
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustDefault returns the built-in English provider.
func MustDefault() *Templates {
	t, err := New(nil, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Known reports whether name is a message name.
func Known(name string) bool {
	_, ok := Defaults[name]
	return ok
}

type data map[string]any

func (t *Templates) render(name string, d data) string {
	tmpl, ok := t.tmpls[name]
	if !ok {
		t.logger.Warn("missing message template", "message", name)
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		t.logger.Warn("rendering message", "message", name, "error", err)
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (t *Templates) NotUnderstood() string { return t.render("NotUnderstood", nil) }
func (t *Templates) EmptyInput() string    { return t.render("EmptyInput", nil) }

func (t *Templates) InvalidPreposition(verb, prep string) string {
	return t.render("InvalidPreposition", data{"Verb": verb, "Prep": prep})
}

func (t *Templates) WhatToVerb(verb string) string {
	return t.render("WhatToVerb", data{"Verb": verb})
}

func (t *Templates) NotPresent(name string) string {
	return t.render("NotPresent", data{"Name": name})
}

func (t *Templates) Ambiguous(verb string, names []string) string {
	return t.render("Ambiguous", data{"Verb": verb, "Names": names})
}

func (t *Templates) CannotTake(name string) string {
	return t.render("CannotTake", data{"Name": name})
}

func (t *Templates) Taken(name string) string {
	return t.render("Taken", data{"Name": name})
}

func (t *Templates) TakenFrom(name, container string) string {
	return t.render("TakenFrom", data{"Name": name, "Container": container})
}

func (t *Templates) NotInContainer(name, container string) string {
	return t.render("NotInContainer", data{"Name": name, "Container": container})
}

func (t *Templates) NothingToTake() string { return t.render("NothingToTake", nil) }

func (t *Templates) NotCarrying(name string) string {
	return t.render("NotCarrying", data{"Name": name})
}

func (t *Templates) Dropped(name string) string {
	return t.render("Dropped", data{"Name": name})
}

func (t *Templates) InventoryEmpty() string { return t.render("InventoryEmpty", nil) }

func (t *Templates) InventoryList(lines []string) string {
	return t.render("InventoryList", data{"Lines": lines})
}

func (t *Templates) PutWhere(name string) string {
	return t.render("PutWhere", data{"Name": name})
}

func (t *Templates) UnsupportedPreposition(prep string) string {
	return t.render("UnsupportedPreposition", data{"Prep": prep})
}

func (t *Templates) NotAContainer(name string) string {
	return t.render("NotAContainer", data{"Name": name})
}

func (t *Templates) ContainerClosed(name string) string {
	return t.render("ContainerClosed", data{"Name": name})
}

func (t *Templates) WrongPreposition(container, suggestion string) string {
	return t.render("WrongPreposition", data{"Container": container, "Suggestion": suggestion})
}

func (t *Templates) ItemRejected(item, container string) string {
	return t.render("ItemRejected", data{"Item": item, "Container": container})
}

func (t *Templates) ContainerFull(container string) string {
	return t.render("ContainerFull", data{"Container": container})
}

func (t *Templates) Circular(item, container string) string {
	return t.render("Circular", data{"Item": item, "Container": container})
}

func (t *Templates) AlreadyThere(item, container string) string {
	return t.render("AlreadyThere", data{"Item": item, "Container": container})
}

func (t *Templates) Put(item, prep, container string) string {
	return t.render("Put", data{"Item": item, "Prep": prep, "Container": container})
}

func (t *Templates) NotOpenable(name string) string {
	return t.render("NotOpenable", data{"Name": name})
}

func (t *Templates) AlreadyUnlocked(name string) string {
	return t.render("AlreadyUnlocked", data{"Name": name})
}

func (t *Templates) AlreadyOpen(name string) string {
	return t.render("AlreadyOpen", data{"Name": name})
}

func (t *Templates) AlreadyClosed(name string) string {
	return t.render("AlreadyClosed", data{"Name": name})
}

func (t *Templates) Unlocked(name string) string {
	return t.render("Unlocked", data{"Name": name})
}

func (t *Templates) Opened(name string) string {
	return t.render("Opened", data{"Name": name})
}

func (t *Templates) UnlockedAndOpened(name string) string {
	return t.render("UnlockedAndOpened", data{"Name": name})
}

func (t *Templates) Closed(name string) string {
	return t.render("Closed", data{"Name": name})
}

func (t *Templates) Locked(name string) string {
	return t.render("Locked", data{"Name": name})
}

func (t *Templates) WrongKey(name, key string) string {
	return t.render("WrongKey", data{"Name": name, "Key": key})
}

func (t *Templates) CodePrompt(name string) string {
	return t.render("CodePrompt", data{"Name": name})
}

func (t *Templates) WrongCode(name string) string {
	return t.render("WrongCode", data{"Name": name})
}

func (t *Templates) OpenStatus(name string, open, locked bool) string {
	return t.render("OpenStatus", data{"Name": name, "Open": open, "Locked": locked})
}

func (t *Templates) GoWhere() string       { return t.render("GoWhere", nil) }
func (t *Templates) CantGoThatWay() string { return t.render("CantGoThatWay", nil) }

func (t *Templates) DoorBlocks(name string, locked bool) string {
	return t.render("DoorBlocks", data{"Name": name, "Locked": locked})
}

func (t *Templates) ItemHere(name string) string {
	return t.render("ItemHere", data{"Name": name})
}

func (t *Templates) ThingsOn(container, prep string, names []string) string {
	return t.render("ThingsOn", data{"Container": container, "Prep": prep, "Names": names})
}

func (t *Templates) Exits(directions []string) string {
	return t.render("Exits", data{"Directions": directions})
}

func (t *Templates) NoExits() string { return t.render("NoExits", nil) }

func (t *Templates) NothingSpecial(name string) string {
	return t.render("NothingSpecial", data{"Name": name})
}

func (t *Templates) Contents(name, prep string, names []string) string {
	return t.render("Contents", data{"Name": name, "Prep": prep, "Names": names})
}

func (t *Templates) Empty(name string) string {
	return t.render("Empty", data{"Name": name})
}

func (t *Templates) SceneryNoResponse(verb, name string) string {
	return t.render("SceneryNoResponse", data{"Verb": verb, "Name": name})
}

func (t *Templates) CannotInteract(verb, name string) string {
	return t.render("CannotInteract", data{"Verb": verb, "Name": name})
}

func (t *Templates) NoHints() string { return t.render("NoHints", nil) }

func (t *Templates) Hint(level int, hint string) string {
	return t.render("Hint", data{"Level": level, "Hint": hint})
}

func (t *Templates) YesOrNo() string          { return t.render("YesOrNo", nil) }
func (t *Templates) RestartConfirm() string   { return t.render("RestartConfirm", nil) }
func (t *Templates) Restarted() string        { return t.render("Restarted", nil) }
func (t *Templates) RestartCancelled() string { return t.render("RestartCancelled", nil) }
func (t *Templates) QuitConfirm() string      { return t.render("QuitConfirm", nil) }
func (t *Templates) QuitDone() string         { return t.render("QuitDone", nil) }
func (t *Templates) QuitCancelled() string    { return t.render("QuitCancelled", nil) }

func (t *Templates) Saved(slot string) string {
	return t.render("Saved", data{"Slot": slot})
}

func (t *Templates) Loaded(slot string) string {
	return t.render("Loaded", data{"Slot": slot})
}

func (t *Templates) NoSave(slot string) string {
	return t.render("NoSave", data{"Slot": slot})
}

func (t *Templates) SaveFailed() string { return t.render("SaveFailed", nil) }
