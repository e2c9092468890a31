// Package text supplies every player-visible string. The engine and command
// handlers only ever ask a Provider; they never build sentences themselves.
package text

// Provider has one method per message.
type Provider interface {
	// Parsing and resolution.
	NotUnderstood() string
	EmptyInput() string
	InvalidPreposition(verb, prep string) string
	WhatToVerb(verb string) string
	NotPresent(name string) string
	Ambiguous(verb string, names []string) string

	// Taking, dropping and inventory.
	CannotTake(name string) string
	Taken(name string) string
	TakenFrom(name, container string) string
	NotInContainer(name, container string) string
	NothingToTake() string
	NotCarrying(name string) string
	Dropped(name string) string
	InventoryEmpty() string
	InventoryList(lines []string) string

	// Containers.
	PutWhere(name string) string
	UnsupportedPreposition(prep string) string
	NotAContainer(name string) string
	ContainerClosed(name string) string
	WrongPreposition(container, suggestion string) string
	ItemRejected(item, container string) string
	ContainerFull(container string) string
	Circular(item, container string) string
	AlreadyThere(item, container string) string
	Put(item, prep, container string) string

	// Openables.
	NotOpenable(name string) string
	AlreadyUnlocked(name string) string
	AlreadyOpen(name string) string
	AlreadyClosed(name string) string
	Unlocked(name string) string
	Opened(name string) string
	UnlockedAndOpened(name string) string
	Closed(name string) string
	Locked(name string) string
	WrongKey(name, key string) string
	CodePrompt(name string) string
	WrongCode(name string) string
	OpenStatus(name string, open, locked bool) string

	// Movement and description.
	GoWhere() string
	CantGoThatWay() string
	DoorBlocks(name string, locked bool) string
	ItemHere(name string) string
	ThingsOn(container, prep string, names []string) string
	Exits(directions []string) string
	NoExits() string

	// Examining and interacting.
	NothingSpecial(name string) string
	Contents(name, prep string, names []string) string
	Empty(name string) string
	SceneryNoResponse(verb, name string) string
	CannotInteract(verb, name string) string

	// Hints.
	NoHints() string
	Hint(level int, hint string) string

	// Conversation.
	YesOrNo() string
	RestartConfirm() string
	Restarted() string
	RestartCancelled() string
	QuitConfirm() string
	QuitDone() string
	QuitCancelled() string

	// Saving.
	Saved(slot string) string
	Loaded(slot string) string
	NoSave(slot string) string
	SaveFailed() string
}
