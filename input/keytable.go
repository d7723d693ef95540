package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Action classifies a bound key
type Action uint8

const (
	ActionNone Action = iota
	ActionMove
	ActionPass
	ActionRestart
	ActionDebug
	ActionSpeedUp
	ActionSpeedDown
	ActionQuit
)

// Binding describes what a key does
type Binding struct {
	Action    Action
	Direction Direction
}

// KeyTable maps terminal keys to bindings
type KeyTable struct {
	// Special keys (arrows, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]Binding

	// Rune bindings, looked up case-insensitively
	Runes map[rune]Binding
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Binding{
			tcell.KeyUp:     {ActionMove, W},
			tcell.KeyDown:   {ActionMove, S},
			tcell.KeyLeft:   {ActionMove, A},
			tcell.KeyRight:  {ActionMove, D},
			tcell.KeyTab:    {ActionDebug, None},
			tcell.KeyEscape: {ActionQuit, None},
			tcell.KeyCtrlC:  {ActionQuit, None},
		},
		Runes: map[rune]Binding{
			'w': {ActionMove, W},
			's': {ActionMove, S},
			'a': {ActionMove, A},
			'd': {ActionMove, D},
			' ': {ActionPass, Pass},
			'r': {ActionRestart, None},
			'+': {ActionSpeedUp, None},
			'=': {ActionSpeedUp, None},
			'-': {ActionSpeedDown, None},
			'q': {ActionQuit, None},
		},
	}
}

// Lookup resolves a key event, ActionNone if unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Binding {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[unicode.ToLower(ev.Rune())]
	}
	return kt.SpecialKeys[ev.Key()]
}
