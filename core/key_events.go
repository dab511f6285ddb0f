package core

import (
	"fmt"
	"strings"
)

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyDelete
	KeyInsert
)

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent is a resolved key event. Printable events carry a Rune,
// control events carry a Key.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

// EscapeKey is the canonical exit event of Insert, Replace and Visual modes.
var EscapeKey = KeyEvent{Key: KeyEscape}

// RuneKey returns the event produced by typing r.
func RuneKey(r rune) KeyEvent {
	switch r {
	case '\n', '\r':
		return KeyEvent{Key: KeyEnter}
	case '\t':
		return KeyEvent{Rune: '\t', Key: KeyTab}
	case ' ':
		return KeyEvent{Rune: ' ', Key: KeySpace}
	case 0x1b:
		return EscapeKey
	}
	return KeyEvent{Rune: r}
}

// CtrlKey returns the event for Ctrl plus r.
func CtrlKey(r rune) KeyEvent {
	return KeyEvent{Rune: r, Modifiers: ModCtrl}
}

// Keys converts text into the key events a user would type to produce it.
// A '\n' becomes Enter and an ASCII escape becomes Escape.
func Keys(text string) []KeyEvent {
	keys := make([]KeyEvent, 0, len(text))
	for _, r := range text {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

// Text reports the character the event produces when typed into the buffer.
// Enter produces '\n'. Events with Ctrl or Alt held produce nothing.
func (k KeyEvent) Text() (rune, bool) {
	if k.Modifiers&(ModCtrl|ModAlt) != 0 {
		return 0, false
	}
	switch k.Key {
	case KeyEnter:
		return '\n', true
	case KeyTab:
		return '\t', true
	case KeySpace:
		return ' ', true
	case KeyUnknown:
		if k.Rune != 0 {
			return k.Rune, true
		}
	}
	return 0, false
}

func (k KeyEvent) isCtrl(r rune) bool {
	return k.Modifiers&ModCtrl != 0 && k.Rune == r
}

// unchorded drops the rune of a Ctrl or Alt chord, so Ctrl-h never matches
// a plain h binding. Special keys keep their code.
func (k KeyEvent) unchorded() KeyEvent {
	if k.Modifiers&(ModCtrl|ModAlt) != 0 {
		k.Rune = 0
	}
	return k
}

// String returns a string representation of a Key
func (k KeyEvent) String() string {
	var parts []string

	if k.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}

	if name, ok := keyNames[k.Key]; ok && (k.Rune == 0 || k.Key == KeySpace || k.Key == KeyTab) {
		parts = append(parts, name)
	} else if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
	}

	return strings.Join(parts, "+")
}

var keyNames = map[KeyCode]string{
	KeyUnknown:   "Unknown",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
}
