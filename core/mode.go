package core

import (
	"fmt"
)

type Mode string

const (
	NormalMode     Mode = "normal"
	InsertMode     Mode = "insert"
	ReplaceMode    Mode = "replace"
	VisualMode     Mode = "visual"
	VisualLineMode Mode = "visual-line"
	CommandMode    Mode = "command"
)

// ModeArgument carries the parameters of a mode switch.
type ModeArgument struct {
	count int
}

// ArgumentNone switches mode with the default insert count of 1.
var ArgumentNone = ModeArgument{}

// InsertWithCount asks the entered mode to materialise its insertion n times in
// total. Values below 1 are treated as 1.
func InsertWithCount(n int) ModeArgument {
	return ModeArgument{count: n}
}

// Count returns the insert count, never less than 1.
func (a ModeArgument) Count() int {
	if a.count < 1 {
		return 1
	}
	return a.count
}

func (a ModeArgument) String() string {
	if a.count <= 1 {
		return "none"
	}
	return fmt.Sprintf("count(%d)", a.count)
}

// Outcome tells the editor what a handled key means for the active mode.
type Outcome int

const (
	// KeyConsumed: the mode stays active.
	KeyConsumed Outcome = iota
	// SessionComplete: the mode is done and the editor must leave it,
	// repeating the recorded insertion first when the mode has a count.
	SessionComplete
)

// EditorMode represents a Vim editing mode
type EditorMode interface {
	Name() Mode
	// HandleKey processes a key press against the buffer. Modes may switch the
	// editor to another mode themselves or report SessionComplete.
	HandleKey(editor Editor, buffer Buffer, key KeyEvent) (Outcome, *EditorError)
	Enter(editor Editor, buffer Buffer) // Called when entering the mode
	Exit(editor Editor, buffer Buffer)  // Called when exiting the mode
}

// textEntryMode is implemented by the modes whose typed input is recorded
// and replayed on exit.
type textEntryMode interface {
	EditorMode
	Session() *InsertionSession
	Count() int
	// apply writes r at the caret using the mode's mutation policy
	// without recording it.
	apply(editor Editor, buffer Buffer, r rune) *EditorError
}

// modeFactory builds a fresh handler for every activation of a mode.
type modeFactory func(arg ModeArgument) EditorMode

var modeFactories = map[Mode]modeFactory{
	NormalMode:     func(ModeArgument) EditorMode { return NewNormalMode() },
	InsertMode:     func(arg ModeArgument) EditorMode { return NewInsertMode(arg.Count()) },
	ReplaceMode:    func(arg ModeArgument) EditorMode { return NewReplaceMode(arg.Count()) },
	VisualMode:     func(ModeArgument) EditorMode { return NewVisualMode(VisualCharacter) },
	VisualLineMode: func(ModeArgument) EditorMode { return NewVisualMode(VisualLine) },
	CommandMode:    func(ModeArgument) EditorMode { return NewCommandMode() },
}

// countPrefix accumulates a numeric prefix typed before a command ("3i", "2R", "5j").
type countPrefix struct {
	value  int
	active bool
}

// feed consumes key if it extends the count. A leading '0' is not a digit,
// it is the line-start motion.
func (c *countPrefix) feed(editor Editor, key KeyEvent) bool {
	if key.Modifiers != ModNone || key.Key != KeyUnknown {
		return false
	}
	switch {
	case key.Rune >= '1' && key.Rune <= '9':
	case key.Rune == '0' && c.active:
	default:
		return false
	}

	c.value = c.value*10 + int(key.Rune-'0')
	c.active = true
	editor.UpdateCommand(fmt.Sprintf("%d", c.value))
	return true
}

// take returns the accumulated count (1 when none was typed) and resets it.
func (c *countPrefix) take(editor Editor) int {
	if !c.active {
		return 1
	}
	n := c.value
	c.reset(editor)
	return n
}

func (c *countPrefix) reset(editor Editor) {
	if c.active {
		editor.UpdateCommand("")
	}
	c.value = 0
	c.active = false
}
