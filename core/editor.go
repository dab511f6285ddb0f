package core

import "log/slog"

// SelectionType indicates the selection status of a position
type SelectionType int

const (
	SelectionNone      SelectionType = iota // Position is not selected
	SelectionCharacter                      // Position is part of a character-wise visual selection
	SelectionLine                           // Position is part of a line-wise visual selection
)

// Editor is the mode state machine. It owns the active mode handler and the
// caret, and holds a reference to the host's buffer.
type Editor interface {
	// Buffer manipulation
	GetBuffer() Buffer
	SetBuffer(Buffer)  // Replace the current buffer
	SetContent([]byte) // Set buffer content from byte slice

	// Caret
	GetCursor() Cursor
	SetCursor(Cursor) // Clamped to the buffer
	CaretOffset() int

	// Mode handling
	GetMode() EditorMode
	Mode() Mode
	SwitchMode(mode Mode, arg ModeArgument) error
	SetNormalMode()
	SetInsertMode()
	SetReplaceMode()
	SetVisualMode()
	SetVisualLineMode()
	SetCommandMode()
	DisableVimMode(bool)
	IsVimMode() bool
	DisableCommandMode(bool)
	DisableInsertMode(bool)
	DisableReplaceMode(bool)
	DisableVisualMode(bool)
	DisableVisualLineMode(bool)

	// Event handling
	HandleKey(key KeyEvent) error    // Process a key press
	Process(keys ...KeyEvent) error  // Process key presses in order
	ProcessString(text string) error // Type text as individual key presses

	// State Management
	GetState() State      // Get the current editor state
	SetState(State)       // Update the editor state (used internally)
	UpdateStatus(string)  // Helper to set status line
	UpdateCommand(string) // Helper to set command line

	// Command execution (Called from Command Mode)
	ExecuteCommand(cmd string) error

	// History management
	SaveHistory() // Record the current buffer as an undo point
	Undo() error
	Redo() error
	SetMaxHistory(max uint32)
	Paste(before bool) (string, error) // Paste from clipboard
	Copy(text string) error            // Copy to clipboard

	ScrollViewport()
	GetUpdateSignalChan() <-chan Signal            // For UI updates
	GetSelectionStatus(pos Position) SelectionType // Get selection status of a position
	Save()                                         // Save the current buffer content
	Quit()                                         // Signal to quit the editor
	DispatchError(id ErrorId, err error)           // Dispatch errors to consumers
	DispatchMessage(args ...string)                // Dispatch (success) messages to consumers
	DispatchSignal(signal Signal)                  // Dispatch signals to consumers

	Logger() *slog.Logger

	ShowRelativeLineNumbers(bool)
	IsNormalMode() bool
	IsInsertMode() bool
	IsReplaceMode() bool
	IsVisualMode() bool
	IsVisualLineMode() bool
	IsCommandMode() bool
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Option configures an editor at construction.
type Option func(*editor)

// WithLogger routes engine logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxHistory limits the number of undo snapshots. Default is 1000.
func WithMaxHistory(max uint32) Option {
	return func(e *editor) {
		e.maxHistory = max
	}
}

// WithBuffer starts the editor on buffer instead of an empty one.
func WithBuffer(buffer Buffer) Option {
	return func(e *editor) {
		if buffer != nil {
			e.buffer = buffer
		}
	}
}

// WithReadOnly opens the buffer read-only.
func WithReadOnly(readOnly bool) Option {
	return func(e *editor) {
		e.readOnly = readOnly
	}
}
