package core

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// State represents the current state of the editor as the host sees it
type State struct {
	Mode        Mode   // Current editing mode
	InsertCount int    // Count of the active Insert/Replace session
	StatusLine  string // Content of the status line (bottom line)
	CommandLine string // Current command being typed or message to display
	Quit        bool   // Flag indicating if the editor should exit

	// Viewport information
	TopLine        int // First line visible in the viewport (0-indexed)
	ViewportHeight int // Number of lines that can be displayed
	ViewportWidth  int // Number of columns that can be displayed

	// Visual mode
	VisualStart Position // Starting position for visual selection (Position{-1,-1} if not active)

	// UI Options
	RelativeNumbers bool // Flag for relative line numbers

	VimMode bool

	WithCommandMode    bool // Whether command mode is enabled
	WithInsertMode     bool // Whether insert mode is enabled
	WithReplaceMode    bool // Whether replace mode is enabled
	WithVisualMode     bool // Whether visual mode is enabled
	WithVisualLineMode bool // Whether visual line mode is enabled
}

// InitialState creates a default state
func InitialState() State {
	return State{
		Mode:           NormalMode,
		InsertCount:    1,
		StatusLine:     "-- NORMAL --",
		ViewportHeight: 24,
		ViewportWidth:  80,
		VisualStart:    Position{-1, -1},
		VimMode:        true,

		WithCommandMode:    true,
		WithInsertMode:     true,
		WithReplaceMode:    true,
		WithVisualMode:     true,
		WithVisualLineMode: true,
	}
}

type editor struct {
	buffer      Buffer
	cursor      Cursor
	currentMode EditorMode
	state       State
	readOnly    bool

	history       []string // Snapshots of buffer content
	cursorHistory []Cursor // Cursor states corresponding to history
	historyPos    int      // Current position in the history (-1 = nothing saved)
	maxHistory    uint32

	clipboard    Clipboard
	updateSignal chan Signal
	logger       *slog.Logger
}

// New creates an editor in Normal mode on an empty buffer.
func New(clipboard Clipboard, opts ...Option) Editor {
	e := &editor{
		buffer:       NewBuffer(),
		state:        InitialState(),
		historyPos:   -1,
		maxHistory:   1000,
		clipboard:    clipboard,
		updateSignal: make(chan Signal, 100),
		logger:       slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.readOnly {
		e.buffer.SetReadOnly(true)
	}

	e.currentMode = NewNormalMode()
	e.currentMode.Enter(e, e.buffer)

	e.SaveHistory()

	return e
}

func (e *editor) Logger() *slog.Logger {
	return e.logger
}

// SetMaxHistory sets the maximum number of history entries.
func (e *editor) SetMaxHistory(max uint32) {
	e.maxHistory = max
}

func (e *editor) DisableVimMode(disable bool) {
	e.state.VimMode = !disable
	if disable {
		e.SetInsertMode()
		e.ShowRelativeLineNumbers(false)
	} else {
		e.SetNormalMode()
	}
}

func (e *editor) IsVimMode() bool {
	return e.state.VimMode
}

func (e *editor) DisableCommandMode(disable bool) {
	e.state.WithCommandMode = !disable
}

func (e *editor) DisableInsertMode(disable bool) {
	e.state.WithInsertMode = !disable
}

func (e *editor) DisableReplaceMode(disable bool) {
	e.state.WithReplaceMode = !disable
}

func (e *editor) DisableVisualMode(disable bool) {
	e.state.WithVisualMode = !disable
}

func (e *editor) DisableVisualLineMode(disable bool) {
	e.state.WithVisualLineMode = !disable
}

func (e *editor) ShowRelativeLineNumbers(show bool) {
	e.state.RelativeNumbers = show
}

func (e *editor) modeEnabled(mode Mode) bool {
	switch mode {
	case InsertMode:
		return e.state.WithInsertMode
	case ReplaceMode:
		return e.state.WithReplaceMode
	case VisualMode:
		return e.state.WithVisualMode
	case VisualLineMode:
		return e.state.WithVisualLineMode
	case CommandMode:
		return e.state.WithCommandMode
	}
	return true
}

// SwitchMode leaves the active mode, dropping its insertion session, and
// enters a fresh handler for mode. Switching to a disabled mode is a no-op.
func (e *editor) SwitchMode(mode Mode, arg ModeArgument) error {
	factory, ok := modeFactories[mode]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if !e.modeEnabled(mode) {
		e.logger.Debug("mode disabled, switch ignored", "mode", mode)
		return nil
	}

	from := e.state.Mode
	if e.currentMode != nil {
		e.currentMode.Exit(e, e.buffer)
	}

	e.currentMode = factory(arg)
	e.state.Mode = mode
	e.state.InsertCount = arg.Count()
	e.currentMode.Enter(e, e.buffer)

	e.logger.Debug("mode switched", "from", from, "to", mode, "arg", arg.String())
	return nil
}

func (e *editor) setMode(mode Mode) {
	_ = e.SwitchMode(mode, ArgumentNone)
}

func (e *editor) SetNormalMode() {
	e.setMode(NormalMode)
}

func (e *editor) SetInsertMode() {
	e.setMode(InsertMode)
}

func (e *editor) SetReplaceMode() {
	e.setMode(ReplaceMode)
}

func (e *editor) SetVisualMode() {
	e.setMode(VisualMode)
}

func (e *editor) SetVisualLineMode() {
	e.setMode(VisualLineMode)
}

func (e *editor) SetCommandMode() {
	e.setMode(CommandMode)
}

func (e *editor) GetBuffer() Buffer {
	return e.buffer
}

// SetBuffer swaps in a new buffer. History restarts and the caret returns to
// the top of the buffer.
func (e *editor) SetBuffer(buffer Buffer) {
	e.buffer = buffer
	e.cursor = Cursor{}
	e.history = nil
	e.cursorHistory = nil
	e.historyPos = -1
	e.SaveHistory()
	e.UpdateStatus(fmt.Sprintf("-- %s --", strings.ToUpper(string(e.state.Mode))))
	e.ScrollViewport()
}

// SetContent loads content into a new buffer, keeping the read-only flag.
func (e *editor) SetContent(content []byte) {
	buffer := NewBufferFromBytes(content)
	buffer.SetReadOnly(e.buffer.IsReadOnly())
	e.SetBuffer(buffer)
}

func (e *editor) GetCursor() Cursor {
	return e.cursor
}

// SetCursor sets the cursor position, clamping it to the buffer. The column
// may sit one past the end of the line.
func (e *editor) SetCursor(cursor Cursor) {
	cursor.Position.Row = max(0, min(cursor.Position.Row, e.buffer.LineCount()-1))
	cursor.clampCol(e.buffer)
	e.cursor = cursor
}

func (e *editor) CaretOffset() int {
	return e.cursor.Offset(e.buffer)
}

func (e *editor) GetMode() EditorMode {
	return e.currentMode
}

func (e *editor) Mode() Mode {
	return e.state.Mode
}

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal
}

// HandleKey feeds one key event to the active mode. When the mode reports
// that its session is complete, the recorded insertion is repeated and the
// editor returns to Normal mode before HandleKey returns.
func (e *editor) HandleKey(key KeyEvent) error {
	if e.currentMode == nil {
		return ErrInvalidMode
	}

	outcome, err := e.currentMode.HandleKey(e, e.buffer, key)

	if outcome == SessionComplete {
		var completeErr *EditorError
		if mode, ok := e.currentMode.(textEntryMode); ok {
			completeErr = e.completeSession(mode)
		} else {
			e.SetNormalMode()
		}
		if err == nil {
			err = completeErr
		}
	}

	e.ScrollViewport()

	if err != nil {
		e.logger.Debug("key rejected", "key", key.String(), "mode", e.state.Mode, "error", err)
		return err
	}

	return nil
}

// Process handles keys in order. A rejected key does not stop the keys after
// it; all errors are returned together.
func (e *editor) Process(keys ...KeyEvent) error {
	var errs []error
	for _, key := range keys {
		if err := e.HandleKey(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *editor) ProcessString(text string) error {
	return e.Process(Keys(text)...)
}

func (e *editor) GetState() State {
	return e.state
}

// SetState allows internal updates (e.g., from modes)
func (e *editor) SetState(state State) {
	e.state = state
}

// UpdateStatus is a helper for modes to update the status line
func (e *editor) UpdateStatus(status string) {
	e.state.StatusLine = status
}

// UpdateCommand is a helper for modes to update the command line
func (e *editor) UpdateCommand(cmd string) {
	e.state.CommandLine = cmd
}

// ScrollViewport ensures the cursor is within the visible area
func (e *editor) ScrollViewport() {
	row := e.cursor.Position.Row

	if row < e.state.TopLine {
		e.state.TopLine = row
	} else if e.state.ViewportHeight > 0 && row >= e.state.TopLine+e.state.ViewportHeight {
		e.state.TopLine = row - e.state.ViewportHeight + 1
	}

	e.state.TopLine = max(e.state.TopLine, 0)
}

func (e *editor) GetSelectionStatus(pos Position) SelectionType {
	if e.state.VisualStart.Row == -1 {
		return SelectionNone
	}

	selStart, selEnd := NormalizeSelection(e.state.VisualStart, e.cursor.Position)

	if e.state.Mode == VisualLineMode {
		if pos.Row >= selStart.Row && pos.Row <= selEnd.Row {
			return SelectionLine
		}
		return SelectionNone
	}

	after := pos.Row > selStart.Row || (pos.Row == selStart.Row && pos.Col >= selStart.Col)
	before := pos.Row < selEnd.Row || (pos.Row == selEnd.Row && pos.Col <= selEnd.Col)
	if after && before {
		return SelectionCharacter
	}

	return SelectionNone
}

func (e *editor) Save() {
	e.buffer.SaveContent()
	e.DispatchSignal(SaveSignal{content: e.buffer.GetSavedContent()})
}

func (e *editor) Quit() {
	e.state.Quit = true
	e.DispatchSignal(QuitSignal{})
}

func (e *editor) IsNormalMode() bool {
	return e.state.Mode == NormalMode
}

func (e *editor) IsInsertMode() bool {
	return e.state.Mode == InsertMode
}

func (e *editor) IsReplaceMode() bool {
	return e.state.Mode == ReplaceMode
}

func (e *editor) IsVisualMode() bool {
	return e.state.Mode == VisualMode
}

func (e *editor) IsVisualLineMode() bool {
	return e.state.Mode == VisualLineMode
}

func (e *editor) IsCommandMode() bool {
	return e.state.Mode == CommandMode
}
