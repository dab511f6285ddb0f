package core

import (
	"errors"
	"fmt"
)

type normalMode struct {
	count        countPrefix
	pendingKey   KeyEvent // Stores the first key of a multi-key command (e.g., 'g' in 'gg')
	pendingCount int      // Count typed before pendingKey, 0 if none
}

func NewNormalMode() EditorMode {
	return &normalMode{
		pendingKey: KeyEvent{Key: KeyUnknown},
	}
}

func (m *normalMode) Name() Mode { return NormalMode }

func (m *normalMode) Enter(editor Editor, buffer Buffer) {
	editor.UpdateStatus("-- NORMAL --")
	editor.UpdateCommand("")
	m.pendingKey = KeyEvent{Key: KeyUnknown}
	m.pendingCount = 0
	m.count.reset(editor)
}

func (m *normalMode) Exit(editor Editor, buffer Buffer) {
	m.pendingKey = KeyEvent{Key: KeyUnknown}
}

func (m *normalMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) (Outcome, *EditorError) {
	isRedo := key.isCtrl('r')
	key = key.unchorded()

	// --- Handle Numeric Input for Counts ---
	if m.pendingKey.Rune == 0 && m.count.feed(editor, key) {
		return KeyConsumed, nil
	}

	// --- Handle Pending Sequence (e.g., after 'g') ---
	if m.pendingKey.Rune != 0 {
		firstKey, lineCount := m.pendingKey, m.pendingCount
		m.pendingKey = KeyEvent{Key: KeyUnknown}
		m.pendingCount = 0
		editor.UpdateCommand("")

		if firstKey.Rune == 'g' && key.Rune == 'g' {
			cursor := editor.GetCursor()
			if lineCount > 0 {
				cursor.MoveToLine(buffer, lineCount-1)
			} else {
				cursor.MoveToBufferStart()
			}
			editor.SetCursor(cursor)
		}
		return KeyConsumed, nil
	}

	countWasPending := m.count.active
	count := m.count.take(editor)

	if isRedo {
		return KeyConsumed, redo(editor, count)
	}

	cursor := editor.GetCursor()
	var moveErr error
	var err *EditorError

	switch {
	// Movement keys
	case key.Rune == 'h' || key.Key == KeyLeft || key.Key == KeyBackspace:
		moveErr = cursor.MoveLeft(buffer, count)
	case key.Rune == 'j' || key.Key == KeyDown:
		moveErr = cursor.MoveDown(buffer, count)
	case key.Rune == 'k' || key.Key == KeyUp:
		moveErr = cursor.MoveUp(buffer, count)
	case key.Rune == 'l' || key.Key == KeyRight || key.Key == KeySpace:
		moveErr = cursor.MoveRight(buffer, count)
	case key.Rune == '0' || key.Key == KeyHome:
		cursor.MoveToLineStart()
	case key.Rune == '$' || key.Key == KeyEnd:
		moveErr = cursor.MoveDown(buffer, count-1)
		cursor.MoveToLineEnd(buffer)
	case key.Rune == '^':
		cursor.MoveToFirstNonBlank(buffer)
	case key.Rune == 'G':
		if countWasPending {
			cursor.MoveToLine(buffer, count-1)
		} else {
			cursor.MoveToBufferEnd(buffer)
		}
	case key.Key == KeyEnter: // Move down count lines to first non-blank
		moveErr = cursor.MoveDown(buffer, count)
		cursor.MoveToFirstNonBlank(buffer)
	case key.Rune == 'g':
		m.pendingKey = key
		if countWasPending {
			m.pendingCount = count
		}
		editor.UpdateCommand(editor.GetState().CommandLine + "g")
		return KeyConsumed, nil

	// Mode changes. The count of i/I/a/A/R is the number of times the
	// typed text ends up in the buffer.
	case key.Rune == 'i': // Insert before cursor
		return KeyConsumed, enterTextMode(editor, InsertMode, count)

	case key.Rune == 'I': // Insert at first non-blank
		cursor.MoveToFirstNonBlank(buffer)
		editor.SetCursor(cursor)
		return KeyConsumed, enterTextMode(editor, InsertMode, count)

	case key.Rune == 'a': // Insert after cursor
		if buffer.LineRuneCount(cursor.Position.Row) > 0 {
			cursor.Position.Col++
		}
		editor.SetCursor(cursor)
		return KeyConsumed, enterTextMode(editor, InsertMode, count)

	case key.Rune == 'A': // Insert at end of line
		cursor.MoveToAfterLineEnd(buffer)
		editor.SetCursor(cursor)
		return KeyConsumed, enterTextMode(editor, InsertMode, count)

	case key.Rune == 'o': // Open line below
		return KeyConsumed, openLine(editor, buffer, cursor.Position.Row, buffer.LineRuneCount(cursor.Position.Row), 1)

	case key.Rune == 'O': // Open line above
		return KeyConsumed, openLine(editor, buffer, cursor.Position.Row, 0, 0)

	case key.Rune == 'R':
		return KeyConsumed, enterTextMode(editor, ReplaceMode, count)

	case key.Rune == 'v': // Enter visual mode
		editor.SetVisualMode()
		return KeyConsumed, nil

	case key.Rune == 'V': // Enter visual line mode
		editor.SetVisualLineMode()
		return KeyConsumed, nil

	case key.Rune == ':': // Enter command mode
		editor.SetCommandMode()
		return KeyConsumed, nil

	case key.Key == KeyEscape:
		m.pendingKey = KeyEvent{Key: KeyUnknown}
		editor.UpdateCommand("")
		return KeyConsumed, nil

	// Editing commands
	case key.Rune == 'x' || key.Key == KeyDelete: // Delete character under cursor
		err = deleteUnderCursor(editor, buffer, cursor, count)

	case key.Rune == 'X': // Delete character before cursor
		if cursor.Position.Col == 0 {
			return KeyConsumed, newError(ErrStartOfLineId, ErrStartOfLine)
		}
		n := min(count, cursor.Position.Col)
		deleted := string(buffer.GetLineRunes(cursor.Position.Row)[cursor.Position.Col-n : cursor.Position.Col])
		if delErr := buffer.DeleteRunesAt(cursor.Position.Row, cursor.Position.Col-n, n); delErr != nil {
			return KeyConsumed, bufferError(delErr)
		}
		cursor.Position.Col -= n
		cursor.Preferred = cursor.Position.Col
		editor.SetCursor(cursor)
		editor.SaveHistory()
		editor.DispatchSignal(DeleteSignal{content: deleted})

	case key.Rune == 'p', key.Rune == 'P':
		if _, pasteErr := editor.Paste(key.Rune == 'P'); pasteErr != nil {
			if errors.Is(pasteErr, ErrBufferReadOnly) {
				return KeyConsumed, newError(ErrBufferReadOnlyId, pasteErr)
			}
			return KeyConsumed, newError(ErrFailedToPasteId, pasteErr)
		}
		return KeyConsumed, nil

	case key.Rune == 'u': // Undo
		return KeyConsumed, undo(editor, count)

	case key.Rune == 'U': // Redo, kept alongside Ctrl-R
		return KeyConsumed, redo(editor, count)

	default:
		// Unknown key; the count it carried is dropped
		editor.Logger().Debug("unmapped normal mode key", "key", key.String())
		return KeyConsumed, nil
	}

	if err != nil {
		return KeyConsumed, err
	}

	// Boundary errors only stop the motion where it is
	if moveErr != nil && !isBoundaryError(moveErr) {
		return KeyConsumed, newError(ErrInvalidPositionId, moveErr)
	}

	// The caret rests on a character in Normal mode
	if lineLen := buffer.LineRuneCount(cursor.Position.Row); cursor.Position.Col >= lineLen {
		cursor.Position.Col = max(lineLen-1, 0)
	}
	editor.SetCursor(cursor)

	return KeyConsumed, nil
}

// enterTextMode switches to Insert or Replace mode with the given count.
func enterTextMode(editor Editor, mode Mode, count int) *EditorError {
	if err := editor.SwitchMode(mode, InsertWithCount(count)); err != nil {
		return newError(ErrInvalidModeId, err)
	}
	return nil
}

// openLine enters Insert mode on a new empty line made by splitting row at
// col. Entering first keeps the new line in the same undo step as the text
// typed on it. A read-only buffer is refused before the mode changes.
func openLine(editor Editor, buffer Buffer, row, col, newRow int) *EditorError {
	if buffer.IsReadOnly() {
		return newError(ErrBufferReadOnlyId, fmt.Errorf("open line: %w", ErrBufferReadOnly))
	}
	if err := enterTextMode(editor, InsertMode, 1); err != nil {
		return err
	}
	if !editor.IsInsertMode() {
		return nil
	}
	if err := buffer.SplitLine(row, col); err != nil {
		return bufferError(err)
	}

	editor.SetCursor(Cursor{Position: Position{Row: row + newRow, Col: 0}})
	return nil
}

func deleteUnderCursor(editor Editor, buffer Buffer, cursor Cursor, count int) *EditorError {
	row, col := cursor.Position.Row, cursor.Position.Col
	line := buffer.GetLineRunes(row)
	if col >= len(line) { // Nothing under the cursor
		return nil
	}

	n := min(count, len(line)-col)
	deleted := string(line[col : col+n])
	if err := buffer.DeleteRunesAt(row, col, n); err != nil {
		return bufferError(err)
	}

	editor.SaveHistory()
	editor.DispatchSignal(DeleteSignal{content: deleted})
	return nil
}

func undo(editor Editor, count int) *EditorError {
	for range count {
		if err := editor.Undo(); err != nil {
			return historyError(ErrUndoFailedId, err)
		}
	}
	return nil
}

func redo(editor Editor, count int) *EditorError {
	for range count {
		if err := editor.Redo(); err != nil {
			return historyError(ErrRedoFailedId, err)
		}
	}
	return nil
}

func historyError(id ErrorId, err error) *EditorError {
	if errors.Is(err, ErrBufferReadOnly) {
		return newError(ErrBufferReadOnlyId, err)
	}
	return newError(id, err)
}
