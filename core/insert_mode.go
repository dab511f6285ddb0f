package core

import "fmt"

type insertMode struct {
	count   int
	session *InsertionSession
}

// NewInsertMode returns an Insert mode handler whose insertion is
// materialised count times in total.
func NewInsertMode(count int) EditorMode {
	return &insertMode{
		count:   max(count, 1),
		session: newInsertionSession(),
	}
}

func (m *insertMode) Name() Mode { return InsertMode }

func (m *insertMode) Session() *InsertionSession { return m.session }

func (m *insertMode) Count() int { return m.count }

func (m *insertMode) Enter(editor Editor, buffer Buffer) {
	editor.UpdateStatus(statusWithCount("-- INSERT --", m.count))
	editor.UpdateCommand("")
	// Save state for undo *before* the first insertion
	editor.SaveHistory()
}

func (m *insertMode) Exit(editor Editor, buffer Buffer) {}

func (m *insertMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) (Outcome, *EditorError) {
	switch key.Key {
	case KeyEscape:
		if !editor.IsVimMode() {
			return KeyConsumed, nil
		}
		return SessionComplete, nil

	case KeyBackspace:
		return KeyConsumed, m.backspace(editor, buffer)

	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd:
		moveInSession(editor, buffer, key)
		m.session.Reset()
		return KeyConsumed, nil
	}

	r, ok := key.Text()
	if !ok {
		// Ignore unknown special keys or modifiers without runes in insert mode
		return KeyConsumed, nil
	}

	if err := m.apply(editor, buffer, r); err != nil {
		return KeyConsumed, err
	}
	m.session.Record(r)

	return KeyConsumed, nil
}

// apply inserts r at the caret, shifting the rest of the line right.
// A '\n' splits the line.
func (m *insertMode) apply(editor Editor, buffer Buffer, r rune) *EditorError {
	cursor := editor.GetCursor()
	row, col := cursor.Position.Row, cursor.Position.Col

	if r == '\n' {
		if err := buffer.SplitLine(row, col); err != nil {
			return bufferError(err)
		}
		cursor.Position = Position{Row: row + 1, Col: 0}
		cursor.Preferred = 0
		editor.SetCursor(cursor)
		return nil
	}

	if err := buffer.InsertRunesAt(row, col, []rune{r}); err != nil {
		return bufferError(err)
	}
	cursor.Advance(buffer, 1)
	editor.SetCursor(cursor)
	return nil
}

// backspace deletes the rune before the caret, joining with the previous
// line at column 0, and forgets the last typed rune.
func (m *insertMode) backspace(editor Editor, buffer Buffer) *EditorError {
	cursor := editor.GetCursor()
	row, col := cursor.Position.Row, cursor.Position.Col

	switch {
	case col > 0:
		if err := buffer.DeleteRunesAt(row, col-1, 1); err != nil {
			return bufferError(err)
		}
		cursor.Position.Col--
	case row > 0:
		prevLineLen := buffer.LineRuneCount(row - 1)
		if err := buffer.DeleteRunesAt(row-1, prevLineLen, 1); err != nil {
			return bufferError(err)
		}
		cursor.Position = Position{Row: row - 1, Col: prevLineLen}
	default:
		return newError(ErrStartOfBufferId, ErrStartOfBuffer)
	}

	cursor.Preferred = cursor.Position.Col
	editor.SetCursor(cursor)
	m.session.Unrecord()
	return nil
}

// moveInSession moves the caret with the arrow keys while text is being
// typed. The caret may rest after the last character.
func moveInSession(editor Editor, buffer Buffer, key KeyEvent) {
	cursor := editor.GetCursor()

	switch key.Key {
	case KeyLeft:
		_ = cursor.MoveLeft(buffer, 1)
	case KeyRight:
		if cursor.Position.Col < buffer.LineRuneCount(cursor.Position.Row) {
			cursor.Position.Col++
			cursor.Preferred = cursor.Position.Col
		}
	case KeyUp:
		_ = cursor.MoveUp(buffer, 1)
	case KeyDown:
		_ = cursor.MoveDown(buffer, 1)
	case KeyHome:
		cursor.MoveToLineStart()
	case KeyEnd:
		cursor.MoveToAfterLineEnd(buffer)
	}

	editor.SetCursor(cursor)
}

func statusWithCount(status string, count int) string {
	if count <= 1 {
		return status
	}
	return fmt.Sprintf("%s (%dx)", status, count)
}
