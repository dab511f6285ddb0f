package core

import "strings"

// VisualKind selects what a visual selection covers.
type VisualKind int

const (
	VisualCharacter VisualKind = iota // From the anchor to the caret, both included
	VisualLine                        // Whole lines from the anchor row to the caret row
)

// visualMode handles both visual modes. The anchor lives in
// State.VisualStart so it survives switching between the two kinds.
type visualMode struct {
	kind  VisualKind
	count countPrefix
}

func NewVisualMode(kind VisualKind) EditorMode {
	return &visualMode{kind: kind}
}

func (m *visualMode) Name() Mode {
	if m.kind == VisualLine {
		return VisualLineMode
	}
	return VisualMode
}

func (m *visualMode) Enter(editor Editor, buffer Buffer) {
	if m.kind == VisualLine {
		editor.UpdateStatus("-- VISUAL LINE --")
	} else {
		editor.UpdateStatus("-- VISUAL --")
	}
	editor.UpdateCommand("")
	m.count.reset(editor)

	state := editor.GetState()
	state.VisualStart = editor.GetCursor().Position
	editor.SetState(state)
}

func (m *visualMode) Exit(editor Editor, buffer Buffer) {
	// Clear visual selection indication in editor state
	state := editor.GetState()
	state.VisualStart = Position{Row: -1, Col: -1}
	editor.SetState(state)
	editor.UpdateCommand("")
}

func (m *visualMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) (Outcome, *EditorError) {
	if key.Key == KeyEscape {
		return SessionComplete, nil
	}
	key = key.unchorded()

	if m.count.feed(editor, key) {
		return KeyConsumed, nil
	}
	countWasPending := m.count.active
	count := m.count.take(editor)

	anchor := editor.GetState().VisualStart
	cursor := editor.GetCursor()

	// --- Visual Mode Actions ---
	switch key.Rune {
	case 'd', 'x': // Delete/Cut selected text
		return KeyConsumed, m.cut(editor, buffer, anchor, cursor.Position, false)

	case 'c': // Change selected text (delete + enter insert)
		return KeyConsumed, m.cut(editor, buffer, anchor, cursor.Position, true)

	case 'y': // Yank (Copy) selected text
		return KeyConsumed, m.yank(editor, buffer, anchor, cursor.Position)

	case 'p', 'P': // Replace the selection with the clipboard
		return KeyConsumed, m.put(editor, buffer, anchor, cursor.Position)

	case 'o': // Jump to the other end of the selection
		state := editor.GetState()
		state.VisualStart = cursor.Position
		editor.SetState(state)
		editor.SetCursor(Cursor{Position: anchor, Preferred: anchor.Col})
		return KeyConsumed, nil

	case 'v':
		m.toggle(editor, anchor, VisualCharacter)
		return KeyConsumed, nil

	case 'V':
		m.toggle(editor, anchor, VisualLine)
		return KeyConsumed, nil
	}

	// --- Visual Mode Movements (Update selection end) ---
	var moveErr error

	switch {
	case key.Rune == 'h' || key.Key == KeyLeft:
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
		cursor.MoveToLineEnd(buffer)
	case key.Rune == '^':
		cursor.MoveToFirstNonBlank(buffer)
	case key.Rune == 'g':
		cursor.MoveToBufferStart()
	case key.Rune == 'G':
		if countWasPending {
			cursor.MoveToLine(buffer, count-1)
		} else {
			cursor.MoveToBufferEnd(buffer)
		}
	default:
		return KeyConsumed, nil
	}

	if moveErr != nil && !isBoundaryError(moveErr) {
		return KeyConsumed, newError(ErrInvalidPositionId, moveErr)
	}

	editor.SetCursor(cursor)
	return KeyConsumed, nil
}

// toggle switches to the visual mode of kind, or back to Normal mode when
// that kind is already active. The anchor is kept across kinds.
func (m *visualMode) toggle(editor Editor, anchor Position, kind VisualKind) {
	if m.kind == kind {
		editor.SetNormalMode()
		return
	}

	if kind == VisualLine {
		editor.SetVisualLineMode()
	} else {
		editor.SetVisualMode()
	}

	state := editor.GetState()
	if state.VisualStart.Row != -1 {
		state.VisualStart = anchor
		editor.SetState(state)
	}
}

// yank copies the selection to the clipboard and returns to Normal mode
// with the caret on the start of the selection.
func (m *visualMode) yank(editor Editor, buffer Buffer, anchor, caret Position) *EditorError {
	sel := m.selection(buffer, anchor, caret)

	if err := editor.Copy(sel.text); err != nil {
		return newError(ErrFailedToYankId, err)
	}
	editor.DispatchSignal(YankSignal{content: sel.text, isVisualLine: m.kind == VisualLine})

	editor.SetCursor(Cursor{Position: sel.start, Preferred: sel.start.Col})
	editor.SetNormalMode()
	return nil
}

// cut deletes the selection into the clipboard. With change set the editor
// continues in Insert mode where the text was, and a line-wise change
// leaves one empty line behind.
func (m *visualMode) cut(editor Editor, buffer Buffer, anchor, caret Position, change bool) *EditorError {
	if buffer.IsReadOnly() {
		return newError(ErrBufferReadOnlyId, ErrBufferReadOnly)
	}

	sel := m.selection(buffer, anchor, caret)

	if err := editor.Copy(sel.text); err != nil {
		editor.Logger().Debug("selection not copied", "error", err)
	}

	if change {
		// Insert mode saves the undo point before the deletion
		editor.SetInsertMode()
		change = editor.IsInsertMode()
	}
	if change && sel.lineWise {
		sel = sel.keepEmptyLine(buffer)
	}

	if err := buffer.DeleteRunesAt(sel.from.Row, sel.from.Col, sel.length); err != nil {
		return bufferError(err)
	}

	cursor := Cursor{Position: sel.start}
	if sel.lineWise && !change {
		cursor.MoveToFirstNonBlank(buffer)
	}
	editor.SetCursor(cursor)
	editor.DispatchSignal(DeleteSignal{content: sel.text})

	if !change {
		editor.SaveHistory()
		editor.SetNormalMode()
	}
	return nil
}

// put replaces the selection with the clipboard content. The replaced text
// does not overwrite the clipboard.
func (m *visualMode) put(editor Editor, buffer Buffer, anchor, caret Position) *EditorError {
	if buffer.IsReadOnly() {
		return newError(ErrBufferReadOnlyId, ErrBufferReadOnly)
	}

	sel := m.selection(buffer, anchor, caret)
	if err := buffer.DeleteRunesAt(sel.from.Row, sel.from.Col, sel.length); err != nil {
		return bufferError(err)
	}
	editor.SetCursor(Cursor{Position: sel.start})
	editor.SetNormalMode()

	// Lines cut from the end of the buffer go below the line left above them
	before := !sel.lineWise || sel.start.Row == sel.firstRow
	content, err := editor.Paste(before)
	if err != nil || content == "" {
		editor.SaveHistory()
	}
	if err != nil {
		return newError(ErrFailedToPasteId, err)
	}
	return nil
}

// selection describes the text between anchor and caret.
type selection struct {
	text     string   // What a yank of the selection copies
	lineWise bool     // text holds whole lines, each ending in '\n'
	firstRow int      // First selected row
	lastRow  int      // Last selected row
	start    Position // Where the caret goes once the selection is gone
	from     Position // First rune to delete
	length   int      // Runes to delete from `from`, line breaks included
}

func (m *visualMode) selection(buffer Buffer, anchor, caret Position) selection {
	start, end := NormalizeSelection(anchor, caret)

	if m.kind != VisualLine {
		from := OffsetOf(buffer, start)
		to := min(OffsetOf(buffer, end)+1, contentLength(buffer))
		content := []rune(buffer.GetCurrentContent())
		return selection{
			text:     string(content[from:to]),
			firstRow: start.Row,
			lastRow:  end.Row,
			start:    start,
			from:     start,
			length:   to - from,
		}
	}

	lines := buffer.GetLines()[start.Row : end.Row+1]
	sel := selection{
		text:     strings.Join(lines, "\n") + "\n",
		lineWise: true,
		firstRow: start.Row,
		lastRow:  end.Row,
		start:    Position{Row: start.Row},
	}

	last := buffer.LineCount() - 1
	switch {
	case end.Row < last:
		// Take the lines and the break after the last of them
		sel.from = Position{Row: start.Row}
		sel.length = OffsetOf(buffer, Position{Row: end.Row + 1}) - OffsetOf(buffer, sel.from)
	case start.Row > 0:
		// The selection runs to the end: take the break before it instead
		sel.from = Position{Row: start.Row - 1, Col: buffer.LineRuneCount(start.Row - 1)}
		sel.length = contentLength(buffer) - OffsetOf(buffer, sel.from)
		sel.start.Row = start.Row - 1
	default:
		sel.from = Position{}
		sel.length = contentLength(buffer)
	}
	return sel
}

// keepEmptyLine narrows a line-wise deletion so one empty line remains where
// the selected lines were.
func (s selection) keepEmptyLine(buffer Buffer) selection {
	s.from = Position{Row: s.firstRow}
	s.start = s.from
	s.length = OffsetOf(buffer, Position{Row: s.lastRow, Col: buffer.LineRuneCount(s.lastRow)}) - OffsetOf(buffer, s.from)
	return s
}

// contentLength is the number of runes in the buffer, line breaks included.
func contentLength(buffer Buffer) int {
	last := buffer.LineCount() - 1
	return OffsetOf(buffer, Position{Row: last, Col: buffer.LineRuneCount(last)})
}
