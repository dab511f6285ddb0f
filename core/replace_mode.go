package core

// replaceChange remembers how one typed rune was applied so Backspace can
// take it back.
type replaceChange struct {
	pos       Position
	original  rune
	overwrote bool // an original rune was replaced
	split     bool // the line was broken at pos
}

type replaceMode struct {
	count   int
	session *InsertionSession
	changes []replaceChange
}

// NewReplaceMode returns a Replace mode handler whose insertion is
// materialised count times in total.
func NewReplaceMode(count int) EditorMode {
	return &replaceMode{
		count:   max(count, 1),
		session: newInsertionSession(),
	}
}

func (m *replaceMode) Name() Mode { return ReplaceMode }

func (m *replaceMode) Session() *InsertionSession { return m.session }

func (m *replaceMode) Count() int { return m.count }

func (m *replaceMode) Enter(editor Editor, buffer Buffer) {
	editor.UpdateStatus(statusWithCount("-- REPLACE --", m.count))
	editor.UpdateCommand("")
	editor.SaveHistory()
}

func (m *replaceMode) Exit(editor Editor, buffer Buffer) {
	m.changes = nil
}

func (m *replaceMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) (Outcome, *EditorError) {
	switch key.Key {
	case KeyEscape:
		return SessionComplete, nil

	case KeyBackspace:
		return KeyConsumed, m.backspace(editor, buffer)

	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd:
		moveInSession(editor, buffer, key)
		m.session.Reset()
		m.changes = nil
		return KeyConsumed, nil
	}

	r, ok := key.Text()
	if !ok {
		return KeyConsumed, nil
	}

	if err := m.apply(editor, buffer, r); err != nil {
		return KeyConsumed, err
	}
	m.session.Record(r)

	return KeyConsumed, nil
}

// apply overwrites the rune under the caret, or extends the line when the
// caret is at its end. The choice is made afresh for every rune, so a run
// that crosses the end of the line switches from overwriting to appending.
// A '\n' always splits the line.
func (m *replaceMode) apply(editor Editor, buffer Buffer, r rune) *EditorError {
	cursor := editor.GetCursor()
	pos := cursor.Position

	if r == '\n' {
		if err := buffer.SplitLine(pos.Row, pos.Col); err != nil {
			return bufferError(err)
		}
		m.changes = append(m.changes, replaceChange{pos: pos, split: true})
		cursor.Position = Position{Row: pos.Row + 1, Col: 0}
		cursor.Preferred = 0
		editor.SetCursor(cursor)
		return nil
	}

	change := replaceChange{pos: pos}
	if pos.Col < buffer.LineRuneCount(pos.Row) {
		change.original = buffer.GetLineRunes(pos.Row)[pos.Col]
		change.overwrote = true
	}

	if err := buffer.OverwriteRuneAt(pos.Row, pos.Col, r); err != nil {
		return bufferError(err)
	}
	m.changes = append(m.changes, change)

	cursor.Advance(buffer, 1)
	editor.SetCursor(cursor)
	return nil
}

// backspace takes back the most recent change of this session: an
// overwritten rune is restored, an appended one removed, a split line
// joined again. Without changes to take back it only moves left.
func (m *replaceMode) backspace(editor Editor, buffer Buffer) *EditorError {
	cursor := editor.GetCursor()

	if len(m.changes) == 0 {
		_ = cursor.MoveLeft(buffer, 1)
		editor.SetCursor(cursor)
		return nil
	}

	change := m.changes[len(m.changes)-1]
	pos := change.pos

	var err error
	switch {
	case change.overwrote:
		err = buffer.OverwriteRuneAt(pos.Row, pos.Col, change.original)
	default:
		// an appended rune or the line break of a split
		err = buffer.DeleteRunesAt(pos.Row, pos.Col, 1)
	}
	if err != nil {
		return bufferError(err)
	}

	m.changes = m.changes[:len(m.changes)-1]
	m.session.Unrecord()

	cursor.Position = pos
	cursor.Preferred = pos.Col
	editor.SetCursor(cursor)
	return nil
}
