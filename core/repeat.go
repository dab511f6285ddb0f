package core

// completeSession finishes an Insert or Replace activation: the recorded
// input is applied count-1 more times through the mode's own mutation
// policy, the caret is parked on the last written character and the editor
// returns to Normal mode. The whole activation is one undo step.
//
// A replay that fails (read-only buffer) stops there; the transition to
// Normal mode still happens.
func (e *editor) completeSession(mode textEntryMode) *EditorError {
	session := mode.Session()
	session.Finalize()

	content := session.Content()
	count := mode.Count()

	var err *EditorError
	if count > 1 && len(content) > 0 {
		e.logger.Debug("repeating insertion", "mode", mode.Name(), "count", count, "text", string(content))

	replay:
		for range count - 1 {
			for _, r := range content {
				if err = mode.apply(e, e.buffer, r); err != nil {
					e.logger.Warn("insertion repeat aborted", "mode", mode.Name(), "error", err)
					break replay
				}
			}
		}
	}

	cursor := e.cursor
	if cursor.Position.Col > 0 {
		cursor.Position.Col--
	}
	cursor.Preferred = cursor.Position.Col
	e.SetCursor(cursor)

	e.SaveHistory()
	e.SetNormalMode()

	return err
}
