package core

import (
	"errors"
	"strings"
)

var (
	errOldestChange = errors.New("already at oldest change")
	errNewestChange = errors.New("already at newest change")
)

// SaveHistory records the buffer as an undo point. Saving an unchanged buffer
// only refreshes the cursor of the current point.
func (e *editor) SaveHistory() {
	if e.maxHistory == 0 {
		return
	}

	content := e.buffer.GetCurrentContent()

	// A new change discards everything that was undone.
	if e.historyPos < len(e.history)-1 {
		e.history = e.history[:e.historyPos+1]
		e.cursorHistory = e.cursorHistory[:e.historyPos+1]
	}

	if e.historyPos >= 0 && e.history[e.historyPos] == content {
		e.cursorHistory[e.historyPos] = e.cursor
		return
	}

	e.history = append(e.history, content)
	e.cursorHistory = append(e.cursorHistory, e.cursor)
	e.historyPos = len(e.history) - 1

	if limit := int(e.maxHistory); len(e.history) > limit {
		e.history = e.history[len(e.history)-limit:]
		e.cursorHistory = e.cursorHistory[len(e.cursorHistory)-limit:]
		e.historyPos = len(e.history) - 1
	}
}

func (e *editor) Undo() error {
	if e.buffer.IsReadOnly() {
		return ErrBufferReadOnly
	}
	if e.historyPos <= 0 {
		return errOldestChange
	}

	e.historyPos--
	e.restoreHistory()
	return nil
}

func (e *editor) Redo() error {
	if e.buffer.IsReadOnly() {
		return ErrBufferReadOnly
	}
	if e.historyPos >= len(e.history)-1 {
		return errNewestChange
	}

	e.historyPos++
	e.restoreHistory()
	return nil
}

func (e *editor) restoreHistory() {
	// Snapshots are lines joined by "\n", so splitting gives them back as-is.
	e.buffer.SetLines(strings.Split(e.history[e.historyPos], "\n"))
	e.SetCursor(e.cursorHistory[e.historyPos])
	e.ScrollViewport()
	e.logger.Debug("history restored", "position", e.historyPos, "entries", len(e.history))
}
