package core

import (
	"fmt"
	"strings"
)

// Copy writes text to the clipboard.
func (e *editor) Copy(text string) error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	if err := e.clipboard.Write(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Paste inserts the clipboard after the caret, or before it when before is
// set. Text ending in a newline was yanked line-wise and is pasted as whole
// lines below (or above) the current one.
func (e *editor) Paste(before bool) (string, error) {
	if e.clipboard == nil {
		return "", ErrNoClipboard
	}
	content, err := e.clipboard.Read()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	if content == "" {
		return "", nil
	}

	cursor := e.cursor
	row, col := cursor.Position.Row, cursor.Position.Col

	if lines, lineWise := strings.CutSuffix(content, "\n"); lineWise {
		if before {
			err = e.buffer.InsertRunesAt(row, 0, []rune(content))
			cursor.Position = Position{Row: row, Col: 0}
		} else {
			err = e.buffer.InsertRunesAt(row, e.buffer.LineRuneCount(row), []rune("\n"+lines))
			cursor.Position = Position{Row: row + 1, Col: 0}
		}
		if err != nil {
			return "", err
		}
		cursor.MoveToFirstNonBlank(e.buffer)
	} else {
		if !before && e.buffer.LineRuneCount(row) > 0 {
			col = min(col+1, e.buffer.LineRuneCount(row))
		}
		if err = e.buffer.InsertRunesAt(row, col, []rune(content)); err != nil {
			return "", err
		}
		cursor.Position = Position{Row: row, Col: col}
		cursor.Advance(e.buffer, len([]rune(content))-1)
	}

	e.SetCursor(cursor)
	e.SaveHistory()
	e.DispatchSignal(PasteSignal{content: content})

	return content, nil
}
