package core

import "unicode"

// Position represents a specific location in the text buffer
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (character position in the line)
}

// Cursor is the caret. It translates between (row, col) and the absolute
// offset into the buffer, where every line break counts as one character.
type Cursor struct {
	Position  Position // Current position (row, column)
	Preferred int      // Preferred column for vertical movement (sticky column)
}

// OffsetOf returns the absolute offset of pos in buffer.
func OffsetOf(buffer Buffer, pos Position) int {
	offset := 0
	for row := 0; row < pos.Row && row < buffer.LineCount(); row++ {
		offset += buffer.LineRuneCount(row) + 1
	}
	return offset + pos.Col
}

// PositionAt resolves an absolute offset to a position. Offsets outside the
// buffer are clamped to its start or end.
func PositionAt(buffer Buffer, offset int) Position {
	if offset < 0 {
		return Position{}
	}
	last := buffer.LineCount() - 1
	for row := 0; row < last; row++ {
		lineLen := buffer.LineRuneCount(row)
		if offset <= lineLen {
			return Position{Row: row, Col: offset}
		}
		offset -= lineLen + 1
	}
	return Position{Row: max(last, 0), Col: min(offset, buffer.LineRuneCount(last))}
}

// Offset returns the caret's absolute buffer offset.
func (c *Cursor) Offset(buffer Buffer) int {
	return OffsetOf(buffer, c.Position)
}

// SetOffset moves the caret to an absolute offset.
func (c *Cursor) SetOffset(buffer Buffer, offset int) {
	c.Position = PositionAt(buffer, offset)
	c.Preferred = c.Position.Col
}

// Advance moves the caret forward by count characters, crossing line breaks.
// It stops at the end of the buffer.
func (c *Cursor) Advance(buffer Buffer, count int) {
	c.SetOffset(buffer, c.Offset(buffer)+count)
}

// clampCol keeps the column inside the line. The column may sit one past the
// last character so text can be appended.
func (c *Cursor) clampCol(buffer Buffer) {
	lineLen := buffer.LineRuneCount(c.Position.Row)
	c.Position.Col = max(0, min(c.Position.Col, lineLen))
}

// MoveLeft moves the cursor left by count characters within the line.
func (c *Cursor) MoveLeft(buffer Buffer, count int) error {
	for range count {
		if c.Position.Col <= 0 {
			c.Preferred = 0
			return ErrStartOfLine
		}
		c.Position.Col--
	}
	c.clampCol(buffer)
	c.Preferred = c.Position.Col
	return nil
}

// MoveRight moves the cursor right by count characters, stopping on the last
// character of the line.
func (c *Cursor) MoveRight(buffer Buffer, count int) error {
	lastCol := max(buffer.LineRuneCount(c.Position.Row)-1, 0)
	for range count {
		if c.Position.Col >= lastCol {
			c.Preferred = c.Position.Col
			return ErrEndOfLine
		}
		c.Position.Col++
	}
	c.Preferred = c.Position.Col
	return nil
}

// MoveUp moves the cursor up by count lines
func (c *Cursor) MoveUp(buffer Buffer, count int) error {
	return c.moveVertical(buffer, -count)
}

// MoveDown moves the cursor down by count lines
func (c *Cursor) MoveDown(buffer Buffer, count int) error {
	return c.moveVertical(buffer, count)
}

func (c *Cursor) moveVertical(buffer Buffer, delta int) error {
	target := c.Position.Row + delta
	var err error
	switch {
	case target < 0:
		target, err = 0, ErrStartOfBuffer
	case target > buffer.LineCount()-1:
		target, err = buffer.LineCount()-1, ErrEndOfBuffer
	}

	c.Position.Row = target
	lastCol := max(buffer.LineRuneCount(target)-1, 0)
	c.Position.Col = min(c.Preferred, lastCol)
	return err
}

// MoveToLineStart moves the cursor to the start of the current line (col 0)
func (c *Cursor) MoveToLineStart() {
	c.Position.Col = 0
	c.Preferred = 0
}

// MoveToLineEnd moves the cursor to the *last character* of the current line
func (c *Cursor) MoveToLineEnd(buffer Buffer) {
	c.Position.Col = max(buffer.LineRuneCount(c.Position.Row)-1, 0)
	c.Preferred = c.Position.Col
}

// MoveToAfterLineEnd moves the cursor *after* the last character of the current line
func (c *Cursor) MoveToAfterLineEnd(buffer Buffer) {
	c.Position.Col = buffer.LineRuneCount(c.Position.Row)
	c.Preferred = c.Position.Col
}

// MoveToFirstNonBlank moves the cursor to the first non-whitespace character
func (c *Cursor) MoveToFirstNonBlank(buffer Buffer) {
	line := buffer.GetLineRunes(c.Position.Row)
	c.Position.Col = 0
	for i, r := range line {
		if !unicode.IsSpace(r) {
			c.Position.Col = i
			break
		}
	}
	c.Preferred = c.Position.Col
}

// MoveToBufferStart moves the cursor to the start of the buffer
func (c *Cursor) MoveToBufferStart() {
	c.Position = Position{}
	c.Preferred = 0
}

// MoveToBufferEnd moves the cursor to the first non-blank of the last line
func (c *Cursor) MoveToBufferEnd(buffer Buffer) {
	c.Position.Row = max(buffer.LineCount()-1, 0)
	c.MoveToFirstNonBlank(buffer)
}

// MoveToLine moves to the first non-blank of row, clamped to the buffer.
func (c *Cursor) MoveToLine(buffer Buffer, row int) {
	c.Position.Row = max(0, min(row, buffer.LineCount()-1))
	c.MoveToFirstNonBlank(buffer)
}

// NormalizeSelection ensures start is before end, line by line, then column by column.
func NormalizeSelection(p1, p2 Position) (start, end Position) {
	if p1.Row < p2.Row || (p1.Row == p2.Row && p1.Col <= p2.Col) {
		return p1, p2
	}
	return p2, p1
}
