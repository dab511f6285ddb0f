package core

import (
	"fmt"
	"slices"
	"strings"
)

// Buffer is the line-oriented text the engine edits. The host owns it;
// the editor only holds a reference.
type Buffer interface {
	// Content access
	GetLines() []string              // Get lines as strings (for saving/display)
	GetLine(lineNum int) string      // Get a single line as a string
	GetLineRunes(lineNum int) []rune // Get a copy of a line as runes
	LineRuneCount(lineNum int) int   // Get rune count for a line
	LineCount() int                  // Get number of lines
	GetSavedContent() string         // Get saved buffer content as a string
	GetCurrentContent() string       // Get entire buffer content as a string

	// Modification
	InsertRunesAt(row, col int, runes []rune) error // Insert runes (handles newlines)
	OverwriteRuneAt(row, col int, r rune) error     // Replace the rune at col, or append at line end
	SplitLine(row, col int) error                   // Break the line in two at col
	DeleteRunesAt(row, col int, count int) error    // Delete runes (line breaks count as one)

	SetReadOnly(readOnly bool)
	IsReadOnly() bool

	IsModified() bool          // Check if buffer has been modified
	SaveContent()              // Mark the current content as saved
	SetContent(content []byte) // Set content (from file or other source)
	SetLines(lines []string)   // Set content line by line, exactly as given
	IsEmpty() bool             // Check if buffer is empty
}

// textBuffer keeps one rune slice per line.
type textBuffer struct {
	lines        [][]rune
	savedContent string
	readOnly     bool
}

// NewBuffer creates a new empty buffer
func NewBuffer() Buffer {
	return &textBuffer{
		lines: [][]rune{{}},
	}
}

// NewBufferFromBytes creates a buffer holding content, marked as saved.
func NewBufferFromBytes(content []byte) Buffer {
	b := &textBuffer{}
	b.SetContent(content)
	b.SaveContent()
	return b
}

// NewBufferFromLines creates a buffer with one entry per line.
func NewBufferFromLines(lines ...string) Buffer {
	if len(lines) == 0 {
		return NewBuffer()
	}
	b := &textBuffer{lines: make([][]rune, len(lines))}
	for i, line := range lines {
		b.lines[i] = []rune(line)
	}
	b.SaveContent()
	return b
}

func (b *textBuffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// SetContent replaces the whole buffer. A single trailing newline terminates
// the last line and does not open a new one. The read-only flag does not
// apply: loading content is the host's business.
func (b *textBuffer) SetContent(content []byte) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, part := range parts {
		b.lines[i] = []rune(part)
	}
}

// SetLines replaces the whole buffer with one line per entry. Unlike
// SetContent nothing is trimmed, so an empty last line survives.
func (b *textBuffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = make([][]rune, len(lines))
	for i, line := range lines {
		b.lines[i] = []rune(line)
	}
}

func (b *textBuffer) GetLines() []string {
	lines := make([]string, len(b.lines))
	for i, r := range b.lines {
		lines[i] = string(r)
	}
	return lines
}

func (b *textBuffer) GetLine(lineNum int) string {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return ""
	}
	return string(b.lines[lineNum])
}

func (b *textBuffer) GetLineRunes(lineNum int) []rune {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return nil
	}
	return slices.Clone(b.lines[lineNum])
}

func (b *textBuffer) LineRuneCount(lineNum int) int {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return 0
	}
	return len(b.lines[lineNum])
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

func (b *textBuffer) IsModified() bool {
	return b.savedContent != b.GetCurrentContent()
}

func (b *textBuffer) SaveContent() {
	b.savedContent = b.GetCurrentContent()
}

// GetCurrentContent returns the entire buffer content as a string
func (b *textBuffer) GetCurrentContent() string {
	return strings.Join(b.GetLines(), "\n")
}

func (b *textBuffer) GetSavedContent() string {
	return b.savedContent
}

func (b *textBuffer) SetReadOnly(readOnly bool) {
	b.readOnly = readOnly
}

func (b *textBuffer) IsReadOnly() bool {
	return b.readOnly
}

func (b *textBuffer) checkPosition(op string, row, col int) error {
	if b.readOnly {
		return fmt.Errorf("%s: %w", op, ErrBufferReadOnly)
	}
	if row < 0 || row >= len(b.lines) {
		return fmt.Errorf("%s: %w: row %d out of bounds [0, %d)", op, ErrInvalidPosition, row, len(b.lines))
	}
	if col < 0 || col > len(b.lines[row]) {
		return fmt.Errorf("%s: %w: col %d out of bounds [0, %d]", op, ErrInvalidPosition, col, len(b.lines[row]))
	}
	return nil
}

// InsertRunesAt inserts runes at the specified position. A '\n' in runes
// starts a new line.
func (b *textBuffer) InsertRunesAt(row, col int, runes []rune) error {
	if err := b.checkPosition("InsertRunesAt", row, col); err != nil {
		return err
	}

	line := b.lines[row]
	tail := slices.Clone(line[col:])

	parts := strings.Split(string(runes), "\n")
	inserted := make([][]rune, len(parts))
	for i, part := range parts {
		inserted[i] = []rune(part)
	}

	first := make([]rune, 0, col+len(inserted[0]))
	first = append(first, line[:col]...)
	inserted[0] = append(first, inserted[0]...)
	last := len(inserted) - 1
	inserted[last] = append(inserted[last], tail...)

	b.lines = slices.Replace(b.lines, row, row+1, inserted...)
	return nil
}

// OverwriteRuneAt replaces the rune at col. At the end of the line the rune
// is appended instead, extending the line.
func (b *textBuffer) OverwriteRuneAt(row, col int, r rune) error {
	if err := b.checkPosition("OverwriteRuneAt", row, col); err != nil {
		return err
	}
	if r == '\n' {
		return fmt.Errorf("OverwriteRuneAt: %w: a line break cannot overwrite a character", ErrInvalidPosition)
	}

	line := b.lines[row]
	if col < len(line) {
		line = slices.Clone(line)
		line[col] = r
		b.lines[row] = line
		return nil
	}

	b.lines[row] = append(slices.Clone(line), r)
	return nil
}

// SplitLine moves everything from col onwards to a new line below row.
func (b *textBuffer) SplitLine(row, col int) error {
	if err := b.checkPosition("SplitLine", row, col); err != nil {
		return err
	}

	line := b.lines[row]
	head := slices.Clone(line[:col])
	tail := slices.Clone(line[col:])
	b.lines = slices.Replace(b.lines, row, row+1, head, tail)
	return nil
}

// DeleteRunesAt deletes count runes starting at the specified position.
// The break at the end of a line counts as one rune; deleting it joins the
// next line. Deletion stops at the end of the buffer.
func (b *textBuffer) DeleteRunesAt(row, col int, count int) error {
	if count <= 0 {
		return nil
	}
	if err := b.checkPosition("DeleteRunesAt", row, col); err != nil {
		return err
	}

	remaining := count
	for remaining > 0 {
		line := b.lines[row]
		if col < len(line) {
			n := min(remaining, len(line)-col)
			joined := make([]rune, 0, len(line)-n)
			joined = append(joined, line[:col]...)
			b.lines[row] = append(joined, line[col+n:]...)
			remaining -= n
			continue
		}

		if row+1 >= len(b.lines) {
			break
		}

		// consume the line break
		joined := make([]rune, 0, len(line)+len(b.lines[row+1]))
		joined = append(joined, line...)
		b.lines[row] = append(joined, b.lines[row+1]...)
		b.lines = slices.Delete(b.lines, row+1, row+2)
		remaining--
	}

	return nil
}
