package adapter_bubbletea

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/modal/core"
)

// lineNumberWidth computes the width of the gutter, including the space
// after the numbers.
func (m *Model) lineNumberWidth() int {
	if !m.showLineNumbers {
		return 0
	}

	state := m.editor.GetState()
	maxWidth := len(strconv.Itoa(max(1, m.editor.GetBuffer().LineCount())))

	if state.RelativeNumbers && !m.disableVimMode {
		relWidth := len(strconv.Itoa(max(1, m.viewport.Height)))
		maxWidth = max(maxWidth, relWidth)
	}

	lineNumWidth := max(4, maxWidth) + 1
	return min(lineNumWidth, 10)
}

func (m *Model) textWidth() int {
	return max(1, m.viewport.Width-m.lineNumberWidth())
}

// syncViewportState tells the engine how much of the buffer is visible.
func (m *Model) syncViewportState() {
	state := m.editor.GetState()
	state.ViewportWidth = m.textWidth()
	state.ViewportHeight = m.viewport.Height
	m.editor.SetState(state)
	m.editor.ScrollViewport()
}

// scrollBy moves the viewport by delta lines and drags the cursor along when
// it would leave the screen.
func (m *Model) scrollBy(delta int) {
	state := m.editor.GetState()
	lastTop := max(0, m.editor.GetBuffer().LineCount()-m.viewport.Height)
	state.TopLine = max(0, min(state.TopLine+delta, lastTop))
	m.editor.SetState(state)

	cursor := m.editor.GetCursor()
	row := max(state.TopLine, min(cursor.Position.Row, state.TopLine+m.viewport.Height-1))
	if row != cursor.Position.Row {
		cursor.Position.Row = row
		cursor.Position.Col = cursor.Preferred
		m.editor.SetCursor(cursor)
	}
}

// scrollHorizontally keeps the cursor column inside the text area.
func (m *Model) scrollHorizontally(col, width int) {
	if col < m.leftCol {
		m.leftCol = col
	} else if col >= m.leftCol+width {
		m.leftCol = col - width + 1
	}
	m.leftCol = max(0, m.leftCol)
}

func (m *Model) cursorStyle() lipgloss.Style {
	switch m.editor.Mode() {
	case core.InsertMode:
		return m.theme.InsertModeStyle
	case core.ReplaceMode:
		return m.theme.ReplaceModeStyle
	case core.VisualMode, core.VisualLineMode:
		return m.theme.VisualModeStyle
	case core.CommandMode:
		return m.theme.CommandModeStyle
	default:
		return m.theme.NormalModeStyle
	}
}

func (m *Model) showCursor() bool {
	return m.isFocused && m.cursorVisible && !m.editor.IsCommandMode()
}

// render draws the visible rows into the viewport.
func (m *Model) render() {
	state := m.editor.GetState()
	buffer := m.editor.GetBuffer()
	lines := buffer.GetLines()
	cursor := m.editor.GetCursor().Position

	gutter := m.lineNumberWidth()
	width := m.textWidth()
	m.scrollHorizontally(cursor.Col, width)

	var content strings.Builder
	for i := range m.viewport.Height {
		row := state.TopLine + i
		if i > 0 {
			content.WriteByte('\n')
		}

		if row >= len(lines) {
			if m.showTildeIndicator && gutter > 0 {
				content.WriteString(m.theme.LineNumberStyle.Width(gutter - 1).Render("~"))
			}
			continue
		}

		if gutter > 0 {
			content.WriteString(m.renderLineNumber(row, cursor.Row, gutter) + " ")
		}

		if row == 0 && buffer.IsEmpty() && m.placeholder != "" {
			content.WriteString(m.renderPlaceholder(width))
			continue
		}

		content.WriteString(m.renderLine(lines, row, cursor, width))
	}

	m.viewport.SetContent(content.String())
	m.viewport.YOffset = 0
}

func (m *Model) renderLineNumber(row, cursorRow, gutter int) string {
	style := m.theme.LineNumberStyle
	number := row + 1

	if row == cursorRow {
		style = m.theme.CurrentLineNumberStyle
	} else if m.editor.GetState().RelativeNumbers && !m.disableVimMode {
		number = max(row-cursorRow, cursorRow-row)
	}

	return style.Width(gutter - 1).Render(strconv.Itoa(number))
}

func (m *Model) renderPlaceholder(width int) string {
	runes := []rune(m.placeholder)
	if len(runes) > width {
		runes = runes[:width]
	}

	if len(runes) == 0 || !m.showCursor() {
		return m.theme.PlaceholderStyle.Render(string(runes))
	}

	return m.cursorStyle().Render(string(runes[0])) + m.theme.PlaceholderStyle.Render(string(runes[1:]))
}

func (m *Model) renderLine(lines []string, row int, cursor core.Position, width int) string {
	runes := []rune(lines[row])

	var syntax []lipgloss.Style
	if m.highlighter != nil {
		syntax = m.highlighter.LineStyles(lines, row)
	}
	words := m.highlightedWordStyles(runes)

	rowOffset := 0
	if m.yanked {
		rowOffset = core.OffsetOf(m.editor.GetBuffer(), core.Position{Row: row})
	}

	var b strings.Builder
	end := min(len(runes), m.leftCol+width)
	for col := m.leftCol; col < end; col++ {
		style := lipgloss.NewStyle()
		if col < len(syntax) {
			style = syntax[col]
		}
		if word, ok := words[col]; ok {
			style = word
		}

		if m.editor.GetSelectionStatus(core.Position{Row: row, Col: col}) != core.SelectionNone {
			style = style.Background(m.theme.SelectionStyle.GetBackground())
		}

		if m.yanked {
			offset := rowOffset + col
			if offset >= m.yankStart && offset < m.yankStart+m.yankLength {
				style = m.theme.HighlightYankStyle
			}
		}

		if row == cursor.Row && col == cursor.Col && m.showCursor() {
			style = m.cursorStyle()
		}

		char := runes[col]
		if char == '\t' {
			char = ' '
		}
		b.WriteString(style.Render(string(char)))
	}

	// The insert caret may sit after the last character.
	if row == cursor.Row && cursor.Col >= len(runes) && cursor.Col < m.leftCol+width && m.showCursor() {
		b.WriteString(m.cursorStyle().Render(" "))
	} else if len(runes) == 0 && m.editor.GetSelectionStatus(core.Position{Row: row}) == core.SelectionLine {
		b.WriteString(m.theme.SelectionStyle.Render(" "))
	}

	return b.String()
}

// highlightedWordStyles maps each column covered by a highlighted word to its
// style. Longer words win over shorter ones starting at the same column.
func (m *Model) highlightedWordStyles(runes []rune) map[int]lipgloss.Style {
	if len(m.highlightedWords) == 0 {
		return nil
	}

	line := string(runes)
	styles := make(map[int]lipgloss.Style)
	covered := make(map[int]int)

	for word, style := range m.highlightedWords {
		if word == "" {
			continue
		}
		length := utf8.RuneCountInString(word)

		for start := 0; ; {
			idx := strings.Index(line[start:], word)
			if idx < 0 {
				break
			}
			col := utf8.RuneCountInString(line[:start+idx])
			for i := col; i < col+length; i++ {
				if covered[i] < length {
					covered[i] = length
					styles[i] = style
				}
			}
			start += idx + len(word)
		}
	}

	return styles
}
