package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colours buffer lines with a chroma lexer and style.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	mu         sync.RWMutex
	source     string                // content the cache was built from
	lines      map[int][]chroma.Token // tokens per line
	styleCache map[chroma.TokenType]lipgloss.Style
}

// Span is a run of text on one line, StartCol and EndCol in runes.
type Span struct {
	Token    chroma.Token
	StartCol int
	EndCol   int
}

// New creates a highlighter for language using the named chroma style.
// Unknown languages fall back to plain text and unknown styles to chroma's
// fallback style.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		lines:      make(map[int][]chroma.Token),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Language returns the lexer name.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Tokenize lexes the whole content so that multi-line constructs (block
// comments, fenced code) colour correctly. It is a no-op when the content has
// not changed since the last call.
func (h *Highlighter) Tokenize(lines []string) {
	content := strings.Join(lines, "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	if content == h.source && len(h.lines) > 0 {
		return
	}

	h.source = content
	h.lines = make(map[int][]chroma.Token, len(lines))

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		for i := range lines {
			h.lines[i] = []chroma.Token{}
		}
		return
	}

	row := 0
	h.lines[row] = []chroma.Token{}
	for _, token := range iterator.Tokens() {
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			if before != "" {
				h.lines[row] = append(h.lines[row], chroma.Token{Type: token.Type, Value: before})
			}
			if !found {
				break
			}
			row++
			h.lines[row] = []chroma.Token{}
			value = after
		}
	}
}

// Spans returns the tokens of row with their column ranges.
func (h *Highlighter) Spans(row int) []Span {
	h.mu.RLock()
	tokens := h.lines[row]
	h.mu.RUnlock()

	spans := make([]Span, 0, len(tokens))
	col := 0
	for _, token := range tokens {
		n := len([]rune(token.Value))
		spans = append(spans, Span{Token: token, StartCol: col, EndCol: col + n})
		col += n
	}
	return spans
}

// LineStyles returns one style per rune of row. lines must be the buffer the
// highlighter colours; it is re-lexed when it changed.
func (h *Highlighter) LineStyles(lines []string, row int) []lipgloss.Style {
	h.Tokenize(lines)

	if row < 0 || row >= len(lines) {
		return nil
	}

	out := make([]lipgloss.Style, len([]rune(lines[row])))
	for _, span := range h.Spans(row) {
		style := h.StyleFor(span.Token.Type)
		for col := span.StartCol; col < span.EndCol && col < len(out); col++ {
			out[col] = style
		}
	}
	return out
}

// StyleFor converts a chroma token type to a lipgloss style.
func (h *Highlighter) StyleFor(tokenType chroma.TokenType) lipgloss.Style {
	h.mu.RLock()
	style, ok := h.styleCache[tokenType]
	h.mu.RUnlock()
	if ok {
		return style
	}

	entry := h.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.mu.Lock()
	h.styleCache[tokenType] = style
	h.mu.Unlock()

	return style
}
