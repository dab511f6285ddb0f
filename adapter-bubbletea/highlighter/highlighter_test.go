package highlighter

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FallsBackToPlainText(t *testing.T) {
	h := New("no-such-language", "no-such-style")

	require.NotNil(t, h)
	assert.Equal(t, lexers.Fallback.Config().Name, h.Language())
	assert.Equal(t, "Go", New("go", "monokai").Language())
}

// TestTokenize_SplitsMultiLineTokens verifies a block comment is spread over
// the lines it covers
func TestTokenize_SplitsMultiLineTokens(t *testing.T) {
	h := New("go", "monokai")
	lines := []string{"/* one", "two */", "x := 1"}

	h.Tokenize(lines)

	for row, line := range lines {
		var text strings.Builder
		for _, span := range h.Spans(row) {
			text.WriteString(span.Token.Value)
		}
		assert.Equal(t, line, text.String(), "row %d", row)
	}

	spans := h.Spans(1)
	require.NotEmpty(t, spans)
	assert.Equal(t, chroma.CommentMultiline, spans[0].Token.Type)
	assert.Equal(t, 0, spans[0].StartCol)
}

func TestSpans_Columns(t *testing.T) {
	h := New("go", "monokai")
	h.Tokenize([]string{"héllo := 1"})

	spans := h.Spans(0)
	require.NotEmpty(t, spans)
	assert.Equal(t, 5, spans[0].EndCol)
	assert.Equal(t, 10, spans[len(spans)-1].EndCol)
	assert.Empty(t, h.Spans(4))
}

// TestLineStyles_OneStylePerRune verifies styles line up with runes and follow edits
func TestLineStyles_OneStylePerRune(t *testing.T) {
	h := New("go", "monokai")

	styles := h.LineStyles([]string{"package main"}, 0)
	assert.Len(t, styles, len("package main"))

	styles = h.LineStyles([]string{"func é()"}, 0)
	assert.Len(t, styles, 8)

	assert.Nil(t, h.LineStyles([]string{"x"}, 3))
}

func TestStyleFor_Cached(t *testing.T) {
	h := New("go", "monokai")

	first := h.StyleFor(chroma.Keyword)
	second := h.StyleFor(chroma.Keyword)

	assert.Equal(t, first.GetForeground(), second.GetForeground())
	assert.Len(t, h.styleCache, 1)
}
