package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNormal_CountedInsert verifies "3ix<Esc>" writes x three times
func TestNormal_CountedInsert(t *testing.T) {
	e, _ := newTestEditor(t, "")

	require.NoError(t, e.ProcessString("3ix\x1b"))

	require.Equal(t, "xxx", e.GetBuffer().GetLine(0))
	require.Equal(t, 2, e.CaretOffset())
	require.Equal(t, NormalMode, e.Mode())
}

// TestNormal_CountedReplace verifies "2Rcat<Esc>" goes through the replace policy
func TestNormal_CountedReplace(t *testing.T) {
	e, _ := newTestEditor(t, "fish tree")

	require.NoError(t, e.ProcessString("2Rcat\x1b"))

	require.Equal(t, "catcatree", e.GetBuffer().GetLine(0))
	require.Equal(t, 5, e.CaretOffset())
}

// TestNormal_MultiDigitCount verifies counts accumulate digit by digit
func TestNormal_MultiDigitCount(t *testing.T) {
	e, _ := newTestEditor(t, "")

	require.NoError(t, e.ProcessString("12"))
	require.Equal(t, "12", e.GetState().CommandLine)

	require.NoError(t, e.ProcessString("i-\x1b"))
	require.Equal(t, "------------", e.GetBuffer().GetLine(0))
}

// TestNormal_InsertEntries verifies where each insert command puts the caret
func TestNormal_InsertEntries(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		keys  string
		want  []string
	}{
		{"i before caret", []string{"hello"}, "lliX\x1b", []string{"heXllo"}},
		{"a after caret", []string{"hello"}, "aX\x1b", []string{"hXello"}},
		{"a on empty line", []string{""}, "aX\x1b", []string{"X"}},
		{"A at line end", []string{"hello"}, "AX\x1b", []string{"helloX"}},
		{"I at first non-blank", []string{"  hello"}, "$IX\x1b", []string{"  Xhello"}},
		{"o opens below", []string{"one", "two"}, "onew\x1b", []string{"one", "new", "two"}},
		{"O opens above", []string{"one"}, "Onew\x1b", []string{"new", "one"}},
		{"counted A", []string{"ab"}, "3A.\x1b", []string{"ab..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.lines...)

			require.NoError(t, e.ProcessString(tt.keys))

			require.Equal(t, tt.want, e.GetBuffer().GetLines())
			require.Equal(t, NormalMode, e.Mode())
		})
	}
}

// TestNormal_OpenLineUndoesInOneStep verifies "o" and the typed text form one undo step
func TestNormal_OpenLineUndoesInOneStep(t *testing.T) {
	e, _ := newTestEditor(t, "one", "two")

	require.NoError(t, e.ProcessString("onew\x1bu"))

	require.Equal(t, []string{"one", "two"}, e.GetBuffer().GetLines())
}

// TestNormal_Motions verifies caret movement in Normal mode
func TestNormal_Motions(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want Position
	}{
		{"l", "l", Position{0, 1}},
		{"counted l", "3l", Position{0, 3}},
		{"l stops on last char", "20l", Position{0, 8}},
		{"h at line start", "h", Position{0, 0}},
		{"$", "$", Position{0, 8}},
		{"0 after $", "$0", Position{0, 0}},
		{"^", "j^", Position{1, 2}},
		{"j clamps column", "$j", Position{1, 4}},
		{"k restores column", "$jk", Position{0, 8}},
		{"G", "G", Position{2, 0}},
		{"counted G", "2G", Position{1, 2}},
		{"gg", "Ggg", Position{0, 0}},
		{"counted gg", "3gg", Position{2, 0}},
		{"j past end", "10j", Position{2, 0}},
		{"space moves right", "  ", Position{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, "first one", "  two", "3")

			require.NoError(t, e.ProcessString(tt.keys))

			require.Equal(t, tt.want, e.GetCursor().Position)
		})
	}
}

// TestNormal_ArrowKeys verifies arrows move like hjkl
func TestNormal_ArrowKeys(t *testing.T) {
	e, _ := newTestEditor(t, "abc", "def")

	require.NoError(t, e.Process(
		KeyEvent{Key: KeyRight},
		KeyEvent{Key: KeyDown},
		KeyEvent{Key: KeyRight},
		KeyEvent{Key: KeyLeft},
	))
	require.Equal(t, Position{Row: 1, Col: 1}, e.GetCursor().Position)

	require.NoError(t, e.Process(KeyEvent{Key: KeyEnd}, KeyEvent{Key: KeyUp}))
	require.Equal(t, Position{Row: 0, Col: 2}, e.GetCursor().Position)
}

// TestNormal_DeleteUnderCaret verifies x deletes forward and keeps the caret on a character
func TestNormal_DeleteUnderCaret(t *testing.T) {
	e, _ := newTestEditor(t, "hello")

	require.NoError(t, e.ProcessString("2x"))
	require.Equal(t, "llo", e.GetBuffer().GetLine(0))

	signals := drainSignals(e)
	require.Len(t, signals, 1)
	require.Equal(t, "he", signals[0].(DeleteSignal).Value())

	require.NoError(t, e.ProcessString("$x"))
	require.Equal(t, "ll", e.GetBuffer().GetLine(0))
	require.Equal(t, Position{Row: 0, Col: 1}, e.GetCursor().Position)

	require.NoError(t, e.ProcessString("9x"))
	require.Equal(t, "l", e.GetBuffer().GetLine(0))

	require.NoError(t, e.ProcessString("u"))
	require.Equal(t, "ll", e.GetBuffer().GetLine(0))
}

// TestNormal_DeleteBeforeCaret verifies X deletes backwards
func TestNormal_DeleteBeforeCaret(t *testing.T) {
	e, _ := newTestEditor(t, "hello")

	require.ErrorIs(t, e.ProcessString("X"), ErrStartOfLine)

	require.NoError(t, e.ProcessString("3l2X"))
	require.Equal(t, "hlo", e.GetBuffer().GetLine(0))
	require.Equal(t, Position{Row: 0, Col: 1}, e.GetCursor().Position)
}

// TestNormal_DeleteReadOnly verifies x reports the read-only buffer
func TestNormal_DeleteReadOnly(t *testing.T) {
	e, _ := newTestEditor(t, "hello")
	e.GetBuffer().SetReadOnly(true)

	err := e.ProcessString("x")

	require.ErrorIs(t, err, ErrBufferReadOnly)
	require.Equal(t, "hello", e.GetBuffer().GetLine(0))
}

// TestNormal_OpenLineReadOnly verifies o and O on a read-only buffer stay in
// Normal mode without touching the buffer or the history
func TestNormal_OpenLineReadOnly(t *testing.T) {
	for _, keys := range []string{"o", "O"} {
		t.Run(keys, func(t *testing.T) {
			e, _ := newTestEditor(t, "dog")
			e.GetBuffer().SetReadOnly(true)

			err := e.ProcessString(keys)

			require.ErrorIs(t, err, ErrBufferReadOnly)
			require.Equal(t, NormalMode, e.Mode())
			require.Equal(t, []string{"dog"}, e.GetBuffer().GetLines())

			e.GetBuffer().SetReadOnly(false)
			require.Error(t, e.Undo())
		})
	}
}

// TestNormal_Paste verifies p and P for character-wise and line-wise text
func TestNormal_Paste(t *testing.T) {
	tests := []struct {
		name      string
		clipboard string
		keys      string
		want      []string
		caret     Position
	}{
		{"p after caret", "XY", "p", []string{"hXYello", "world"}, Position{0, 2}},
		{"P before caret", "XY", "P", []string{"XYhello", "world"}, Position{0, 1}},
		{"p line below", "new line\n", "p", []string{"hello", "new line", "world"}, Position{1, 0}},
		{"P line above", "  new\n", "jP", []string{"hello", "  new", "world"}, Position{1, 2}},
		{"p at line end", "!", "$p", []string{"hello!", "world"}, Position{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clipboard := newTestEditor(t, "hello", "world")
			clipboard.text = tt.clipboard

			require.NoError(t, e.ProcessString(tt.keys))

			require.Equal(t, tt.want, e.GetBuffer().GetLines())
			require.Equal(t, tt.caret, e.GetCursor().Position)
		})
	}
}

// TestNormal_PasteErrors verifies paste failures carry their error ids
func TestNormal_PasteErrors(t *testing.T) {
	e := New(nil, WithBuffer(NewBufferFromLines("hello")))
	var editorErr *EditorError

	err := e.ProcessString("p")
	require.ErrorIs(t, err, ErrNoClipboard)
	require.ErrorAs(t, err, &editorErr)
	require.Equal(t, ErrFailedToPasteId, editorErr.ID())

	e, clipboard := newTestEditor(t, "hello")
	clipboard.text = "x"
	e.GetBuffer().SetReadOnly(true)

	err = e.ProcessString("p")
	require.ErrorIs(t, err, ErrBufferReadOnly)
	require.ErrorAs(t, err, &editorErr)
	require.Equal(t, ErrBufferReadOnlyId, editorErr.ID())
}

// TestNormal_UndoRedo verifies u, U and Ctrl-R walk the history
func TestNormal_UndoRedo(t *testing.T) {
	e, _ := newTestEditor(t, "a")

	require.NoError(t, e.ProcessString("Ab\x1bAc\x1b"))
	require.Equal(t, "abc", e.GetBuffer().GetLine(0))

	require.NoError(t, e.ProcessString("2u"))
	require.Equal(t, "a", e.GetBuffer().GetLine(0))

	require.NoError(t, e.ProcessString("U"))
	require.Equal(t, "ab", e.GetBuffer().GetLine(0))

	require.NoError(t, e.Process(CtrlKey('r')))
	require.Equal(t, "abc", e.GetBuffer().GetLine(0))

	var editorErr *EditorError
	err := e.Process(CtrlKey('r'))
	require.ErrorAs(t, err, &editorErr)
	require.Equal(t, ErrRedoFailedId, editorErr.ID())
}

// TestNormal_EscapeClearsCount verifies Escape drops a pending count
func TestNormal_EscapeClearsCount(t *testing.T) {
	e, _ := newTestEditor(t, "")

	require.NoError(t, e.ProcessString("5\x1bix\x1b"))

	require.Equal(t, "x", e.GetBuffer().GetLine(0))
	require.Empty(t, e.GetState().CommandLine)
}

// TestNormal_ModeEntries verifies the keys that leave Normal mode
func TestNormal_ModeEntries(t *testing.T) {
	tests := []struct {
		key  string
		want Mode
	}{
		{"i", InsertMode},
		{"R", ReplaceMode},
		{"v", VisualMode},
		{"V", VisualLineMode},
		{":", CommandMode},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e, _ := newTestEditor(t, "text")
			require.NoError(t, e.ProcessString(tt.key))
			require.Equal(t, tt.want, e.Mode())
		})
	}
}

// TestNormal_ChordsDoNotActAsPlainKeys verifies Ctrl and Alt chords do not
// trigger the binding of their letter
func TestNormal_ChordsDoNotActAsPlainKeys(t *testing.T) {
	e, _ := newTestEditor(t, "hello", "world")
	e.SetCursor(Cursor{Position: Position{Col: 2}})

	require.NoError(t, e.Process(CtrlKey('h'), CtrlKey('j'), CtrlKey('x'), KeyEvent{Rune: 'i', Modifiers: ModAlt}))

	require.Equal(t, NormalMode, e.Mode())
	require.Equal(t, Position{Row: 0, Col: 2}, e.GetCursor().Position)
	require.Equal(t, []string{"hello", "world"}, e.GetBuffer().GetLines())

	require.NoError(t, e.ProcessString("xu"))
	require.Equal(t, "hello", e.GetBuffer().GetLine(0))
	require.NoError(t, e.Process(CtrlKey('r')))
	require.Equal(t, "helo", e.GetBuffer().GetLine(0))
}
