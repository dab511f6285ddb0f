package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInsert_GrowsLineAndAdvancesCaret checks typed text shifts the rest of the line
func TestInsert_GrowsLineAndAdvancesCaret(t *testing.T) {
	tests := []struct {
		name  string
		col   int
		typed string
		want  string
	}{
		{"at start", 0, "ab", "abhello"},
		{"in the middle", 2, "XYZ", "heXYZllo"},
		{"at end", 5, "!", "hello!"},
		{"spaces and tabs", 1, " \t", "h \tello"},
		{"unicode", 3, "ŝü", "helŝülo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, "hello")
			e.SetCursor(Cursor{Position: Position{Col: tt.col}})
			require.NoError(t, e.SwitchMode(InsertMode, ArgumentNone))

			require.NoError(t, e.ProcessString(tt.typed))

			typed := len([]rune(tt.typed))
			require.Equal(t, tt.want, e.GetBuffer().GetLine(0))
			require.Equal(t, 5+typed, e.GetBuffer().LineRuneCount(0))
			require.Equal(t, tt.col+typed, e.CaretOffset())
			require.Equal(t, tt.typed, activeSession(t, e).String())
		})
	}
}

// TestInsert_CountRepeatsText verifies the insertion ends up count times in the buffer
func TestInsert_CountRepeatsText(t *testing.T) {
	e, _ := newTestEditor(t, "hello")
	require.NoError(t, e.SwitchMode(InsertMode, InsertWithCount(3)))

	require.NoError(t, e.ProcessString("ab\x1b"))

	require.Equal(t, "abababhello", e.GetBuffer().GetLine(0))
	require.Equal(t, 5, e.CaretOffset())
	require.Equal(t, NormalMode, e.Mode())
}

// TestInsert_CountReplaysNewlines verifies line breaks are part of the repeated input
func TestInsert_CountReplaysNewlines(t *testing.T) {
	e, _ := newTestEditor(t, "xy")
	e.SetCursor(Cursor{Position: Position{Col: 1}})
	require.NoError(t, e.SwitchMode(InsertMode, InsertWithCount(2)))

	require.NoError(t, e.ProcessString("a\n"))
	require.Equal(t, []string{"xa", "y"}, e.GetBuffer().GetLines())

	require.NoError(t, e.Process(EscapeKey))

	require.Equal(t, []string{"xa", "a", "y"}, e.GetBuffer().GetLines())
	require.Equal(t, Position{Row: 2, Col: 0}, e.GetCursor().Position)
}

// TestInsert_EnterSplitsLine verifies Enter breaks the line at the caret
func TestInsert_EnterSplitsLine(t *testing.T) {
	e, _ := newTestEditor(t, "helloworld")
	e.SetCursor(Cursor{Position: Position{Col: 5}})
	require.NoError(t, e.SwitchMode(InsertMode, ArgumentNone))

	require.NoError(t, e.Process(KeyEvent{Key: KeyEnter}))

	require.Equal(t, []string{"hello", "world"}, e.GetBuffer().GetLines())
	require.Equal(t, Position{Row: 1, Col: 0}, e.GetCursor().Position)
	require.Equal(t, 6, e.CaretOffset())
}

// TestInsert_BackspaceForgetsLastRune verifies deleted text is not repeated
func TestInsert_BackspaceForgetsLastRune(t *testing.T) {
	e, _ := newTestEditor(t, "")
	require.NoError(t, e.SwitchMode(InsertMode, InsertWithCount(2)))

	require.NoError(t, e.ProcessString("abx"))
	require.NoError(t, e.Process(KeyEvent{Key: KeyBackspace}))
	require.Equal(t, "ab", activeSession(t, e).String())

	require.NoError(t, e.Process(EscapeKey))
	require.Equal(t, "abab", e.GetBuffer().GetLine(0))
}

// TestInsert_BackspaceJoinsLines verifies backspace at column 0 joins with the line above
func TestInsert_BackspaceJoinsLines(t *testing.T) {
	e, _ := newTestEditor(t, "ab", "cd")
	e.SetCursor(Cursor{Position: Position{Row: 1}})
	require.NoError(t, e.SwitchMode(InsertMode, ArgumentNone))

	require.NoError(t, e.Process(KeyEvent{Key: KeyBackspace}))

	require.Equal(t, []string{"abcd"}, e.GetBuffer().GetLines())
	require.Equal(t, Position{Row: 0, Col: 2}, e.GetCursor().Position)

	e.SetCursor(Cursor{})
	err := e.Process(KeyEvent{Key: KeyBackspace})
	require.ErrorIs(t, err, ErrStartOfBuffer)
}

// TestInsert_ArrowRestartsSession verifies only text typed after a caret move is repeated
func TestInsert_ArrowRestartsSession(t *testing.T) {
	e, _ := newTestEditor(t, "")
	require.NoError(t, e.SwitchMode(InsertMode, InsertWithCount(2)))

	require.NoError(t, e.ProcessString("ab"))
	require.NoError(t, e.Process(KeyEvent{Key: KeyLeft}))
	require.NoError(t, e.ProcessString("c\x1b"))

	require.Equal(t, "accb", e.GetBuffer().GetLine(0))
	require.Equal(t, 2, e.CaretOffset())
}

// TestInsert_IgnoresControlKeys verifies keys that produce no text change nothing
func TestInsert_IgnoresControlKeys(t *testing.T) {
	e, _ := newTestEditor(t, "abc")
	require.NoError(t, e.SwitchMode(InsertMode, ArgumentNone))

	require.NoError(t, e.Process(CtrlKey('w'), KeyEvent{Key: KeyPageDown}, KeyEvent{Rune: 'q', Modifiers: ModAlt}))

	require.Equal(t, "abc", e.GetBuffer().GetLine(0))
	require.True(t, activeSession(t, e).IsEmpty())
}

// TestInsert_ReadOnlyLeavesStateUntouched verifies a rejected key keeps caret and session
func TestInsert_ReadOnlyLeavesStateUntouched(t *testing.T) {
	e, _ := newTestEditor(t, "dog")
	require.NoError(t, e.SwitchMode(InsertMode, InsertWithCount(2)))
	require.NoError(t, e.ProcessString("a"))

	e.GetBuffer().SetReadOnly(true)
	err := e.Process(RuneKey('b'), KeyEvent{Key: KeyEnter}, KeyEvent{Key: KeyBackspace})

	require.ErrorIs(t, err, ErrBufferReadOnly)
	require.Equal(t, []string{"adog"}, e.GetBuffer().GetLines())
	require.Equal(t, 1, e.CaretOffset())
	require.Equal(t, "a", activeSession(t, e).String())
}

// TestInsert_StatusShowsMode verifies the status line while inserting
func TestInsert_StatusShowsMode(t *testing.T) {
	e, _ := newTestEditor(t, "")

	require.NoError(t, e.SwitchMode(InsertMode, ArgumentNone))
	require.Equal(t, "-- INSERT --", e.GetState().StatusLine)

	require.NoError(t, e.SwitchMode(InsertMode, InsertWithCount(4)))
	require.Equal(t, "-- INSERT -- (4x)", e.GetState().StatusLine)
	require.Equal(t, 4, e.GetState().InsertCount)
}
