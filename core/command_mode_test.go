package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func messages(signals []Signal) []string {
	var out []string
	for _, s := range signals {
		if m, ok := s.(MessageSignal); ok {
			_, value := m.Value()
			out = append(out, value)
		}
	}
	return out
}

// TestCommand_EnterShowsPrompt verifies ':' opens the command line
func TestCommand_EnterShowsPrompt(t *testing.T) {
	e, _ := newTestEditor(t, "")

	require.NoError(t, e.ProcessString(":se"))

	require.Equal(t, CommandMode, e.Mode())
	require.Equal(t, ":se", e.GetState().CommandLine)
	require.IsType(t, EnterCommandModeSignal{}, drainSignals(e)[0])
}

// TestCommand_SetReadOnly verifies :set ro makes later edits fail
func TestCommand_SetReadOnly(t *testing.T) {
	e, _ := newTestEditor(t, "dog")

	require.NoError(t, e.ProcessString(":set ro\n"))
	require.True(t, e.GetBuffer().IsReadOnly())
	require.Equal(t, NormalMode, e.Mode())
	require.Contains(t, messages(drainSignals(e)), ReadOnlyEnabledMessage)

	err := e.ProcessString("2Rcat\x1b")
	require.ErrorIs(t, err, ErrBufferReadOnly)
	require.Equal(t, "dog", e.GetBuffer().GetLine(0))

	require.NoError(t, e.ProcessString(":set noro\n2Rcat\x1b"))
	require.False(t, e.GetBuffer().IsReadOnly())
	require.Equal(t, "catcat", e.GetBuffer().GetLine(0))
}

// TestCommand_RelativeNumbers verifies :set rnu toggles the state flag
func TestCommand_RelativeNumbers(t *testing.T) {
	e, _ := newTestEditor(t, "")

	require.NoError(t, e.ProcessString(":set rnu\n"))
	require.True(t, e.GetState().RelativeNumbers)

	require.NoError(t, e.ProcessString(":set nornu\n"))
	require.False(t, e.GetState().RelativeNumbers)
}

// TestCommand_Write verifies :w saves only a modified buffer
func TestCommand_Write(t *testing.T) {
	e, _ := newTestEditor(t, "dog")
	var editorErr *EditorError

	err := e.ProcessString(":w\n")
	require.ErrorIs(t, err, ErrNoChangesToSave)
	require.ErrorAs(t, err, &editorErr)
	require.Equal(t, ErrNoChangesToSaveId, editorErr.ID())

	require.NoError(t, e.ProcessString("x:w\n"))
	require.False(t, e.GetBuffer().IsModified())

	signals := drainSignals(e)
	var saved []string
	for _, s := range signals {
		if save, ok := s.(SaveSignal); ok {
			saved = append(saved, save.Value())
		}
	}
	require.Equal(t, []string{"og"}, saved)
	require.Contains(t, messages(signals), ChangesSavedMessage)
}

// TestCommand_Quit verifies :q refuses to drop changes unless forced
func TestCommand_Quit(t *testing.T) {
	e, _ := newTestEditor(t, "dog")

	require.NoError(t, e.ProcessString("x"))
	require.ErrorIs(t, e.ProcessString(":q\n"), ErrUnsavedChanges)
	require.False(t, e.GetState().Quit)

	require.NoError(t, e.ProcessString(":q!\n"))
	require.True(t, e.GetState().Quit)
}

// TestCommand_WriteQuit verifies :wq saves and quits
func TestCommand_WriteQuit(t *testing.T) {
	e, _ := newTestEditor(t, "dog")

	require.NoError(t, e.ProcessString("x:wq\n"))

	require.True(t, e.GetState().Quit)
	require.Equal(t, "og", e.GetBuffer().GetSavedContent())
}

// TestCommand_GoToLine verifies :<n> jumps to a line
func TestCommand_GoToLine(t *testing.T) {
	e, _ := newTestEditor(t, "a", "  b", "c")

	require.NoError(t, e.ProcessString(":2\n"))
	require.Equal(t, Position{Row: 1, Col: 2}, e.GetCursor().Position)

	require.NoError(t, e.ProcessString(":99\n"))
	require.Equal(t, 2, e.GetCursor().Position.Row)
}

// TestCommand_Invalid verifies unknown commands are reported
func TestCommand_Invalid(t *testing.T) {
	e, _ := newTestEditor(t, "")

	err := e.ProcessString(":frobnicate\n")

	require.ErrorIs(t, err, ErrInvalidCommand)
	var editorErr *EditorError
	require.ErrorAs(t, err, &editorErr)
	require.Equal(t, ErrInvalidCommandId, editorErr.ID())
	require.Equal(t, NormalMode, e.Mode())

	require.ErrorIs(t, e.ProcessString(":set bogus\n"), ErrInvalidCommand)
	require.ErrorIs(t, e.ProcessString(":set\n"), ErrInvalidCommand)
}

// TestCommand_Backspace verifies editing the command line and leaving it
func TestCommand_Backspace(t *testing.T) {
	e, _ := newTestEditor(t, "")
	backspace := KeyEvent{Key: KeyBackspace}

	require.NoError(t, e.ProcessString(":ab"))
	require.NoError(t, e.Process(backspace))
	require.Equal(t, ":a", e.GetState().CommandLine)

	require.NoError(t, e.Process(backspace, backspace))
	require.Equal(t, NormalMode, e.Mode())
	require.Empty(t, e.GetState().CommandLine)
}

// TestCommand_Escape verifies Escape abandons the command
func TestCommand_Escape(t *testing.T) {
	e, _ := newTestEditor(t, "")

	require.NoError(t, e.ProcessString(":q!\x1b"))

	require.Equal(t, NormalMode, e.Mode())
	require.False(t, e.GetState().Quit)
}
