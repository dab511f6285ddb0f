package core

import "errors"

type commandMode struct {
	commandBuffer []rune
}

func NewCommandMode() EditorMode  { return &commandMode{} }
func (m *commandMode) Name() Mode { return CommandMode }

func (m *commandMode) Enter(editor Editor, buffer Buffer) {
	editor.DispatchSignal(EnterCommandModeSignal{})
	m.commandBuffer = nil     // Clear buffer on entry
	editor.UpdateStatus("")   // Clear status
	editor.UpdateCommand(":") // Show prompt
}

func (m *commandMode) Exit(editor Editor, buffer Buffer) {
	editor.UpdateCommand("") // Clear command line on exit
}

func (m *commandMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) (Outcome, *EditorError) {
	switch key.Key {
	case KeyEscape:
		return SessionComplete, nil

	case KeyBackspace:
		if len(m.commandBuffer) == 0 {
			// Backspace on empty command line goes back to normal mode
			return SessionComplete, nil
		}
		m.commandBuffer = m.commandBuffer[:len(m.commandBuffer)-1]
		editor.UpdateCommand(":" + string(m.commandBuffer))
		return KeyConsumed, nil

	case KeyEnter:
		cmd := string(m.commandBuffer)
		// Exit command mode *before* executing
		editor.SetNormalMode()
		if err := editor.ExecuteCommand(cmd); err != nil {
			return KeyConsumed, commandError(err)
		}
		return KeyConsumed, nil
	}

	if r, ok := key.Text(); ok {
		m.commandBuffer = append(m.commandBuffer, r)
		editor.UpdateCommand(":" + string(m.commandBuffer))
	}
	// Ignore unknown special keys
	return KeyConsumed, nil
}

func commandError(err error) *EditorError {
	switch {
	case errors.Is(err, ErrNoChangesToSave):
		return newError(ErrNoChangesToSaveId, err)
	case errors.Is(err, ErrBufferReadOnly):
		return newError(ErrBufferReadOnlyId, err)
	}
	return newError(ErrInvalidCommandId, err)
}
