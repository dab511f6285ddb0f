package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ExecuteCommand executes a command string (typically entered in command mode)
func (e *editor) ExecuteCommand(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	parts := strings.Fields(cmd)
	command := parts[0]
	args := parts[1:]

	e.logger.Debug("executing command", "command", command, "args", args)

	switch command {
	case "q", "quit":
		if e.buffer.IsModified() {
			return ErrUnsavedChanges
		}
		e.Quit()
		return nil

	case "q!", "quit!":
		e.Quit()
		return nil

	case "w", "write":
		if !e.buffer.IsModified() {
			return ErrNoChangesToSave
		}
		e.Save()
		e.DispatchMessage(ChangesSavedMessage)
		return nil

	case "wq", "x":
		if e.buffer.IsModified() {
			e.Save()
		}
		e.Quit()
		return nil

	case "set", "se":
		if len(args) != 1 {
			return fmt.Errorf("%w: set expects one option", ErrInvalidCommand)
		}
		return e.setOption(args[0])
	}

	// ":10" jumps to line 10
	if lineNum, err := strconv.Atoi(command); err == nil && lineNum > 0 {
		cursor := e.cursor
		cursor.MoveToLine(e.buffer, lineNum-1)
		e.SetCursor(cursor)
		e.ScrollViewport()
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidCommand, command)
}

func (e *editor) setOption(option string) error {
	switch option {
	case "relativenumber", "rnu":
		e.ShowRelativeLineNumbers(true)
		e.DispatchMessage(RelativeNumbersEnabledMessage)
	case "norelativenumber", "nornu":
		e.ShowRelativeLineNumbers(false)
		e.DispatchMessage(RelativeNumbersDisabledMessage)
	case "readonly", "ro":
		e.buffer.SetReadOnly(true)
		e.DispatchMessage(ReadOnlyEnabledMessage)
	case "noreadonly", "noro":
		e.buffer.SetReadOnly(false)
		e.DispatchMessage(ReadOnlyDisabledMessage)
	default:
		return fmt.Errorf("%w: unknown option %q", ErrInvalidCommand, option)
	}
	return nil
}
