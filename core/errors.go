package core

import (
	"errors"
)

var (
	ErrEndOfBuffer     = errors.New("end of buffer")
	ErrStartOfBuffer   = errors.New("start of buffer")
	ErrEndOfLine       = errors.New("end of line")
	ErrStartOfLine     = errors.New("start of line")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrInvalidCommand  = errors.New("invalid command")
	ErrBufferReadOnly  = errors.New("buffer is read-only")
	ErrNoChangesToSave = errors.New("no changes to save")
	ErrUnsavedChanges  = errors.New("unsaved changes (use q! to override)")
	ErrNoClipboard     = errors.New("clipboard handler not set")
)

type ErrorId int

const (
	ErrEndOfBufferId ErrorId = iota
	ErrStartOfBufferId
	ErrEndOfLineId
	ErrStartOfLineId
	ErrInvalidPositionId
	ErrInvalidModeId
	ErrInvalidCommandId
	ErrBufferReadOnlyId
	ErrNoChangesToSaveId
	ErrFailedToSaveId
	ErrFailedToYankId
	ErrFailedToPasteId
	ErrUndoFailedId
	ErrRedoFailedId
	ErrUnknownId
)

var sentinelIds = []struct {
	err error
	id  ErrorId
}{
	{ErrEndOfBuffer, ErrEndOfBufferId},
	{ErrStartOfBuffer, ErrStartOfBufferId},
	{ErrEndOfLine, ErrEndOfLineId},
	{ErrStartOfLine, ErrStartOfLineId},
	{ErrInvalidPosition, ErrInvalidPositionId},
	{ErrInvalidMode, ErrInvalidModeId},
	{ErrInvalidCommand, ErrInvalidCommandId},
	{ErrBufferReadOnly, ErrBufferReadOnlyId},
	{ErrNoChangesToSave, ErrNoChangesToSaveId},
	{ErrUnsavedChanges, ErrInvalidCommandId},
	{ErrNoClipboard, ErrFailedToPasteId},
}

// ErrorIdOf returns the id an *EditorError in err carries. Plain errors are
// matched against the package sentinels; anything else is ErrUnknownId.
func ErrorIdOf(err error) ErrorId {
	var editorErr *EditorError
	if errors.As(err, &editorErr) {
		return editorErr.ID()
	}
	for _, s := range sentinelIds {
		if errors.Is(err, s.err) {
			return s.id
		}
	}
	return ErrUnknownId
}

// EditorError is returned by mode handlers. It pairs the underlying error
// with an id the host can switch on.
type EditorError struct {
	id  ErrorId
	err error
}

func newError(id ErrorId, err error) *EditorError {
	return &EditorError{id: id, err: err}
}

// bufferError classifies an error returned by a Buffer mutation.
func bufferError(err error) *EditorError {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrBufferReadOnly) {
		return newError(ErrBufferReadOnlyId, err)
	}
	return newError(ErrInvalidPositionId, err)
}

func (e *EditorError) ID() ErrorId { return e.id }

func (e *EditorError) Error() string { return e.err.Error() }

func (e *EditorError) Unwrap() error { return e.err }

// isBoundaryError reports whether err only says a motion ran into the edge
// of a line or the buffer. Such motions stop where they are.
func isBoundaryError(err error) bool {
	return errors.Is(err, ErrEndOfBuffer) ||
		errors.Is(err, ErrStartOfBuffer) ||
		errors.Is(err, ErrEndOfLine) ||
		errors.Is(err, ErrStartOfLine)
}

// DispatchError sends an error that is not tied to a key press to the host.
func (e *editor) DispatchError(id ErrorId, err error) {
	e.DispatchSignal(ErrorSignal{id: id, err: err})
}
