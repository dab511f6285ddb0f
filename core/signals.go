package core

import "fmt"

type Signal any

type YankSignal struct {
	content      string
	isVisualLine bool
}

func (y YankSignal) Value() (content string, isVisualLine bool) {
	return y.content, y.isVisualLine
}

type PasteSignal struct {
	content string
}

func (p PasteSignal) Value() string {
	return p.content
}

type DeleteSignal struct {
	content string
}

func (d DeleteSignal) Value() string {
	return d.content
}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	return m.id, m.value
}

type SaveSignal struct {
	content string
}

func (s SaveSignal) Value() string {
	return s.content
}

type QuitSignal struct{}

type ErrorSignal EditorError

func (e ErrorSignal) Value() (id ErrorId, err error) {
	return e.id, e.err
}

type EnterCommandModeSignal struct{}

// DispatchSignal hands a signal to the host without blocking. Signals are
// dropped when nobody drains the channel.
func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		e.logger.Warn("signal channel full, dropping signal", "signal", fmt.Sprintf("%T", signal))
	}
}
