package core

import "slices"

// InsertionSession records what was typed while an Insert or Replace mode was
// active, in key-arrival order. A '\n' stands for a line break.
//
// The session holds input, not output: repeating it re-applies each rune
// against whatever text is in the buffer at that moment.
type InsertionSession struct {
	runes     []rune
	finalized bool
}

func newInsertionSession() *InsertionSession {
	return &InsertionSession{}
}

// Record appends r. It does nothing once the session is finalized.
func (s *InsertionSession) Record(r rune) {
	if s.finalized {
		return
	}
	s.runes = append(s.runes, r)
}

// Unrecord drops the most recent rune, reporting whether there was one.
func (s *InsertionSession) Unrecord() bool {
	if s.finalized || len(s.runes) == 0 {
		return false
	}
	s.runes = s.runes[:len(s.runes)-1]
	return true
}

// Reset forgets everything typed so far. Used when the caret is moved by
// hand in the middle of a session.
func (s *InsertionSession) Reset() {
	if s.finalized {
		return
	}
	s.runes = s.runes[:0]
}

// Finalize makes the session read-only.
func (s *InsertionSession) Finalize() {
	s.finalized = true
}

func (s *InsertionSession) IsFinalized() bool {
	return s.finalized
}

// Content returns a copy of the recorded runes.
func (s *InsertionSession) Content() []rune {
	return slices.Clone(s.runes)
}

func (s *InsertionSession) IsEmpty() bool {
	return len(s.runes) == 0
}

func (s *InsertionSession) Len() int {
	return len(s.runes)
}

func (s *InsertionSession) String() string {
	return string(s.runes)
}
