package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertionSession(t *testing.T) {
	s := newInsertionSession()
	require.True(t, s.IsEmpty())

	for _, r := range "ab\nc" {
		s.Record(r)
	}
	require.Equal(t, 4, s.Len())
	require.Equal(t, "ab\nc", s.String())

	require.True(t, s.Unrecord())
	require.Equal(t, "ab\n", s.String())

	content := s.Content()
	content[0] = 'z'
	require.Equal(t, "ab\n", s.String())

	s.Reset()
	require.True(t, s.IsEmpty())
	require.False(t, s.Unrecord())
}

// TestInsertionSession_Finalize verifies a finalized session no longer changes
func TestInsertionSession_Finalize(t *testing.T) {
	s := newInsertionSession()
	s.Record('x')
	s.Finalize()

	s.Record('y')
	require.False(t, s.Unrecord())
	s.Reset()

	require.True(t, s.IsFinalized())
	require.Equal(t, "x", s.String())
}
