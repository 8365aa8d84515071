package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionLogLIFO(t *testing.T) {
	l := NewTransactionLog()
	assert.True(t, l.IsEmpty())

	l.Push(1, ActionIssue)
	l.Push(2, ActionIssue)
	l.Push(1, ActionReturn)
	assert.Equal(t, 3, l.Len())

	got, err := l.Pop()
	require.NoError(t, err)
	assert.Equal(t, Transaction{BookID: 1, Action: ActionReturn}, got)

	got, err = l.Pop()
	require.NoError(t, err)
	assert.Equal(t, Transaction{BookID: 2, Action: ActionIssue}, got)

	got, err = l.Pop()
	require.NoError(t, err)
	assert.Equal(t, Transaction{BookID: 1, Action: ActionIssue}, got)

	_, err = l.Pop()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.True(t, l.IsEmpty())
}

func TestTransactionLogPeekAllIsNonDestructive(t *testing.T) {
	l := NewTransactionLog()
	assert.Empty(t, l.PeekAll())

	l.Push(1, ActionIssue)
	l.Push(2, ActionReturn)

	want := []Transaction{{BookID: 2, Action: ActionReturn}, {BookID: 1, Action: ActionIssue}}
	assert.Equal(t, want, l.PeekAll())

	// Mutating the returned slice must not reach the log.
	peeked := l.PeekAll()
	peeked[0].BookID = 99
	assert.Equal(t, want, l.PeekAll())
	assert.Equal(t, 2, l.Len())
}
