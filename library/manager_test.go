package library

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, store string) *LibraryManager {
	t.Helper()
	mgr, err := NewLibraryManager(store, nil)
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func statusOf(t *testing.T, mgr *LibraryManager, id int64) Status {
	t.Helper()
	b, err := mgr.GetBook(id)
	require.NoError(t, err)
	return b.Status
}

func TestCirculationScenario(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			mgr := newManager(t, store)

			require.NoError(t, mgr.InsertBook(1, "Dune", "Herbert"))

			require.NoError(t, mgr.IssueBook(1))
			assert.Equal(t, StatusIssued, statusOf(t, mgr, 1))
			assert.Equal(t, []Transaction{{1, ActionIssue}}, mgr.Transactions())

			assert.ErrorIs(t, mgr.IssueBook(1), ErrAlreadyIssued)
			assert.Len(t, mgr.Transactions(), 1)

			require.NoError(t, mgr.ReturnBook(1))
			assert.Equal(t, StatusAvailable, statusOf(t, mgr, 1))
			assert.Equal(t, []Transaction{{1, ActionReturn}, {1, ActionIssue}}, mgr.Transactions())

			undone, err := mgr.Undo()
			require.NoError(t, err)
			assert.Equal(t, Transaction{1, ActionReturn}, undone)
			assert.Equal(t, StatusIssued, statusOf(t, mgr, 1))
			assert.Equal(t, []Transaction{{1, ActionIssue}}, mgr.Transactions())

			undone, err = mgr.Undo()
			require.NoError(t, err)
			assert.Equal(t, Transaction{1, ActionIssue}, undone)
			assert.Equal(t, StatusAvailable, statusOf(t, mgr, 1))
			assert.Empty(t, mgr.Transactions())

			_, err = mgr.Undo()
			assert.ErrorIs(t, err, ErrNothingToUndo)
		})
	}
}

func TestInsertBookValidation(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			mgr := newManager(t, store)

			assert.ErrorIs(t, mgr.InsertBook(0, "Zero", "Nobody"), ErrInvalidInput)
			assert.ErrorIs(t, mgr.InsertBook(-3, "Negative", "Nobody"), ErrInvalidInput)

			require.NoError(t, mgr.InsertBook(3, "  Emma ", " Austen  "))
			assert.ErrorIs(t, mgr.InsertBook(3, "Again", "Austen"), ErrDuplicateKey)

			books, err := mgr.ListBooks()
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, Book{ID: 3, Title: "Emma", Author: "Austen", Status: StatusAvailable}, books[0])
		})
	}
}

func TestIssueAndReturnRejections(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			mgr := newManager(t, store)
			require.NoError(t, mgr.InsertBook(1, "Dune", "Herbert"))

			assert.ErrorIs(t, mgr.IssueBook(2), ErrNotFound)
			assert.ErrorIs(t, mgr.ReturnBook(2), ErrNotFound)
			assert.ErrorIs(t, mgr.IssueBook(-1), ErrNotFound)

			assert.ErrorIs(t, mgr.ReturnBook(1), ErrAlreadyAvailable)
			assert.Equal(t, StatusAvailable, statusOf(t, mgr, 1))
			assert.Empty(t, mgr.Transactions())
		})
	}
}

func TestUndoOnEmptyLogMutatesNothing(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			mgr := newManager(t, store)
			require.NoError(t, mgr.InsertBook(1, "Dune", "Herbert"))
			before, err := mgr.ListBooks()
			require.NoError(t, err)

			_, err = mgr.Undo()
			assert.ErrorIs(t, err, ErrNothingToUndo)

			after, err := mgr.ListBooks()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestUndoAfterDeleteConsumesTransaction(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			mgr := newManager(t, store)
			require.NoError(t, mgr.InsertBook(1, "Dune", "Herbert"))
			require.NoError(t, mgr.InsertBook(2, "Emma", "Austen"))
			require.NoError(t, mgr.IssueBook(2))
			require.NoError(t, mgr.IssueBook(1))

			require.NoError(t, mgr.DeleteBook(1))
			_, err := mgr.GetBook(1)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Len(t, mgr.Transactions(), 2, "delete must not touch the log")

			undone, err := mgr.Undo()
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Equal(t, Transaction{1, ActionIssue}, undone)
			assert.Equal(t, []Transaction{{2, ActionIssue}}, mgr.Transactions())

			// The next undo reaches the surviving book.
			_, err = mgr.Undo()
			require.NoError(t, err)
			assert.Equal(t, StatusAvailable, statusOf(t, mgr, 2))
		})
	}
}

func TestDeleteBook(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			mgr := newManager(t, store)
			require.NoError(t, mgr.InsertBook(1, "Dune", "Herbert"))
			require.NoError(t, mgr.InsertBook(2, "Emma", "Austen"))

			require.NoError(t, mgr.DeleteBook(1))
			assert.ErrorIs(t, mgr.DeleteBook(1), ErrNotFound)

			books, err := mgr.ListBooks()
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, int64(2), books[0].ID)
		})
	}
}

func TestManagerLogsStateChanges(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info")
	require.NoError(t, err)

	mgr, err := NewLibraryManager(StoreMemory, logger)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	require.NoError(t, mgr.InsertBook(9, "Dune", "Herbert"))
	require.NoError(t, mgr.IssueBook(9))
	assert.Error(t, mgr.IssueBook(9))

	out := buf.String()
	assert.Contains(t, out, "book inserted")
	assert.Contains(t, out, "transaction recorded")
	assert.Contains(t, out, "book_id=9")
	assert.Contains(t, out, "action=issue")
	assert.Contains(t, out, "session=")
	assert.NotContains(t, out, "transaction rejected", "rejections log at debug")
}
