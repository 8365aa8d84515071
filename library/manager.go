package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// LibraryManager coordinates the book registry and the transaction log,
// keeping CLI code simple.
type LibraryManager struct {
	books  Registry
	txlog  *TransactionLog
	logger *logrus.Entry
}

// NewLibraryManager builds a manager over a new registry of the given store
// backend. A nil logger discards log output.
func NewLibraryManager(store string, logger *logrus.Entry) (*LibraryManager, error) {
	reg, err := NewRegistry(store)
	if err != nil {
		return nil, err
	}
	return NewLibraryManagerWithRegistry(reg, logger), nil
}

// NewLibraryManagerWithRegistry builds a manager around an existing registry.
func NewLibraryManagerWithRegistry(reg Registry, logger *logrus.Entry) *LibraryManager {
	if logger == nil {
		logger = discardLogger()
	}
	return &LibraryManager{books: reg, txlog: NewTransactionLog(), logger: logger}
}

// Close releases the registry.
func (lm *LibraryManager) Close() error { return lm.books.Close() }

// ------------------ Catalog ------------------

func (lm *LibraryManager) InsertBook(id int64, title, author string) error {
	if id <= 0 {
		lm.logger.WithField("book_id", id).Debug("insert rejected: non-positive id")
		return fmt.Errorf("insert book %d: %w", id, ErrInvalidInput)
	}
	title, author = strings.TrimSpace(title), strings.TrimSpace(author)
	if err := lm.books.Insert(id, title, author); err != nil {
		lm.logger.WithError(err).WithField("book_id", id).Debug("insert rejected")
		return err
	}
	lm.logger.WithFields(logrus.Fields{"book_id": id, "title": title}).Info("book inserted")
	return nil
}

// DeleteBook removes the book. Transactions that reference it stay in the log.
func (lm *LibraryManager) DeleteBook(id int64) error {
	if err := lm.books.Delete(id); err != nil {
		lm.logger.WithError(err).WithField("book_id", id).Debug("delete rejected")
		return err
	}
	lm.logger.WithField("book_id", id).Info("book deleted")
	return nil
}

func (lm *LibraryManager) GetBook(id int64) (*Book, error) { return lm.books.Find(id) }
func (lm *LibraryManager) ListBooks() ([]Book, error)      { return lm.books.All() }

// ------------------ Circulation ------------------

// IssueBook marks an Available book as Issued and records the transaction.
func (lm *LibraryManager) IssueBook(id int64) error {
	return lm.transition(id, ActionIssue, StatusAvailable, StatusIssued, ErrAlreadyIssued)
}

// ReturnBook marks an Issued book as Available and records the transaction.
func (lm *LibraryManager) ReturnBook(id int64) error {
	return lm.transition(id, ActionReturn, StatusIssued, StatusAvailable, ErrAlreadyAvailable)
}

func (lm *LibraryManager) transition(id int64, action Action, from, to Status, conflict error) error {
	log := lm.logger.WithFields(logrus.Fields{"book_id": id, "action": action})

	book, err := lm.books.Find(id)
	if err != nil {
		log.WithError(err).Debug("transaction rejected")
		return err
	}
	if book.Status != from {
		log.Debug("transaction rejected: book already " + book.Status.String())
		return fmt.Errorf("%s book %d: %w", action, id, conflict)
	}
	if err := lm.books.SetStatus(id, to); err != nil {
		return err
	}
	lm.txlog.Push(id, action)
	log.Info("transaction recorded")
	return nil
}

// Undo pops the most recent transaction and reverses the status change it
// recorded. If the book has since been deleted the transaction is still
// consumed and ErrNotFound is returned.
func (lm *LibraryManager) Undo() (Transaction, error) {
	t, err := lm.txlog.Pop()
	if err != nil {
		lm.logger.Debug("undo rejected: log empty")
		return Transaction{}, err
	}
	log := lm.logger.WithFields(logrus.Fields{"book_id": t.BookID, "action": t.Action})

	restore := StatusIssued
	if t.Action == ActionIssue {
		restore = StatusAvailable
	}
	if err := lm.books.SetStatus(t.BookID, restore); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Info("undo dropped: book no longer registered")
		}
		return t, fmt.Errorf("undo %s: %w", t.Action, err)
	}
	log.Info("transaction undone")
	return t, nil
}

// Transactions returns the log, most recent first.
func (lm *LibraryManager) Transactions() []Transaction { return lm.txlog.PeekAll() }
