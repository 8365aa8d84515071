package library

import "errors"

var (
	// ErrDuplicateKey is returned when inserting a book whose id is already registered.
	ErrDuplicateKey = errors.New("book id already exists")

	// ErrNotFound is returned when no book with the requested id is registered.
	ErrNotFound = errors.New("book not found")

	ErrAlreadyIssued    = errors.New("book already issued")
	ErrAlreadyAvailable = errors.New("book is already available")

	// ErrNothingToUndo is returned by Undo and TransactionLog.Pop on an empty log.
	ErrNothingToUndo = errors.New("no transactions to undo")

	// ErrInvalidInput is returned for a non-positive id on insert.
	ErrInvalidInput = errors.New("book id must be positive")
)
