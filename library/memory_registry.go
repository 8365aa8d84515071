package library

import (
	"fmt"

	"github.com/samber/lo"
)

// MemoryRegistry keeps books in an ordered slice. Lookups are linear scans,
// which is fine at catalog sizes typed in by hand.
type MemoryRegistry struct {
	books []*Book
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{}
}

func (r *MemoryRegistry) indexOf(id int64) int {
	_, idx, ok := lo.FindIndexOf(r.books, func(b *Book) bool { return b.ID == id })
	if !ok {
		return -1
	}
	return idx
}

// Insert appends a new Available book unless the id is already taken.
func (r *MemoryRegistry) Insert(id int64, title, author string) error {
	if r.indexOf(id) >= 0 {
		return fmt.Errorf("insert book %d: %w", id, ErrDuplicateKey)
	}
	r.books = append(r.books, &Book{ID: id, Title: title, Author: author, Status: StatusAvailable})
	return nil
}

func (r *MemoryRegistry) Delete(id int64) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete book %d: %w", id, ErrNotFound)
	}
	r.books = append(r.books[:idx], r.books[idx+1:]...)
	return nil
}

// Find returns the registered book itself; callers must not keep it past a Delete.
func (r *MemoryRegistry) Find(id int64) (*Book, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("find book %d: %w", id, ErrNotFound)
	}
	return r.books[idx], nil
}

func (r *MemoryRegistry) SetStatus(id int64, status Status) error {
	b, err := r.Find(id)
	if err != nil {
		return err
	}
	b.Status = status
	return nil
}

func (r *MemoryRegistry) All() ([]Book, error) {
	return lo.Map(r.books, func(b *Book, _ int) Book { return *b }), nil
}

func (r *MemoryRegistry) Close() error {
	r.books = nil
	return nil
}
