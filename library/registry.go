package library

import "fmt"

// Store backends accepted by NewRegistry.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Registry owns the catalog of books. Implementations keep insertion order
// and reject duplicate ids.
type Registry interface {
	Insert(id int64, title, author string) error
	Delete(id int64) error
	Find(id int64) (*Book, error)
	SetStatus(id int64, status Status) error
	All() ([]Book, error)
	Close() error
}

// NewRegistry builds the registry for the named store backend.
func NewRegistry(store string) (Registry, error) {
	switch store {
	case "", StoreMemory:
		return NewMemoryRegistry(), nil
	case StoreSQLite:
		return NewDatabase()
	default:
		return nil, fmt.Errorf("unknown store %q", store)
	}
}
