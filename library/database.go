package library

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Database is a Registry backed by a private in-memory SQLite database.
// Nothing is written to disk; the catalog is gone once Close is called.
type Database struct {
	db *sql.DB

	insertStmt    *sql.Stmt
	findStmt      *sql.Stmt
	setStatusStmt *sql.Stmt
}

// NewDatabase opens a fresh in-memory database, applies the schema and
// prepares common statements.
func NewDatabase() (*Database, error) {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	for _, stmt := range []*sql.Stmt{d.insertStmt, d.findStmt, d.setStatusStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// seq keeps insertion order independent of the caller-chosen id.
	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS books (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id INTEGER NOT NULL UNIQUE,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'Available' CHECK (status IN ('Available','Issued'))
        );`); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.insertStmt, err = d.db.Prepare(`INSERT INTO books(id,title,author) VALUES(?,?,?)`); err != nil {
		return err
	}
	if d.findStmt, err = d.db.Prepare(`SELECT id,title,author,status FROM books WHERE id=?`); err != nil {
		return err
	}
	if d.setStatusStmt, err = d.db.Prepare(`UPDATE books SET status=? WHERE id=?`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

// Insert checks for an existing id before appending; the UNIQUE constraint
// backs up the check.
func (d *Database) Insert(id int64, title, author string) error {
	var exists bool
	if err := d.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM books WHERE id=?)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("insert book %d: %w", id, err)
	}
	if exists {
		return fmt.Errorf("insert book %d: %w", id, ErrDuplicateKey)
	}

	if _, err := d.insertStmt.Exec(id, title, author); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("insert book %d: %w", id, ErrDuplicateKey)
		}
		return fmt.Errorf("insert book %d: %w", id, err)
	}
	return nil
}

func (d *Database) Delete(id int64) error {
	res, err := d.db.Exec(`DELETE FROM books WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("delete book %d: %w", id, ErrNotFound)
	}
	return nil
}

// Find returns a copy of the stored row; use SetStatus to change it.
func (d *Database) Find(id int64) (*Book, error) {
	var (
		b      Book
		status string
	)
	err := d.findStmt.QueryRow(id).Scan(&b.ID, &b.Title, &b.Author, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	if b.Status, err = ParseStatus(status); err != nil {
		return nil, err
	}
	return &b, nil
}

func (d *Database) SetStatus(id int64, status Status) error {
	res, err := d.setStatusStmt.Exec(status.String(), id)
	if err != nil {
		return fmt.Errorf("set status of book %d: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set status of book %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("set status of book %d: %w", id, ErrNotFound)
	}
	return nil
}

// All returns every book in insertion order.
func (d *Database) All() ([]Book, error) {
	rows, err := d.db.Query(`SELECT id,title,author,status FROM books ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var (
			b      Book
			status string
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &status); err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		if b.Status, err = ParseStatus(status); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
