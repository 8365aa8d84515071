package library

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ImportReport summarises a seed import.
type ImportReport struct {
	Imported int
	Skipped  []error
}

// ImportBooksFromFile opens path (relative paths resolve from cwd) and imports it.
func (lm *LibraryManager) ImportBooksFromFile(path string) (ImportReport, error) {
	if strings.TrimSpace(path) == "" {
		return ImportReport{}, fmt.Errorf("file path cannot be empty")
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return ImportReport{}, err
	}
	defer f.Close()
	return lm.ImportBooks(f)
}

// ImportBooks inserts one book per `id,title,author` record. Lines starting
// with '#' are ignored. Bad rows are skipped and reported; only a malformed
// file aborts the import.
func (lm *LibraryManager) ImportBooks(r io.Reader) (ImportReport, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var report ImportReport
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read seed: %w", err)
		}

		line, _ := cr.FieldPos(0)
		id, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			report.Skipped = append(report.Skipped, fmt.Errorf("line %d: invalid book id %q: %w", line, rec[0], ErrInvalidInput))
			continue
		}
		if err := lm.InsertBook(id, rec[1], rec[2]); err != nil {
			report.Skipped = append(report.Skipped, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		report.Imported++
	}

	lm.logger.WithField("imported", report.Imported).WithField("skipped", len(report.Skipped)).Info("seed import complete")
	return report, nil
}
