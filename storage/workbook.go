package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"estate-crm/utils"
)

// Workbook is the excelize-backed Resource implementation. One workbook file
// is the deployment's whole store; each entity type lives in its own
// worksheet whose first row is the header. All access is serialized through
// one mutex: reads re-read the sheet on every call, writes save the file
// before returning.
type Workbook struct {
	mu    sync.Mutex
	path  string
	file  *excelize.File
	retry *utils.RetryConfig
}

// OpenWorkbook opens the workbook at path.
func OpenWorkbook(path string, retry *utils.RetryConfig) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open workbook %q: %v: %w", path, err, ErrConnectionUnavailable)
	}
	return &Workbook{path: path, file: f, retry: retry}, nil
}

// CreateWorkbook creates a new workbook at path with one worksheet per entry
// of sheets, each seeded with its header row. Intermediate directories are
// created automatically. Used by first-run provisioning and tests.
func CreateWorkbook(path string, sheets map[string][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("storage: create workbook dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for name, header := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("storage: create sheet %q: %w", name, err)
		}
		row := make([]any, len(header))
		for i, h := range header {
			row[i] = h
		}
		if err := f.SetSheetRow(name, "A1", &row); err != nil {
			return fmt.Errorf("storage: write header of %q: %w", name, err)
		}
	}
	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("storage: drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("storage: save workbook %q: %w", path, err)
	}
	return nil
}

// Table returns a handle to the named worksheet.
func (w *Workbook) Table(name string) (Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, err := w.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("storage: worksheet %q not found in %q: %w", name, w.path, ErrConnectionUnavailable)
	}
	return &worksheet{wb: w, name: name}, nil
}

// Close releases the underlying file. Pending writes are already on disk;
// every mutation saves before returning.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// save writes the workbook to disk, retrying transient failures (the file
// typically lives on a synced network drive).
func (w *Workbook) save() error {
	if w.retry != nil {
		return w.retry.Do("workbook save", func() error { return w.file.Save() })
	}
	return w.file.Save()
}

// worksheet implements Table over one sheet of the parent workbook.
type worksheet struct {
	wb   *Workbook
	name string
}

func (s *worksheet) Name() string { return s.name }

// Rows returns every data row as a header-name→value mapping. Cells past the
// end of a short row read as "".
func (s *worksheet) Rows() ([]map[string]string, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	rows, err := s.wb.file.GetRows(s.name)
	if err != nil {
		return nil, fmt.Errorf("storage: read rows of %q: %w", s.name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				m[col] = row[i]
			} else {
				m[col] = ""
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// AppendRow writes values as one new row after the last physical row and
// saves the workbook.
func (s *worksheet) AppendRow(values []any) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	rows, err := s.wb.file.GetRows(s.name)
	if err != nil {
		return fmt.Errorf("storage: locate end of %q: %w", s.name, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("storage: append to %q: %w", s.name, err)
	}
	if err := s.wb.file.SetSheetRow(s.name, cell, &values); err != nil {
		return fmt.Errorf("storage: append to %q: %w", s.name, err)
	}
	return s.wb.save()
}

// ColumnValues returns the full column at the 1-based position col, header
// cell included.
func (s *worksheet) ColumnValues(col int) ([]string, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	cols, err := s.wb.file.GetCols(s.name)
	if err != nil {
		return nil, fmt.Errorf("storage: read column %d of %q: %w", col, s.name, err)
	}
	if col < 1 || col > len(cols) {
		return nil, nil
	}
	return cols[col-1], nil
}

// DeleteRow removes the 1-based physical row and saves the workbook. Rows
// below shift up; the store keeps rows dense.
func (s *worksheet) DeleteRow(row int) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	if err := s.wb.file.RemoveRow(s.name, row); err != nil {
		return fmt.Errorf("storage: delete row %d of %q: %w", row, s.name, err)
	}
	return s.wb.save()
}
