package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CSVExporter writes point-in-time snapshots of workbook tables to CSV files,
// one file per table. It is safe for concurrent use.
type CSVExporter struct {
	mu  sync.Mutex
	dir string
}

// NewCSVExporter creates the export directory if needed.
func NewCSVExporter(dir string) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create export dir: %w", err)
	}
	return &CSVExporter{dir: dir}, nil
}

// Export writes (or truncates) <dir>/<table>.csv with a header row followed
// by every row mapping laid out in the given column order. Cells absent from
// a mapping export as "".
func (e *CSVExporter) Export(table string, columns []string, rows []map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	path := filepath.Join(e.dir, table+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
