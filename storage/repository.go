package storage

import (
	"fmt"

	"estate-crm/normalize"
	"estate-crm/utils"
)

// Repository exposes the three record operations over the Connector. It is
// the sole owner of the row-order and column-order contract: nothing above
// it writes to the store directly.
type Repository struct {
	conn   *Connector
	logger *utils.Logger
}

// NewRepository creates a Repository on top of the given Connector.
func NewRepository(conn *Connector, logger *utils.Logger) *Repository {
	return &Repository{conn: conn, logger: logger}
}

// ReadAll returns every data row of the named table as header→value
// mappings. It never fails the caller: when the store is unavailable it
// logs the condition and returns an empty sequence.
func (r *Repository) ReadAll(table string) []map[string]string {
	rows, _, err := r.conn.Connect(table)
	if err != nil {
		return nil
	}
	return rows
}

// Append adds one row to the end of the named table. The values must be in
// the table's exact column order. The returned error is for caller
// confirmation only; transport failures surface as values, never panics.
func (r *Repository) Append(table string, values []any) error {
	_, tbl, err := r.conn.Connect(table)
	if err != nil {
		return err
	}

	if err := tbl.AppendRow(values); err != nil {
		r.logger.Error("[store] append to %s failed: %v", table, err)
		return err
	}
	r.logger.Info("[store] appended 1 row to %s", table)
	return nil
}

// DeleteByKey removes the first row whose value in the 1-based keyCol equals
// keyValue, comparing after whitespace normalization. The lookup column is
// re-read immediately before removal so a position cached from an earlier
// ReadAll can never be acted on; a concurrent external edit between renders
// therefore cannot shift the deletion onto the wrong row. At most one row is
// removed per call. Returns ErrKeyNotFound when no row matches.
func (r *Repository) DeleteByKey(table string, keyCol int, keyValue string) error {
	_, tbl, err := r.conn.Connect(table)
	if err != nil {
		return err
	}

	values, err := tbl.ColumnValues(keyCol)
	if err != nil {
		return fmt.Errorf("storage: resolve key column: %v: %w", err, ErrConnectionUnavailable)
	}

	want := normalize.Text(keyValue)
	// values[0] is the header cell; data starts at physical row 2.
	for i := 1; i < len(values); i++ {
		if normalize.Text(values[i]) == want {
			row := i + 1
			if err := tbl.DeleteRow(row); err != nil {
				r.logger.Error("[store] delete row %d of %s failed: %v", row, table, err)
				return err
			}
			r.logger.Info("[store] deleted %q from %s (row %d)", keyValue, table, row)
			return nil
		}
	}

	return fmt.Errorf("storage: %q not in column %d of %s: %w", keyValue, keyCol, table, ErrKeyNotFound)
}

// Close releases the underlying connector.
func (r *Repository) Close() error {
	return r.conn.Close()
}
