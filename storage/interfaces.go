package storage

// Table is one worksheet inside the workbook resource. Row and column indices
// are 1-based at this layer and include the header row, matching how the
// workbook itself numbers them; rows are dense, no gaps.
//
// AppendRow is positional: the caller passes values in the destination
// table's existing column order. There is no name-keyed insertion.
type Table interface {
	Name() string
	Rows() ([]map[string]string, error)
	AppendRow(values []any) error
	ColumnValues(col int) ([]string, error)
	DeleteRow(row int) error
}

// Resource is the external tabular store: one named workbook holding one
// Table per entity type.
type Resource interface {
	Table(name string) (Table, error)
	Close() error
}
