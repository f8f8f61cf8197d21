package pgload

import "fmt"

// ColumnType is the storage type inferred for a column.
type ColumnType int

const (
	ColumnText    ColumnType = iota // TEXT, values are string
	ColumnBigint                    // BIGINT, values are int64
	ColumnDouble                    // DOUBLE PRECISION, values are float64
	ColumnBoolean                   // BOOLEAN, values are bool
)

// SQLType returns the PostgreSQL type used in CREATE TABLE.
func (t ColumnType) SQLType() string {
	switch t {
	case ColumnBigint:
		return "BIGINT"
	case ColumnDouble:
		return "DOUBLE PRECISION"
	case ColumnBoolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// String returns a short lower-case name for previews and logs.
func (t ColumnType) String() string {
	switch t {
	case ColumnText:
		return "text"
	case ColumnBigint:
		return "bigint"
	case ColumnDouble:
		return "double"
	case ColumnBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Column is one named, typed column of a Dataset.
type Column struct {
	Name string
	Type ColumnType
}

// Dataset is an in-memory table: ordered columns and ordered rows.
// Each row holds one value per column; nil is SQL NULL.
// Non-nil values are string, int64, float64 or bool according to the column type.
type Dataset struct {
	Columns []Column
	Rows    [][]any

	// SourceChecksum is the SHA-256 of the raw file the dataset was parsed
	// from. Empty for datasets read back from the database.
	SourceChecksum string
}

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// Head returns at most n leading rows. The returned slice shares storage with d.
func (d *Dataset) Head(n int) [][]any {
	if n < 0 {
		n = 0
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}
