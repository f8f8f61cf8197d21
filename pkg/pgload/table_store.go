package pgload

import "context"

// TableStore materializes datasets as tables and reads them back.
// The Querier is owned by the caller and reused across files.
type TableStore interface {
	// EnsureSchema creates the schema when it does not exist.
	EnsureSchema(ctx context.Context, q Querier, schema string) error

	// Replace drops the table if present, recreates it from the dataset's
	// columns and bulk-writes all rows, atomically.
	// Returns the number of rows written.
	Replace(ctx context.Context, q Querier, table TableRef, ds *Dataset, comment string) (int64, error)

	// ReadBack returns the full contents of the table (SELECT *).
	ReadBack(ctx context.Context, q Querier, table TableRef) (*Dataset, error)
}

// DatabaseManager defines database lifecycle operations.
type DatabaseManager interface {
	// Exists checks if a database exists.
	Exists(ctx context.Context, conn DBConnection, dbName string) (bool, error)

	// Create creates a new database.
	Create(ctx context.Context, conn DBConnection, dbName string) error

	// EnsureExists creates the database unless it already exists.
	// Reports whether it was created by this call.
	EnsureExists(ctx context.Context, conn DBConnection, dbName string) (bool, error)
}
