package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/pgload/pkg/pgload"
)

const (
	queryDatabaseExists = "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"

	pgCodeDuplicateDatabase = "42P04"
)

// Manager implements database lifecycle operations using the DBConnection abstraction.
// Stateless; thread safety depends on the injected DBConnection.
type Manager struct{}

// New creates a new Manager.
func New() *Manager {
	return &Manager{}
}

var _ pgload.DatabaseManager = (*Manager)(nil)

// Exists checks if a database exists.
func (m *Manager) Exists(ctx context.Context, conn pgload.DBConnection, dbName string) (bool, error) {
	var exists bool
	if err := conn.QueryRow(ctx, queryDatabaseExists, dbName).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return exists, nil
}

// Create creates a new database. CREATE DATABASE cannot run inside a
// transaction block, so it runs on a dedicated connection.
func (m *Manager) Create(ctx context.Context, conn pgload.DBConnection, dbName string) error {
	pooledConn, err := conn.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer pooledConn.Release()

	query := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())
	if _, err := pooledConn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create database %q: %w", dbName, err)
	}
	return nil
}

// EnsureExists creates dbName unless it exists and reports whether it did.
// Losing a creation race to another session counts as existing.
func (m *Manager) EnsureExists(ctx context.Context, conn pgload.DBConnection, dbName string) (bool, error) {
	exists, err := m.Exists(ctx, conn, dbName)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := m.Create(ctx, conn, dbName); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeDuplicateDatabase {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
