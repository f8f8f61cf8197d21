package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/pgload/pkg/pgload"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockFileScanner struct {
	result pgload.ScanResult
	err    error
}

func (m *mockFileScanner) Scan(_, _ string) (pgload.ScanResult, error) {
	return m.result, m.err
}

// mockReader serves datasets keyed by file name.
type mockReader struct {
	datasets map[string]*pgload.Dataset
	errs     map[string]error
	reads    []string
}

func (m *mockReader) Read(file pgload.SourceFile) (*pgload.Dataset, error) {
	m.reads = append(m.reads, file.Name)
	if err, ok := m.errs[file.Name]; ok {
		return nil, err
	}
	ds, ok := m.datasets[file.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no such file", pgload.ErrParseFailed, file.Name)
	}
	return ds, nil
}

// mockStore keeps tables in memory. readBack, when set, rewrites what the
// readback returns.
type mockStore struct {
	tables     map[string]*pgload.Dataset
	comments   map[string]string
	replaced   []string
	schemas    []string
	schemaErr  error
	replaceErr map[string]error
	readErr    map[string]error
	readBack   func(ds *pgload.Dataset) *pgload.Dataset
}

func newMockStore() *mockStore {
	return &mockStore{
		tables:     map[string]*pgload.Dataset{},
		comments:   map[string]string{},
		replaceErr: map[string]error{},
		readErr:    map[string]error{},
	}
}

func (m *mockStore) EnsureSchema(_ context.Context, _ pgload.Querier, schema string) error {
	m.schemas = append(m.schemas, schema)
	return m.schemaErr
}

func (m *mockStore) Replace(_ context.Context, _ pgload.Querier, table pgload.TableRef, ds *pgload.Dataset, comment string) (int64, error) {
	if err := m.replaceErr[table.Name]; err != nil {
		return 0, err
	}
	m.replaced = append(m.replaced, table.Name)
	m.tables[table.Name] = ds
	m.comments[table.Name] = comment
	return int64(ds.RowCount()), nil
}

func (m *mockStore) ReadBack(_ context.Context, _ pgload.Querier, table pgload.TableRef) (*pgload.Dataset, error) {
	if err := m.readErr[table.Name]; err != nil {
		return nil, err
	}
	ds, ok := m.tables[table.Name]
	if !ok {
		return nil, fmt.Errorf("%w: relation %q does not exist", pgload.ErrVerifyFailed, table)
	}
	// The database returns its own copy without the file checksum.
	out := &pgload.Dataset{Columns: ds.Columns, Rows: append([][]any(nil), ds.Rows...)}
	if m.readBack != nil {
		out = m.readBack(out)
	}
	return out, nil
}

type mockDatabaseManager struct {
	created   bool
	err       error
	ensured   []string
	existsErr error
}

func (m *mockDatabaseManager) Exists(_ context.Context, _ pgload.DBConnection, _ string) (bool, error) {
	return !m.created, m.existsErr
}

func (m *mockDatabaseManager) Create(_ context.Context, _ pgload.DBConnection, _ string) error {
	return m.err
}

func (m *mockDatabaseManager) EnsureExists(_ context.Context, _ pgload.DBConnection, dbName string) (bool, error) {
	m.ensured = append(m.ensured, dbName)
	return m.created, m.err
}

type mockDBConnection struct{}

func (m *mockDBConnection) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBConnection) QueryRow(_ context.Context, _ string, _ ...any) pgload.Row {
	return nil
}

func (m *mockDBConnection) Acquire(_ context.Context) (pgload.PooledConnection, error) {
	return nil, nil
}

// mockReporter records reporter calls as short strings.
type mockReporter struct {
	events  []string
	summary *pgload.LoadSummary
}

func (m *mockReporter) SourcePreview(file pgload.SourceFile, ds *pgload.Dataset) {
	m.events = append(m.events, fmt.Sprintf("source %s %d", file.Name, ds.RowCount()))
}

func (m *mockReporter) TableCreated(table pgload.TableRef) {
	m.events = append(m.events, "created "+table.Name)
}

func (m *mockReporter) TablePreview(table pgload.TableRef, ds *pgload.Dataset) {
	m.events = append(m.events, fmt.Sprintf("table %s %d", table.Name, ds.RowCount()))
}

func (m *mockReporter) Summary(s *pgload.LoadSummary) {
	m.events = append(m.events, fmt.Sprintf("summary %d/%d", s.Loaded(), s.Total()))
	m.summary = s
}

type mockLogger struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}

func (m *mockLogger) Warn(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}
