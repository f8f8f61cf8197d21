package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/pgload/internal/checksum"
	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// ReaderFactory builds the DatasetReader for a run's encoding and delimiter.
type ReaderFactory func(encoding string, delimiter rune) (pgload.DatasetReader, error)

type managementDBConnFunc func(ctx context.Context, connConfig *pgload.ConnectionConfig, dbName string) (pgload.DBConnection, func(), error)

type targetConnFunc func(ctx context.Context, connConfig *pgload.ConnectionConfig) (pgload.Querier, func(), error)

// ImportService implements the Loader interface.
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
type ImportService struct {
	connectorFactory pgload.ConnectorFactory
	fileScanner      pgload.FileScanner
	readerFactory    ReaderFactory
	store            pgload.TableStore
	dbManager        pgload.DatabaseManager
	reporter         pgload.Reporter
	logger           pgload.Logger
	checksum         checksum.Calculator

	mgmtConnector   managementDBConnFunc
	targetConnector targetConnFunc
	now             func() time.Time
}

var _ pgload.Loader = (*ImportService)(nil)

// NewImportService creates a new ImportService with all dependencies injected.
//
// Panics on nil dependencies: these are wiring mistakes and should fail at
// startup rather than deep inside a run.
func NewImportService(
	connectorFactory pgload.ConnectorFactory,
	fileScanner pgload.FileScanner,
	readerFactory ReaderFactory,
	store pgload.TableStore,
	dbManager pgload.DatabaseManager,
	reporter pgload.Reporter,
	logger pgload.Logger,
) *ImportService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if readerFactory == nil {
		panic("readerFactory cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if dbManager == nil {
		panic("dbManager cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &ImportService{
		connectorFactory: connectorFactory,
		fileScanner:      fileScanner,
		readerFactory:    readerFactory,
		store:            store,
		dbManager:        dbManager,
		reporter:         reporter,
		logger:           logger,
		checksum:         checksum.New(),
		now:              time.Now,
	}
	svc.mgmtConnector = svc.defaultMgmtConnector
	svc.targetConnector = svc.defaultTargetConnector
	return svc
}

func (s *ImportService) defaultMgmtConnector(ctx context.Context, connConfig *pgload.ConnectionConfig, dbName string) (pgload.DBConnection, func(), error) {
	connector, err := s.connectorFactory(db.WithDatabase(connConfig, dbName))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to management database %q: %w", dbName, err)
	}

	return db.NewPoolAdapter(pool), pool.Close, nil
}

func (s *ImportService) defaultTargetConnector(ctx context.Context, connConfig *pgload.ConnectionConfig) (pgload.Querier, func(), error) {
	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}
	return pool, pool.Close, nil
}

// Load runs a complete load for cfg.
//
// By default the first failing file aborts the run: tables written before it
// stay in place, later files are not attempted and no summary is printed.
// With ContinueOnError every file is attempted, the summary is printed and
// ErrPartialLoad is returned when any file failed. A connection-level
// failure aborts the run in either mode.
func (s *ImportService) Load(ctx context.Context, cfg pgload.Config) (*pgload.LoadSummary, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rdr, err := s.readerFactory(cfg.Encoding, cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	s.logger.Verbose("Scanning %s for *%s files", cfg.SourcePath, cfg.Extension)
	scan, err := s.fileScanner.Scan(cfg.SourcePath, cfg.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %q: %w", cfg.SourcePath, err)
	}
	if len(scan.Files) == 0 {
		return nil, fmt.Errorf("%w: no *%s files in %s", pgload.ErrNoInputFiles, cfg.Extension, cfg.SourcePath)
	}
	s.logger.Verbose("Found %d files to load", len(scan.Files))
	for _, c := range scan.Collisions {
		s.logger.Warn("files %v all map to table %q; only %s will remain", c.Files, c.Table, c.Files[len(c.Files)-1])
	}

	summary := &pgload.LoadSummary{
		RunID:      uuid.NewString(),
		Database:   cfg.DatabaseName,
		Collisions: scan.Collisions,
		DryRun:     cfg.DryRun,
	}

	if cfg.DryRun {
		return s.dryRun(ctx, cfg, rdr, scan.Files, summary)
	}

	connConfig, err := s.connectionConfig(cfg)
	if err != nil {
		return summary, err
	}

	if cfg.CreateDatabase {
		if err := s.ensureDatabaseExists(ctx, connConfig, cfg); err != nil {
			return summary, fmt.Errorf("failed to ensure database exists: %w", err)
		}
	}

	s.logger.Verbose("Connecting to database '%s'", connConfig.Database)
	q, closeConn, err := s.targetConnector(ctx, connConfig)
	if err != nil {
		return summary, err
	}
	defer closeConn()

	if err := s.store.EnsureSchema(ctx, q, cfg.Schema); err != nil {
		return summary, err
	}

	for _, file := range scan.Files {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("load interrupted before %s: %w", file.Name, err)
		}

		result := s.loadFile(ctx, q, rdr, file, cfg, summary.RunID)
		summary.Results = append(summary.Results, result)
		if result.OK() {
			continue
		}

		s.logger.Error("%s: %v", file.Name, result.Err)
		if !cfg.ContinueOnError || sessionLost(ctx, result.Err) {
			return summary, result.Err
		}
	}

	return s.finish(summary)
}

// sessionLost reports whether err leaves nothing for later files to do.
// Parse errors never touch the database.
func sessionLost(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return !errors.Is(err, pgload.ErrParseFailed) && db.IsConnectionError(err)
}

func (s *ImportService) dryRun(ctx context.Context, cfg pgload.Config, rdr pgload.DatasetReader, files []pgload.SourceFile, summary *pgload.LoadSummary) (*pgload.LoadSummary, error) {
	s.logger.Info("Dry run: files are parsed and previewed, nothing is written")
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("dry run interrupted before %s: %w", file.Name, err)
		}

		result, _ := s.parseFile(rdr, file, cfg)
		summary.Results = append(summary.Results, result)
		if !result.OK() {
			s.logger.Error("%s: %v", file.Name, result.Err)
			if !cfg.ContinueOnError {
				return summary, result.Err
			}
		}
	}
	return s.finish(summary)
}

func (s *ImportService) finish(summary *pgload.LoadSummary) (*pgload.LoadSummary, error) {
	s.reporter.Summary(summary)

	failed := summary.Failed()
	if len(failed) == 0 {
		return summary, nil
	}
	errs := []error{fmt.Errorf("%w: %d of %d files failed", pgload.ErrPartialLoad, len(failed), summary.Total())}
	for _, f := range failed {
		errs = append(errs, f.Err)
	}
	return summary, errors.Join(errs...)
}

// parseFile reads one file and shows its source preview.
func (s *ImportService) parseFile(rdr pgload.DatasetReader, file pgload.SourceFile, cfg pgload.Config) (pgload.FileResult, *pgload.Dataset) {
	start := s.now()
	result := pgload.FileResult{
		File:  file,
		Table: pgload.TableRef{Schema: cfg.Schema, Name: file.TableName},
	}

	ds, err := rdr.Read(file)
	if err != nil {
		result.Err = err
		result.Duration = s.now().Sub(start)
		return result, nil
	}

	result.Columns = ds.ColumnNames()
	result.Rows = ds.RowCount()
	result.Checksum = s.checksum.CalculateDataset(ds)
	result.Duration = s.now().Sub(start)

	s.logger.Verbose("Parsed %s: %d columns, %d rows", file.Name, len(result.Columns), result.Rows)
	s.reporter.SourcePreview(file, ds)
	return result, ds
}

// loadFile runs parse, persist, readback and verify for one file.
func (s *ImportService) loadFile(ctx context.Context, q pgload.Querier, rdr pgload.DatasetReader, file pgload.SourceFile, cfg pgload.Config, runID string) (result pgload.FileResult) {
	start := s.now()
	defer func() { result.Duration = s.now().Sub(start) }()

	var ds *pgload.Dataset
	result, ds = s.parseFile(rdr, file, cfg)
	if !result.OK() {
		return result
	}

	comment := fmt.Sprintf("Loaded by pgload run %s from %s (%d rows, dataset sha256 %s, file sha256 %s)",
		runID, file.Name, result.Rows, result.Checksum, ds.SourceChecksum)

	s.logger.Verbose("Replacing table %s", result.Table)
	written, err := s.store.Replace(ctx, q, result.Table, ds, comment)
	if err != nil {
		result.Err = err
		return result
	}
	s.logger.Verbose("Wrote %d rows to %s", written, result.Table)

	back, err := s.store.ReadBack(ctx, q, result.Table)
	if err != nil {
		result.Err = err
		return result
	}

	if cfg.Verify {
		if err := s.verify(result, back); err != nil {
			result.Err = err
			return result
		}
		s.logger.Verbose("Verified %s: %d rows, checksum %s", result.Table, back.RowCount(), result.Checksum)
	}

	s.reporter.TableCreated(result.Table)
	s.reporter.TablePreview(result.Table, back)
	return result
}

// verify compares the readback with what was parsed: column names in order,
// row count, then the order-independent dataset checksum.
func (s *ImportService) verify(want pgload.FileResult, got *pgload.Dataset) error {
	gotCols := got.ColumnNames()
	if len(gotCols) != len(want.Columns) {
		return fmt.Errorf("%w: %s: table has %d columns, file has %d",
			pgload.ErrVerificationMismatch, want.Table, len(gotCols), len(want.Columns))
	}
	for i := range gotCols {
		if gotCols[i] != want.Columns[i] {
			return fmt.Errorf("%w: %s: column %d is %q, file has %q",
				pgload.ErrVerificationMismatch, want.Table, i+1, gotCols[i], want.Columns[i])
		}
	}
	if got.RowCount() != want.Rows {
		return fmt.Errorf("%w: %s: table has %d rows, file has %d",
			pgload.ErrVerificationMismatch, want.Table, got.RowCount(), want.Rows)
	}
	if sum := s.checksum.CalculateDataset(got); sum != want.Checksum {
		return fmt.Errorf("%w: %s: table checksum %s differs from file checksum %s",
			pgload.ErrVerificationMismatch, want.Table, sum, want.Checksum)
	}
	return nil
}

// connectionConfig parses the target connection string and applies the
// run's authentication settings.
func (s *ImportService) connectionConfig(cfg pgload.Config) (*pgload.ConnectionConfig, error) {
	connConfig, err := db.ParseConnectionString(cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	connConfig.Database = cfg.DatabaseName
	if connConfig.AppName == "" {
		connConfig.AppName = pgload.DefaultAppName
	}
	connConfig.AuthMethod = cfg.AuthMethod
	connConfig.AzureTenantID = cfg.AzureTenantID
	connConfig.AzureClientID = cfg.AzureClientID
	connConfig.AzureClientSecret = cfg.AzureClientSecret
	connConfig.AWSRegion = cfg.AWSRegion
	connConfig.GoogleInstance = cfg.GoogleInstance
	return connConfig, nil
}

// ensureDatabaseExists creates the target database through the maintenance database.
func (s *ImportService) ensureDatabaseExists(ctx context.Context, connConfig *pgload.ConnectionConfig, cfg pgload.Config) error {
	s.logger.Verbose("Connecting to management database '%s' to check if target database exists", cfg.MaintenanceDatabase)

	dbConn, cleanup, err := s.mgmtConnector(ctx, connConfig, cfg.MaintenanceDatabase)
	if err != nil {
		return err
	}
	defer cleanup()

	created, err := s.dbManager.EnsureExists(ctx, dbConn, cfg.DatabaseName)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Created database '%s'", cfg.DatabaseName)
	} else {
		s.logger.Verbose("Database '%s' already exists", cfg.DatabaseName)
	}
	return nil
}
