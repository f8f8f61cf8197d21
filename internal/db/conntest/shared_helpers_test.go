//go:build conntest || azure

package conntest

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/internal/db/manager"
	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/internal/files/loader"
	"github.com/vvka-141/pgload/internal/files/reader"
	"github.com/vvka-141/pgload/internal/files/scanner"
	"github.com/vvka-141/pgload/internal/logging"
	"github.com/vvka-141/pgload/internal/services"
	"github.com/vvka-141/pgload/internal/testing/fixtures"
	"github.com/vvka-141/pgload/internal/tui"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func newTestLoader(t *testing.T, out *bytes.Buffer) pgload.Loader {
	t.Helper()
	fsProvider := filesystem.NewOSFileSystem()
	return services.NewImportService(
		db.NewConnector,
		scanner.NewScannerWithFS(fsProvider),
		reader.Factory(fsProvider),
		loader.NewStore(),
		manager.New(),
		tui.NewConsoleReporterWithMode(out, 0, tui.ModePlain),
		logging.NewNullLogger(),
	)
}

func setupSourceDir(t *testing.T) string {
	t.Helper()
	return fixtures.CustomerOrders().WriteTo(t.TempDir())
}

func cleanupDB(t *testing.T, connStr, dbName string) {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Logf("cleanup: failed to connect: %v", err)
		return
	}
	defer pool.Close()

	_, _ = pool.Exec(ctx,
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()", dbName)
	_, err = pool.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{dbName}.Sanitize())
	if err != nil {
		t.Logf("cleanup: failed to drop %s: %v", dbName, err)
	}
}
