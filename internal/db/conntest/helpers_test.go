//go:build conntest

package conntest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/internal/testinfra"
	"github.com/vvka-141/pgload/pkg/pgload"
)

var (
	stdContainer  *testinfra.PostgresContainer
	mtlsContainer *testinfra.PostgresContainer
	certBundle    *testinfra.CertBundle
	certPaths     *testinfra.CertPaths
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	bundle, err := testinfra.GenerateCertBundle([]string{"localhost", "127.0.0.1"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate certs: %v\n", err)
		os.Exit(1)
	}
	certBundle = bundle

	dir, err := os.MkdirTemp("", "pgload-conntest-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create temp dir: %v\n", err)
		os.Exit(1)
	}

	paths, err := bundle.WriteToDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "write certs: %v\n", err)
		os.Exit(1)
	}
	certPaths = paths

	std, err := testinfra.StartPostgres(ctx, certPaths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres: %v\n", err)
		os.Exit(1)
	}
	stdContainer = std

	mtls, err := testinfra.StartMTLSPostgres(ctx, certPaths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start mTLS postgres: %v\n", err)
		stdContainer.Terminate(ctx) //nolint:errcheck
		os.Exit(1)
	}
	mtlsContainer = mtls

	code := m.Run()

	stdContainer.Terminate(ctx)  //nolint:errcheck
	mtlsContainer.Terminate(ctx) //nolint:errcheck
	os.RemoveAll(dir)
	os.Exit(code)
}

func connectWithConfig(t *testing.T, config *pgload.ConnectionConfig) *pgxpool.Pool {
	t.Helper()
	connector, err := db.NewConnector(config)
	require.NoError(t, err, "create connector")

	pool, err := connector.Connect(t.Context())
	require.NoError(t, err, "connect to %s:%d", config.Host, config.Port)
	t.Cleanup(pool.Close)
	return pool
}

func pingSucceeds(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	require.NoError(t, pool.Ping(t.Context()))
}

func queryVersion(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var v string
	require.NoError(t, pool.QueryRow(t.Context(), "SELECT version()").Scan(&v))
	return v
}

func parseStdConnString(t *testing.T) *pgload.ConnectionConfig {
	t.Helper()
	config, err := db.ParseConnectionString(stdContainer.ConnString)
	require.NoError(t, err)
	return config
}

// withSSLFiles points config at client certificate files. pgx reads these
// keys from the connection string.
func withSSLFiles(config *pgload.ConnectionConfig, rootCert, cert, key string) *pgload.ConnectionConfig {
	if config.AdditionalParams == nil {
		config.AdditionalParams = make(map[string]string)
	}
	for k, v := range map[string]string{"sslrootcert": rootCert, "sslcert": cert, "sslkey": key} {
		if v != "" {
			config.AdditionalParams[k] = v
		}
	}
	return config
}
