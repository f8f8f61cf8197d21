package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func writePassfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pgpass.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("PGPASSFILE", path)
	return path
}

func TestPgpassPath_RespectsEnvVar(t *testing.T) {
	t.Setenv("PGPASSFILE", "/custom/path/pgpass")
	assert.Equal(t, "/custom/path/pgpass", pgpassPath())
}

func TestPgpassPath_DefaultWhenNoEnv(t *testing.T) {
	t.Setenv("PGPASSFILE", "")
	path := pgpassPath()
	require.NotEmpty(t, path)
	assert.Contains(t, []string{".pgpass", "pgpass.conf"}, filepath.Base(path))
}

func TestPasswordSource(t *testing.T) {
	cfg := func() *pgload.ConnectionConfig {
		return &pgload.ConnectionConfig{Host: "db.local", Port: 5432, Database: "warehouse", Username: "loader"}
	}

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("PGPASSWORD", "secret")
		c := cfg()
		c.Password = "secret"
		assert.Equal(t, "$PGPASSWORD", passwordSource(c))
	})

	t.Run("from connection string", func(t *testing.T) {
		t.Setenv("PGPASSWORD", "")
		c := cfg()
		c.Password = "inline"
		assert.Equal(t, "connection string", passwordSource(c))
	})

	t.Run("matching pgpass entry", func(t *testing.T) {
		path := writePassfile(t, "db.local:5432:warehouse:loader:pw\n")
		assert.Equal(t, path, passwordSource(cfg()))
	})

	t.Run("wildcard pgpass entry", func(t *testing.T) {
		path := writePassfile(t, "*:*:*:loader:pw\n")
		assert.Equal(t, path, passwordSource(cfg()))
	})

	t.Run("no matching entry", func(t *testing.T) {
		path := writePassfile(t, "other:5432:warehouse:loader:pw\n")
		assert.Equal(t, "none (no matching entry in "+path+")", passwordSource(cfg()))
	})

	t.Run("missing passfile", func(t *testing.T) {
		t.Setenv("PGPASSFILE", filepath.Join(t.TempDir(), "absent"))
		assert.Equal(t, "none", passwordSource(cfg()))
	})
}
