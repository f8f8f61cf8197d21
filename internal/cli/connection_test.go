package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/internal/logging"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// TestResolveTargetDatabase tests the database precedence logic.
// The -d/--database flag should always take precedence over connection string database.
func TestResolveTargetDatabase(t *testing.T) {
	tests := []struct {
		name               string
		flagDatabase       string
		connConfigDatabase string
		wantDatabase       string
		wantErr            bool
	}{
		{"flag takes precedence over connection string", "warehouse", "postgres", "warehouse", false},
		{"connection string database when flag not provided", "", "warehouse", "warehouse", false},
		{"flag alone", "warehouse", "", "warehouse", false},
		{"error when no database provided", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTargetDatabase(tt.flagDatabase, tt.connConfigDatabase, logging.NewNullLogger())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, pgload.ErrInvalidConfig)
				assert.Contains(t, err.Error(), "--database/-d flag")
				assert.Contains(t, err.Error(), "PGDATABASE")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDatabase, got)
		})
	}
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Verbose(format string, args ...interface{}) {
	r.lines = append(r.lines, format)
}

func TestResolveTargetDatabase_LogsOverride(t *testing.T) {
	logger := &recordingLogger{}
	_, err := resolveTargetDatabase("warehouse", "postgres", logger)
	require.NoError(t, err)
	assert.Len(t, logger.lines, 1)
}

// TestResolveConnection_WithEnvironment tests the PGLOAD_CONNECTION_STRING
// environment variable behavior.
func TestResolveConnection_WithEnvironment(t *testing.T) {
	tests := []struct {
		name           string
		connStringFlag string
		envConnString  string
		wantHost       string
	}{
		{"flag takes precedence over environment", "postgresql://user@localhost:5432/flagdb", "postgresql://user@envhost:5433/envdb", "localhost"},
		{"use environment when flag not provided", "", "postgresql://user@envhost:5433/envdb", "envhost"},
		{"use defaults when neither flag nor env provided", "", "", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConnectionEnv(t)
			t.Setenv("PGLOAD_CONNECTION_STRING", tt.envConnString)

			connConfig, err := resolveConnection(connectionFlags{connection: tt.connStringFlag}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, connConfig.Host)
		})
	}
}

// TestResolveConnection_GranularFlags tests connection resolution with granular CLI flags.
func TestResolveConnection_GranularFlags(t *testing.T) {
	clearConnectionEnv(t)
	t.Setenv("PGHOST", "envhost")
	t.Setenv("PGPORT", "6543")

	pc := &config.ProjectConfig{Connection: config.ConnectionConfig{Host: "yamlhost", Username: "yamluser", Database: "yamldb"}}

	connConfig, err := resolveConnection(connectionFlags{host: "flaghost", sslMode: "require"}, pc)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", connConfig.Host)
	assert.Equal(t, 6543, connConfig.Port)
	assert.Equal(t, "yamluser", connConfig.Username)
	assert.Equal(t, "yamldb", connConfig.Database)
	assert.Equal(t, "require", connConfig.SSLMode)
}

func TestResolveConnection_CloudFlagsAreExclusive(t *testing.T) {
	clearConnectionEnv(t)

	_, err := resolveConnection(connectionFlags{host: "h", azure: true, aws: true}, nil)
	assert.ErrorIs(t, err, pgload.ErrInvalidConfig)
}

func TestResolveConnection_GoogleFromProjectConfig(t *testing.T) {
	clearConnectionEnv(t)
	pc := &config.ProjectConfig{Connection: config.ConnectionConfig{
		Username: "svc@project.iam", Database: "warehouse", AuthMethod: "google", GoogleInstance: "p:r:i",
	}}

	connConfig, err := resolveConnection(connectionFlags{}, pc)
	require.NoError(t, err)
	assert.Equal(t, pgload.AuthMethodGoogleIAM, connConfig.AuthMethod)
	assert.Equal(t, "p:r:i", connConfig.GoogleInstance)

	connConfig, err = resolveConnection(connectionFlags{googleInstance: "q:r:j"}, pc)
	require.NoError(t, err)
	assert.Equal(t, "q:r:j", connConfig.GoogleInstance, "flag overrides pgload.yaml")
}

func TestLogConnectionVerbose(t *testing.T) {
	logger := &recordingLogger{}
	logConnectionVerbose(logger, &pgload.ConnectionConfig{Host: "h", Port: 5432, Password: "x"}, "postgres")
	assert.Contains(t, logger.lines, "  Maintenance Database: %s")
	assert.Contains(t, logger.lines, "  Password: %s")

	logger = &recordingLogger{}
	logConnectionVerbose(logger, &pgload.ConnectionConfig{AuthMethod: pgload.AuthMethodAWSIAM}, "")
	assert.NotContains(t, logger.lines, "  Maintenance Database: %s")
	assert.NotContains(t, logger.lines, "  Password: %s")
}
