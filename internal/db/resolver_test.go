package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestGranularConnFlags_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		flags GranularConnFlags
		want  bool
	}{
		{"empty", GranularConnFlags{}, true},
		{"host", GranularConnFlags{Host: "localhost"}, false},
		{"port", GranularConnFlags{Port: 5432}, false},
		{"username", GranularConnFlags{Username: "u"}, false},
		{"sslmode", GranularConnFlags{SSLMode: "require"}, false},
		{"database only", GranularConnFlags{Database: "db"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flags.IsEmpty())
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PGLOAD_CONNECTION_STRING", "postgresql://a@b/c")
	t.Setenv("PGHOST", "testhost")
	t.Setenv("PGPORT", "5433")
	t.Setenv("PGUSER", "testuser")
	t.Setenv("PGPASSWORD", "testpass")
	t.Setenv("PGDATABASE", "testdb")
	t.Setenv("PGSSLMODE", "require")
	t.Setenv("DATABASE_URL", "postgresql://user@host/db")
	t.Setenv("AWS_REGION", "eu-central-1")

	env := LoadFromEnvironment()

	assert.Equal(t, "postgresql://a@b/c", env.PGLOAD_CONNECTION_STRING)
	assert.Equal(t, "testhost", env.PGHOST)
	assert.Equal(t, "5433", env.PGPORT)
	assert.Equal(t, "testuser", env.PGUSER)
	assert.Equal(t, "testpass", env.PGPASSWORD)
	assert.Equal(t, "testdb", env.PGDATABASE)
	assert.Equal(t, "require", env.PGSSLMODE)
	assert.Equal(t, "postgresql://user@host/db", env.DATABASE_URL)
	assert.Equal(t, "eu-central-1", env.AWS_REGION)
}

func TestResolveConnectionParams_ConflictDetection(t *testing.T) {
	tests := []struct {
		name       string
		connString string
		flags      *GranularConnFlags
		cloud      *CloudFlags
		wantError  bool
	}{
		{"connection string only", "postgresql://user@localhost/db", &GranularConnFlags{}, nil, false},
		{"granular only", "", &GranularConnFlags{Host: "localhost"}, nil, false},
		{"connection string + host", "postgresql://user@localhost/db", &GranularConnFlags{Host: "other"}, nil, true},
		{"connection string + port", "postgresql://user@localhost/db", &GranularConnFlags{Port: 5433}, nil, true},
		{"connection string + database", "postgresql://user@localhost/db", &GranularConnFlags{Database: "other"}, nil, false},
		{"two cloud providers", "", nil, &CloudFlags{AWS: true, Azure: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveConnectionParams(tt.connString, tt.flags, tt.cloud, &EnvVars{}, nil)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, pgload.ErrInvalidConfig))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolveConnectionParams_ConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"postgresql://loader:pw@db.internal:6432/warehouse",
		&GranularConnFlags{},
		nil,
		&EnvVars{PGHOST: "ignored", PGSSLMODE: "require"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6432, cfg.Port)
	assert.Equal(t, "loader", cfg.Username)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "warehouse", cfg.Database)
	assert.Equal(t, "prefer", cfg.SSLMode, "parser default wins over PGSSLMODE")
	assert.Equal(t, pgload.AuthMethodStandard, cfg.AuthMethod)
}

func TestResolveConnectionParams_DatabaseFlagOverridesConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams("postgresql://u@h/first", &GranularConnFlags{Database: "second"}, nil, &EnvVars{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.Database)
}

func TestResolveConnectionParams_InvalidConnectionString(t *testing.T) {
	_, err := ResolveConnectionParams("garbage", nil, nil, &EnvVars{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgload.ErrInvalidConfig))
}

func TestResolveConnectionParams_EnvConnectionStrings(t *testing.T) {
	tests := []struct {
		name     string
		env      *EnvVars
		flags    *GranularConnFlags
		wantHost string
	}{
		{
			name:     "PGLOAD_CONNECTION_STRING beats DATABASE_URL",
			env:      &EnvVars{PGLOAD_CONNECTION_STRING: "postgresql://u@primary/db", DATABASE_URL: "postgresql://u@secondary/db"},
			flags:    &GranularConnFlags{},
			wantHost: "primary",
		},
		{
			name:     "DATABASE_URL used without granular flags",
			env:      &EnvVars{DATABASE_URL: "postgresql://u@heroku/db", PGHOST: "pghost"},
			flags:    &GranularConnFlags{},
			wantHost: "heroku",
		},
		{
			name:     "granular flag disables DATABASE_URL",
			env:      &EnvVars{DATABASE_URL: "postgresql://u@heroku/db"},
			flags:    &GranularConnFlags{Host: "flaghost"},
			wantHost: "flaghost",
		},
		{
			name:     "database flag alone keeps DATABASE_URL",
			env:      &EnvVars{DATABASE_URL: "postgresql://u@heroku/db"},
			flags:    &GranularConnFlags{Database: "other"},
			wantHost: "heroku",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ResolveConnectionParams("", tt.flags, nil, tt.env, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, cfg.Host)
		})
	}
}

func TestResolveConnectionParams_Precedence(t *testing.T) {
	project := &config.ProjectConfig{Connection: config.ConnectionConfig{
		Host: "yamlhost", Port: 7000, Username: "yamluser", Database: "yamldb", SSLMode: "disable",
	}}

	t.Run("flags win", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("",
			&GranularConnFlags{Host: "flaghost", Port: 5000, Username: "flaguser", Database: "flagdb", SSLMode: "verify-full"},
			nil,
			&EnvVars{PGHOST: "envhost", PGPORT: "6000", PGUSER: "envuser", PGDATABASE: "envdb", PGSSLMODE: "require"},
			project)
		require.NoError(t, err)
		assert.Equal(t, "flaghost", cfg.Host)
		assert.Equal(t, 5000, cfg.Port)
		assert.Equal(t, "flaguser", cfg.Username)
		assert.Equal(t, "flagdb", cfg.Database)
		assert.Equal(t, "verify-full", cfg.SSLMode)
	})

	t.Run("env beats yaml", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", nil, nil,
			&EnvVars{PGHOST: "envhost", PGPORT: "6000", PGUSER: "envuser", PGDATABASE: "envdb", PGSSLMODE: "require", PGPASSWORD: "pw"},
			project)
		require.NoError(t, err)
		assert.Equal(t, "envhost", cfg.Host)
		assert.Equal(t, 6000, cfg.Port)
		assert.Equal(t, "envuser", cfg.Username)
		assert.Equal(t, "envdb", cfg.Database)
		assert.Equal(t, "require", cfg.SSLMode)
		assert.Equal(t, "pw", cfg.Password)
	})

	t.Run("yaml beats defaults", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", nil, nil, &EnvVars{}, project)
		require.NoError(t, err)
		assert.Equal(t, "yamlhost", cfg.Host)
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, "yamluser", cfg.Username)
		assert.Equal(t, "yamldb", cfg.Database)
		assert.Equal(t, "disable", cfg.SSLMode)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("USER", "osuser")
		cfg, err := ResolveConnectionParams("", nil, nil, &EnvVars{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 5432, cfg.Port)
		assert.Equal(t, "osuser", cfg.Username)
		assert.Equal(t, "", cfg.Database)
		assert.Equal(t, "prefer", cfg.SSLMode)
	})
}

func TestResolveConnectionParams_InvalidPGPORT(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000", "-1"} {
		t.Run(port, func(t *testing.T) {
			_, err := ResolveConnectionParams("", nil, nil, &EnvVars{PGPORT: port}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "$PGPORT")
		})
	}
}

func TestResolveConnectionParams_CloudAuth(t *testing.T) {
	env := &EnvVars{
		AZURE_TENANT_ID:     "env-tenant",
		AZURE_CLIENT_ID:     "env-client",
		AZURE_CLIENT_SECRET: "env-secret",
		AWS_REGION:          "us-east-1",
	}

	t.Run("azure env vars alone do not switch auth", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", nil, nil, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgload.AuthMethodStandard, cfg.AuthMethod)
		assert.Empty(t, cfg.AzureClientSecret)
	})

	t.Run("azure flag with env credentials", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", nil, &CloudFlags{Azure: true, AzureClientID: "flag-client"}, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgload.AuthMethodAzureEntraID, cfg.AuthMethod)
		assert.Equal(t, "env-tenant", cfg.AzureTenantID)
		assert.Equal(t, "flag-client", cfg.AzureClientID)
		assert.Equal(t, "env-secret", cfg.AzureClientSecret)
	})

	t.Run("aws region precedence", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", nil, &CloudFlags{AWS: true}, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgload.AuthMethodAWSIAM, cfg.AuthMethod)
		assert.Equal(t, "us-east-1", cfg.AWSRegion)

		cfg, err = ResolveConnectionParams("", nil, &CloudFlags{AWS: true, AWSRegion: "ap-south-1"}, env, nil)
		require.NoError(t, err)
		assert.Equal(t, "ap-south-1", cfg.AWSRegion)
	})

	t.Run("google from yaml", func(t *testing.T) {
		project := &config.ProjectConfig{Connection: config.ConnectionConfig{AuthMethod: "google", GoogleInstance: "p:r:i"}}
		cfg, err := ResolveConnectionParams("", nil, nil, &EnvVars{}, project)
		require.NoError(t, err)
		assert.Equal(t, pgload.AuthMethodGoogleIAM, cfg.AuthMethod)
		assert.Equal(t, "p:r:i", cfg.GoogleInstance)
	})

	t.Run("flag overrides yaml auth method", func(t *testing.T) {
		project := &config.ProjectConfig{Connection: config.ConnectionConfig{AuthMethod: "google"}}
		cfg, err := ResolveConnectionParams("", nil, &CloudFlags{AWS: true}, env, project)
		require.NoError(t, err)
		assert.Equal(t, pgload.AuthMethodAWSIAM, cfg.AuthMethod)
	})

	t.Run("unknown yaml auth method", func(t *testing.T) {
		project := &config.ProjectConfig{Connection: config.ConnectionConfig{AuthMethod: "kerberos"}}
		_, err := ResolveConnectionParams("", nil, nil, &EnvVars{}, project)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pgload.ErrUnsupportedAuthMethod))
	})
}
