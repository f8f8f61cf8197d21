package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// GranularConnFlags holds connection parameters from CLI flags, following
// PostgreSQL client conventions (-h, -p, -U, -d).
//
// Password is deliberately not a flag. Use $PGPASSWORD, ~/.pgpass or a
// connection string.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no server-addressing flag was given. Database is
// excluded because -d may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudFlags selects a managed-PostgreSQL authentication method.
// Client secrets are never flags; AZURE_CLIENT_SECRET is read from the environment.
type CloudFlags struct {
	Azure         bool
	AzureTenantID string
	AzureClientID string

	AWS       bool
	AWSRegion string

	Google         bool
	GoogleInstance string
}

func (c *CloudFlags) selected() int {
	n := 0
	for _, b := range []bool{c.Azure, c.AWS, c.Google} {
		if b {
			n++
		}
	}
	return n
}

// EnvVars holds the environment variables that influence connection resolution.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGLOAD_CONNECTION_STRING string
	DATABASE_URL             string

	PGHOST     string
	PGPORT     string
	PGUSER     string
	PGPASSWORD string
	PGDATABASE string
	PGSSLMODE  string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
	AWS_REGION          string
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGLOAD_CONNECTION_STRING: os.Getenv("PGLOAD_CONNECTION_STRING"),
		DATABASE_URL:             os.Getenv("DATABASE_URL"),
		PGHOST:                   os.Getenv("PGHOST"),
		PGPORT:                   os.Getenv("PGPORT"),
		PGUSER:                   os.Getenv("PGUSER"),
		PGPASSWORD:               os.Getenv("PGPASSWORD"),
		PGDATABASE:               os.Getenv("PGDATABASE"),
		PGSSLMODE:                os.Getenv("PGSSLMODE"),
		AZURE_TENANT_ID:          os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:          os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:      os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:               os.Getenv("AWS_REGION"),
	}
}

// ResolveConnectionParams resolves the target connection.
//
// Source of the server address, first match wins:
//  1. --connection
//  2. $PGLOAD_CONNECTION_STRING, then $DATABASE_URL, when no granular flag is set
//  3. granular flags, then PG* variables, then pgload.yaml, then defaults
//
// -d overrides the database of a connection string. Giving --connection
// together with -h, -p, -U or --sslmode is an error.
//
// The auth method comes from cloud flags, else pgload.yaml, else standard.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*pgload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot specify both --connection and granular flags (-h, -p, -U, --sslmode)\n"+
			"Choose one approach:\n"+
			"  1. Connection string: --connection \"postgresql://user@localhost:5432/mydb\"\n"+
			"  2. Granular flags: -h localhost -p 5432 -U myuser -d mydb\n"+
			"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser",
			pgload.ErrInvalidConfig)
	}
	if cloudFlags.selected() > 1 {
		return nil, fmt.Errorf("%w: --azure, --aws and --google are mutually exclusive", pgload.ErrInvalidConfig)
	}

	var cfg *pgload.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.PGLOAD_CONNECTION_STRING != "":
		cfg, err = resolveFromConnectionString(envVars.PGLOAD_CONNECTION_STRING, envVars)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		cfg, err = resolveFromConnectionString(envVars.DATABASE_URL, envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, pc)
	}
	if err != nil {
		return nil, err
	}

	if granularFlags.Database != "" {
		cfg.Database = granularFlags.Database
	}

	if err := applyCloudAuth(cfg, cloudFlags, envVars, pc); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyCloudAuth sets the auth method and its parameters.
// Flags take precedence over environment variables, which take precedence
// over pgload.yaml.
func applyCloudAuth(cfg *pgload.ConnectionConfig, flags *CloudFlags, env *EnvVars, pc config.ConnectionConfig) error {
	method, err := pgload.ParseAuthMethod(pc.AuthMethod)
	if err != nil {
		return fmt.Errorf("pgload.yaml connection.auth_method: %w", err)
	}
	switch {
	case flags.Azure:
		method = pgload.AuthMethodAzureEntraID
	case flags.AWS:
		method = pgload.AuthMethodAWSIAM
	case flags.Google:
		method = pgload.AuthMethodGoogleIAM
	}
	cfg.AuthMethod = method

	switch method {
	case pgload.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	case pgload.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, env.AWS_REGION, pc.AWSRegion)
	case pgload.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	}
	return nil
}

// resolveFromConnectionString parses a connection string. PGSSLMODE fills
// in the SSL mode when the string has none, as libpq does.
func resolveFromConnectionString(connStr string, envVars *EnvVars) (*pgload.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %v", pgload.ErrInvalidConfig, err)
	}

	if cfg.SSLMode == "" {
		cfg.SSLMode = firstNonEmpty(envVars.PGSSLMODE, "prefer")
	}
	return cfg, nil
}

// resolveFromGranularParams applies flag > environment > pgload.yaml > default
// to every parameter.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	pc config.ConnectionConfig,
) (*pgload.ConnectionConfig, error) {
	cfg := &pgload.ConnectionConfig{
		AuthMethod:       pgload.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, "localhost")

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: invalid $PGPORT value '%s': must be an integer between 1 and 65535", pgload.ErrInvalidConfig, envVars.PGPORT)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = 5432
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = envVars.PGPASSWORD
	cfg.Database = firstNonEmpty(flags.Database, envVars.PGDATABASE, pc.Database)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, "prefer")

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
