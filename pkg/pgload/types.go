package pgload

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config contains all parameters needed for a load run.
// It is built once per process from flags, environment and pgload.yaml,
// then passed to the Loader.
type Config struct {
	// SourcePath is the directory scanned for input files (non-recursive).
	SourcePath string

	// DatabaseName is the target database name.
	DatabaseName string

	// MaintenanceDatabase is used for CREATE DATABASE when CreateDatabase is set.
	MaintenanceDatabase string

	// ConnectionString is the PostgreSQL connection string for the target database.
	ConnectionString string

	// Schema is the PostgreSQL schema tables are created in.
	Schema string

	// Extension selects input files, matched case-insensitively (".csv").
	Extension string

	// Encoding names the character encoding of every input file.
	Encoding string

	// Delimiter separates fields within a record.
	Delimiter rune

	// PreviewRows is the number of rows printed per preview. Zero disables previews.
	PreviewRows int

	// ContinueOnError records a failed file and moves on instead of aborting the run.
	ContinueOnError bool

	// Verify compares the read-back table against the source dataset.
	// When false the readback is still issued and displayed.
	Verify bool

	// CreateDatabase creates the target database when it does not exist.
	CreateDatabase bool

	// DryRun parses and previews files without connecting to the database.
	DryRun bool

	// Timeout is the global timeout for the entire run.
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Cloud authentication parameters, used according to AuthMethod.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	AWSRegion         string
	GoogleInstance    string
}

// Validate checks if the Config has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *Config) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if !c.DryRun {
		if c.DatabaseName == "" {
			errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
		}
		if c.ConnectionString == "" {
			errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
		}
	}

	if c.Extension == "" || !strings.HasPrefix(c.Extension, ".") {
		errs = append(errs, fmt.Errorf("extension %q must start with a dot: %w", c.Extension, ErrInvalidConfig))
	}

	if c.Delimiter == 0 || c.Delimiter == '"' || c.Delimiter == '\r' || c.Delimiter == '\n' {
		errs = append(errs, fmt.Errorf("invalid delimiter %q: %w", c.Delimiter, ErrInvalidConfig))
	}

	if c.PreviewRows < 0 {
		errs = append(errs, fmt.Errorf("preview rows cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v: %w", c.AuthMethod, ErrUnsupportedAuthMethod))
	}

	return errors.Join(errs...)
}

// ApplyDefaults fills zero-valued optional fields with package defaults.
func (c *Config) ApplyDefaults() {
	if c.Schema == "" {
		c.Schema = DefaultSchema
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if c.Delimiter == 0 {
		c.Delimiter = DefaultDelimiter
	}
	if c.MaintenanceDatabase == "" {
		c.MaintenanceDatabase = DefaultManagementDB
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance).
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS RDS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod converts the pgload.yaml spelling of an auth method.
// An empty string means AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam", "aws_iam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam", "google_iam":
		return AuthMethodGoogleIAM, nil
	case "azure", "azure-entra-id", "azure_entra_id", "entra":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("%q: %w", s, ErrUnsupportedAuthMethod)
	}
}

// SourceFile describes one input file discovered in the source directory.
type SourceFile struct {
	Path       string    // Full path on disk
	Name       string    // Filename only: "Customer.csv"
	TableName  string    // Derived destination table: "customer"
	SizeBytes  int64     // File size in bytes
	ModifiedAt time.Time // Last modification time
}

// TableRef identifies a destination table.
type TableRef struct {
	Schema string
	Name   string
}

// String returns the unquoted schema-qualified name.
func (t TableRef) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}
