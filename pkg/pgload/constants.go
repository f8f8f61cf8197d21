package pgload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // All files loaded
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitLoadFailed      = 13 // A file failed to parse, persist or verify
	ExitNoInputFiles    = 14 // Source directory has no matching files
	ExitPartialLoad     = 15 // --continue-on-error run finished with failures
)

const (
	// DefaultExtension is the file extension recognized as loader input.
	// Matching is case-insensitive.
	DefaultExtension = ".csv"

	// DefaultEncoding is the character encoding used to decode input files.
	DefaultEncoding = "latin1"

	// DefaultDelimiter separates fields within a record.
	DefaultDelimiter = ','

	// DefaultSchema is the PostgreSQL schema tables are created in.
	DefaultSchema = "public"

	// DefaultPreviewRows is the number of rows shown in each preview block.
	DefaultPreviewRows = 5

	// DefaultTimeout bounds an entire load run.
	DefaultTimeout = 30 * time.Minute

	// DefaultManagementDB is the database to connect to for CREATE DATABASE.
	DefaultManagementDB = "postgres"

	// DefaultAppName is reported to the server as application_name.
	DefaultAppName = "pgload"

	// MaxIdentifierLength is PostgreSQL's NAMEDATALEN-1 limit. Longer
	// identifiers are silently truncated by the server.
	MaxIdentifierLength = 63
)
