package pgload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	summary, err := loader.Load(ctx, cfg)
//	if errors.Is(err, pgload.ErrPartialLoad) {
//	    fmt.Printf("%d of %d files loaded\n", summary.Loaded(), summary.Total())
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrUnsupportedEncoding indicates the configured character encoding is unknown.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrNoInputFiles indicates the source directory contains no matching files.
	ErrNoInputFiles = errors.New("no input files")

	// ErrParseFailed indicates a source file could not be read or parsed.
	ErrParseFailed = errors.New("parse failed")

	// ErrPersistFailed indicates the destination table could not be replaced.
	ErrPersistFailed = errors.New("persist failed")

	// ErrVerifyFailed indicates the readback query failed.
	ErrVerifyFailed = errors.New("verification query failed")

	// ErrVerificationMismatch indicates the persisted table differs from the source dataset.
	ErrVerificationMismatch = errors.New("verification mismatch")

	// ErrPartialLoad indicates some files failed while others were loaded.
	ErrPartialLoad = errors.New("partial load")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrPartialLoad):
		return ExitPartialLoad
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrUnsupportedAuthMethod),
		errors.Is(err, ErrUnsupportedEncoding):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrNoInputFiles):
		return ExitNoInputFiles
	case errors.Is(err, ErrParseFailed),
		errors.Is(err, ErrPersistFailed),
		errors.Is(err, ErrVerifyFailed),
		errors.Is(err, ErrVerificationMismatch):
		return ExitLoadFailed
	}

	errStr := err.Error()
	if isUsageError(errStr) {
		return ExitUsageError
	}
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

// isUsageError recognizes the argument and flag errors produced by cobra/pflag.
func isUsageError(msg string) bool {
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"flag needs an argument",
		"missing required argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
