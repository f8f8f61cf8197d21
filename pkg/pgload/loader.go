package pgload

import "context"

// Loader loads every matching file of a directory into its own table.
type Loader interface {
	// Load runs discovery, parse, persist and verify for each file.
	// The summary is non-nil whenever at least discovery succeeded, so callers
	// can report partial progress even when an error is returned.
	Load(ctx context.Context, cfg Config) (*LoadSummary, error)
}
