package pgload

import "time"

// FileResult records the outcome of loading one input file.
type FileResult struct {
	File     SourceFile
	Table    TableRef
	Columns  []string
	Rows     int
	Checksum string
	Duration time.Duration

	// Err is nil when the file was loaded (and verified, if enabled).
	Err error
}

// OK reports whether the file was loaded successfully.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// LoadSummary aggregates the per-file results of a run, in processing order.
type LoadSummary struct {
	RunID    string
	Database string
	Results  []FileResult

	// DryRun is set when files were parsed and previewed but nothing was written.
	DryRun bool

	// Collisions lists table names that more than one input file mapped to.
	Collisions []Collision
}

// Total returns the number of files attempted.
func (s *LoadSummary) Total() int {
	return len(s.Results)
}

// Loaded returns the number of files loaded successfully.
func (s *LoadSummary) Loaded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (s *LoadSummary) Failed() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Collision describes input files whose names normalize to the same table.
// The last file in processing order wins.
type Collision struct {
	Table string
	Files []string
}
