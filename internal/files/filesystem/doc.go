// Package filesystem abstracts the handful of filesystem operations the
// loader needs so discovery and parsing can run against an in-memory tree
// in tests.
//
// Implementations:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: in-memory tree for tests
package filesystem
