// Package scanner discovers input files in a source directory.
//
// Discovery is non-recursive: only regular files directly inside the source
// directory whose names end with the configured extension (case-insensitive)
// are returned. Results are sorted by file name so runs are reproducible,
// and each file carries its derived destination table name.
//
// Files whose names normalize to the same table name are reported as
// collisions. They are not rejected: the later file in processing order
// replaces the earlier file's table.
package scanner
