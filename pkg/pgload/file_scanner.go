package pgload

// FileScanner discovers input files in a source directory.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// Scan lists regular files in sourcePath whose name ends with extension
	// (case-insensitive), sorted by name, with their derived table names.
	Scan(sourcePath, extension string) (ScanResult, error)
}

// ScanResult contains the results of scanning a directory.
type ScanResult struct {
	Files      []SourceFile
	Collisions []Collision
}

// DatasetReader parses one input file into an in-memory Dataset.
type DatasetReader interface {
	Read(file SourceFile) (*Dataset, error)
}
