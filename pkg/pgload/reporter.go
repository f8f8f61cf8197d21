package pgload

// Reporter renders the human-readable console output of a run.
// Implementations write to stdout; diagnostics belong to Logger.
type Reporter interface {
	// SourcePreview shows the leading rows of a parsed file.
	SourcePreview(file SourceFile, ds *Dataset)

	// TableCreated announces that the table was written.
	TableCreated(table TableRef)

	// TablePreview shows the leading rows read back from the database.
	TablePreview(table TableRef, ds *Dataset)

	// Summary prints the final line after all files are processed.
	Summary(summary *LoadSummary)
}
