package pgload

import (
	"path/filepath"
	"strings"
)

// Stem returns the filename with its final extension removed.
// "Customer.csv" -> "Customer", "archive.2024.CSV" -> "archive.2024".
// Leading dots never start an extension: ".csv" is its own stem and
// ".hidden.csv" -> ".hidden".
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(strings.TrimLeft(base, ".")))
}

// TableNameForFile derives the destination table name for an input file:
// the lower-cased stem. No other normalization is applied; the name is
// always quoted when used in SQL.
func TableNameForFile(filename string) string {
	return strings.ToLower(Stem(filename))
}

// HasExtension reports whether filename ends with ext, ignoring case.
func HasExtension(filename, ext string) bool {
	if ext == "" || len(filename) < len(ext) {
		return false
	}
	return strings.EqualFold(filename[len(filename)-len(ext):], ext)
}
