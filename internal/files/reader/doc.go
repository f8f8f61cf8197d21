// Package reader parses delimited text files into in-memory datasets.
//
// A file is decoded from its configured character encoding (Latin-1 by
// default), split into records, and the first record becomes the header.
// Each column then gets a storage type inferred from its non-empty cells:
// BIGINT if every cell is a base-10 integer, DOUBLE PRECISION if every cell
// is a decimal number, BOOLEAN if every cell is true or false (any case),
// TEXT otherwise. Empty cells become NULL, and a column with no non-empty
// cells is TEXT.
//
// A blank header cell is named "Unnamed: <i>" after its 0-based position and
// a repeated name becomes name.1, name.2 and so on, so exported files with a
// trailing delimiter still load.
//
// Malformed input fails the whole file with pgload.ErrParseFailed: a missing
// header, a column name over 63 bytes or containing NUL, rows whose field
// count differs from the header, bad quoting, or bytes invalid in the chosen
// encoding.
package reader
