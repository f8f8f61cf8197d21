package reader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/transform"

	"github.com/vvka-141/pgload/internal/checksum"
	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// Reader parses input files into datasets.
// Reader is safe for concurrent use as long as the filesystem provider is.
type Reader struct {
	fsProvider filesystem.FileSystemProvider
	checksum   checksum.Calculator
	encoding   string
	delimiter  rune
}

var _ pgload.DatasetReader = (*Reader)(nil)

// New creates a reader over the OS filesystem.
func New(encodingName string, delimiter rune) (*Reader, error) {
	return NewWithFS(filesystem.NewOSFileSystem(), encodingName, delimiter)
}

// NewWithFS creates a reader with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewWithFS(fsProvider filesystem.FileSystemProvider, encodingName string, delimiter rune) (*Reader, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if err := ValidateEncoding(encodingName); err != nil {
		return nil, err
	}
	if delimiter == 0 {
		delimiter = pgload.DefaultDelimiter
	}
	return &Reader{fsProvider: fsProvider, checksum: checksum.New(), encoding: encodingName, delimiter: delimiter}, nil
}

// Factory returns a constructor for readers over fsProvider, for callers
// that learn the encoding and delimiter only at run time.
func Factory(fsProvider filesystem.FileSystemProvider) func(encodingName string, delimiter rune) (pgload.DatasetReader, error) {
	return func(encodingName string, delimiter rune) (pgload.DatasetReader, error) {
		r, err := NewWithFS(fsProvider, encodingName, delimiter)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// Read parses one file. The whole file is held in memory, and the dataset
// records the SHA-256 of its raw bytes.
func (r *Reader) Read(file pgload.SourceFile) (*pgload.Dataset, error) {
	content, err := r.fsProvider.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pgload.ErrParseFailed, file.Name, err)
	}

	ds, err := r.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pgload.ErrParseFailed, file.Name, err)
	}
	ds.SourceChecksum = r.checksum.CalculateRaw(content)
	return ds, nil
}

// Parse decodes and parses delimited text from src.
func (r *Reader) Parse(src io.Reader) (*pgload.Dataset, error) {
	decoder, err := newDecoder(r.encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(src, decoder))
	cr.Comma = r.delimiter

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}
	names, err := normalizeHeader(header)
	if err != nil {
		return nil, err
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	return buildDataset(names, records), nil
}

// normalizeHeader turns the header record into column names. A blank cell
// becomes "Unnamed: <i>" (0-based) and a repeated name gets a ".1", ".2"
// suffix, skipping any suffixed name already taken by another column.
func normalizeHeader(header []string) ([]string, error) {
	names := make([]string, len(header))
	counts := make(map[string]int, len(header))

	for i, raw := range header {
		name := raw
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if strings.ContainsRune(name, 0) {
			return nil, fmt.Errorf("header column %d name contains a NUL byte", i+1)
		}

		n := counts[name]
		for n > 0 {
			counts[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
			n = counts[name]
		}
		counts[name] = n + 1

		if len(name) > pgload.MaxIdentifierLength {
			return nil, fmt.Errorf("header column %d name %q exceeds %d bytes", i+1, name, pgload.MaxIdentifierLength)
		}
		names[i] = name
	}
	return names, nil
}

func buildDataset(names []string, records [][]string) *pgload.Dataset {
	columns := make([]pgload.Column, len(names))
	cells := make([]string, len(records))
	for c, name := range names {
		for i, rec := range records {
			cells[i] = rec[c]
		}
		columns[c] = pgload.Column{Name: name, Type: InferType(cells)}
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for c, col := range columns {
			row[c] = ConvertCell(rec[c], col.Type)
		}
		rows[i] = row
	}

	return &pgload.Dataset{Columns: columns, Rows: rows}
}
