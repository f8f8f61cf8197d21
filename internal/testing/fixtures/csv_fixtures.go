// Package fixtures builds source directories of delimited files for tests.
package fixtures

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/vvka-141/pgload/internal/files/filesystem"
)

// DirectoryBuilder provides a fluent API for source directory fixtures.
//
// Example usage:
//
//	dir := NewDirectoryBuilder().
//	    AddCSV("Customer.csv", "id,name", "1,Alice", "2,Bob").
//	    AddLatin1("Städte.csv", "id,name", "1,Zürich").
//	    WriteTo(t.TempDir())
type DirectoryBuilder struct {
	files map[string][]byte // name -> raw bytes
}

// NewDirectoryBuilder creates an empty fixture builder.
func NewDirectoryBuilder() *DirectoryBuilder {
	return &DirectoryBuilder{files: make(map[string][]byte)}
}

// AddCSV adds a file whose lines are joined with "\n". Lines are written
// as given, so they must already be valid for the target encoding.
func (b *DirectoryBuilder) AddCSV(name string, lines ...string) *DirectoryBuilder {
	b.files[name] = []byte(strings.Join(lines, "\n") + "\n")
	return b
}

// AddLatin1 adds a file whose UTF-8 lines are encoded as ISO-8859-1.
// Panics if a line contains a character Latin-1 cannot represent.
func (b *DirectoryBuilder) AddLatin1(name string, lines ...string) *DirectoryBuilder {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(strings.Join(lines, "\n") + "\n")
	if err != nil {
		panic("fixture " + name + " is not representable in Latin-1: " + err.Error())
	}
	b.files[name] = []byte(encoded)
	return b
}

// AddRaw adds a file with exact content.
func (b *DirectoryBuilder) AddRaw(name string, content []byte) *DirectoryBuilder {
	b.files[name] = content
	return b
}

// Names returns the file names in sorted order.
func (b *DirectoryBuilder) Names() []string {
	names := make([]string, 0, len(b.files))
	for name := range b.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns an in-memory filesystem rooted at root holding the files.
func (b *DirectoryBuilder) Build(root string) *filesystem.MemoryFileSystem {
	fs := filesystem.NewMemoryFileSystem(root)
	for name, content := range b.files {
		fs.AddBytes(name, content)
	}
	return fs
}

// WriteTo writes the files into dir and returns dir.
// Panics on write failure; fixtures are only built inside tests.
func (b *DirectoryBuilder) WriteTo(dir string) string {
	for name, content := range b.files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0644); err != nil {
			panic("write fixture " + name + ": " + err.Error())
		}
	}
	return dir
}

// CustomerOrders is the two-file directory from the end-to-end scenario:
// Customer.csv with two rows and Orders.CSV with one.
func CustomerOrders() *DirectoryBuilder {
	return NewDirectoryBuilder().
		AddCSV("Customer.csv", "id,name", "1,Alice", "2,Bob").
		AddCSV("Orders.CSV", "id,customer_id,amount", "10,1,99.5")
}

// CustomerWithMalformedOrders is CustomerOrders with an unparsable second file.
func CustomerWithMalformedOrders() *DirectoryBuilder {
	return NewDirectoryBuilder().
		AddCSV("Customer.csv", "id,name", "1,Alice", "2,Bob").
		AddCSV("Orders.CSV", "id,customer_id,amount", `10,1,"99.5`)
}
