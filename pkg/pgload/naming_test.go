package pgload_test

import (
	"testing"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestTableNameForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Customer.csv", "customer"},
		{"Orders.CSV", "orders"},
		{"SalesOrderHeader.csv", "salesorderheader"},
		{"archive.2024.csv", "archive.2024"},
		{"MIXED_Case-Name.Csv", "mixed_case-name"},
		{"/data/in/Person.csv", "person"},
		{".csv", ".csv"},
		{".CSV", ".csv"},
		{".hidden.csv", ".hidden"},
		{"..csv", "..csv"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := pgload.TableNameForFile(tt.filename); got != tt.want {
				t.Errorf("TableNameForFile(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		filename string
		ext      string
		want     bool
	}{
		{"a.csv", ".csv", true},
		{"a.CSV", ".csv", true},
		{"a.Csv", ".CSV", true},
		{"a.csv.bak", ".csv", false},
		{"acsv", ".csv", false},
		{".csv", ".csv", true},
		{"csv", ".csv", false},
		{"a.tsv", ".csv", false},
		{"a.csv", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"|"+tt.ext, func(t *testing.T) {
			if got := pgload.HasExtension(tt.filename, tt.ext); got != tt.want {
				t.Errorf("HasExtension(%q, %q) = %v, want %v", tt.filename, tt.ext, got, tt.want)
			}
		})
	}
}
