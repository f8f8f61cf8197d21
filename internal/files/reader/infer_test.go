package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  pgload.ColumnType
	}{
		{"integers", []string{"1", "-2", "+30"}, pgload.ColumnBigint},
		{"integers with empty", []string{"1", "", "3"}, pgload.ColumnBigint},
		{"int64 overflow falls to double", []string{"1", "99999999999999999999"}, pgload.ColumnDouble},
		{"decimals", []string{"99.5", "1"}, pgload.ColumnDouble},
		{"exponent", []string{"1e3", "2.5E-2"}, pgload.ColumnDouble},
		{"nan stays text", []string{"NaN", "1.5"}, pgload.ColumnText},
		{"infinity stays text", []string{"inf"}, pgload.ColumnText},
		{"hex stays text", []string{"0x1F"}, pgload.ColumnText},
		{"booleans", []string{"true", "FALSE", "True"}, pgload.ColumnBoolean},
		{"yes/no is text", []string{"yes", "no"}, pgload.ColumnText},
		{"mixed bool and int", []string{"true", "1"}, pgload.ColumnText},
		{"names", []string{"Alice", "Bob"}, pgload.ColumnText},
		{"padded number is text", []string{" 1"}, pgload.ColumnText},
		{"all empty", []string{"", ""}, pgload.ColumnText},
		{"no cells", nil, pgload.ColumnText},
		{"lone sign is text", []string{"-"}, pgload.ColumnText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferType(tt.cells))
		})
	}
}

func TestConvertCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		typ  pgload.ColumnType
		want any
	}{
		{"empty is null", "", pgload.ColumnBigint, nil},
		{"empty text is null", "", pgload.ColumnText, nil},
		{"bigint", "42", pgload.ColumnBigint, int64(42)},
		{"double", "99.5", pgload.ColumnDouble, 99.5},
		{"double from integer text", "7", pgload.ColumnDouble, 7.0},
		{"boolean", "TRUE", pgload.ColumnBoolean, true},
		{"boolean false", "false", pgload.ColumnBoolean, false},
		{"text", "Alice", pgload.ColumnText, "Alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertCell(tt.cell, tt.typ))
		})
	}
}
