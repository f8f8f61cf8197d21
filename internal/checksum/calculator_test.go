package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.CalculateRaw([]byte(tt.content)))
		})
	}
}

func customers(rows ...[]any) *pgload.Dataset {
	return &pgload.Dataset{
		Columns: []pgload.Column{
			{Name: "id", Type: pgload.ColumnBigint},
			{Name: "name", Type: pgload.ColumnText},
		},
		Rows: rows,
	}
}

func TestCalculateDataset_OrderIndependent(t *testing.T) {
	calc := New()

	a := customers([]any{int64(1), "Alice"}, []any{int64(2), "Bob"})
	b := customers([]any{int64(2), "Bob"}, []any{int64(1), "Alice"})

	assert.Equal(t, calc.CalculateDataset(a), calc.CalculateDataset(b))
	assert.Len(t, calc.CalculateDataset(a), 64)
}

func TestCalculateDataset_Differences(t *testing.T) {
	calc := New()
	base := calc.CalculateDataset(customers([]any{int64(1), "Alice"}, []any{int64(2), "Bob"}))

	tests := []struct {
		name string
		ds   *pgload.Dataset
	}{
		{"missing row", customers([]any{int64(1), "Alice"})},
		{"duplicated row", customers([]any{int64(1), "Alice"}, []any{int64(1), "Alice"}, []any{int64(2), "Bob"})},
		{"changed value", customers([]any{int64(1), "Alicia"}, []any{int64(2), "Bob"})},
		{"null instead of value", customers([]any{int64(1), nil}, []any{int64(2), "Bob"})},
		{"string instead of integer", customers([]any{"1", "Alice"}, []any{"2", "Bob"})},
		{"renamed column", &pgload.Dataset{
			Columns: []pgload.Column{{Name: "id"}, {Name: "full_name"}},
			Rows:    [][]any{{int64(1), "Alice"}, {int64(2), "Bob"}},
		}},
		{"cells shifted across columns", customers([]any{int64(1), "Alice"}, []any{int64(2), "Bo"}, []any{"b"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, calc.CalculateDataset(tt.ds))
		})
	}
}

func TestCalculateDataset_EmptyStringIsNotNull(t *testing.T) {
	calc := New()
	assert.NotEqual(t,
		calc.CalculateDataset(customers([]any{int64(1), ""})),
		calc.CalculateDataset(customers([]any{int64(1), nil})),
	)
}

func TestCalculateDataset_IntegerWidths(t *testing.T) {
	calc := New()
	assert.Equal(t,
		calc.CalculateDataset(customers([]any{int64(7), "x"})),
		calc.CalculateDataset(customers([]any{int32(7), "x"})),
	)
}

func TestCalculateDataset_Nil(t *testing.T) {
	calc := New()
	assert.Equal(t, calc.CalculateDataset(&pgload.Dataset{}), calc.CalculateDataset(nil))
}
