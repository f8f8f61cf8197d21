package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// maxCellWidth bounds a rendered cell in runes.
const maxCellWidth = 40

// RenderDataset renders the first limit rows of ds as a table, followed by a
// footer when rows were left out.
func RenderDataset(ds *pgload.Dataset, limit int, mode Mode) string {
	head := ds.Head(limit)

	t := newTable(mode).Headers(ds.ColumnNames()...)
	for _, row := range head {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		t.Row(cells...)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")

	if rest := ds.RowCount() - len(head); rest > 0 {
		footer := fmt.Sprintf("%s %d more %s", SymbolEllipsis, rest, plural(rest, "row", "rows"))
		b.WriteString(paint(mode, MutedStyle, footer))
		b.WriteString("\n")
	} else if ds.RowCount() == 0 {
		b.WriteString(paint(mode, MutedStyle, "(no rows)"))
		b.WriteString("\n")
	}
	return b.String()
}

func newTable(mode Mode) *table.Table {
	t := table.New()
	if mode == ModeStyled {
		return t.Border(lipgloss.RoundedBorder()).
			BorderStyle(BorderStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return HeaderStyle
				}
				return CellStyle
			})
	}
	return t.Border(lipgloss.ASCIIBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style { return CellStyle })
}

// FormatValue renders a dataset value for display. nil is shown as NULL.
func FormatValue(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		s = x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		s = fmt.Sprint(x)
	}
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
	if utf8.RuneCountInString(s) > maxCellWidth {
		runes := []rune(s)
		s = string(runes[:maxCellWidth-1]) + SymbolEllipsis
	}
	return s
}

func paint(mode Mode, style lipgloss.Style, s string) string {
	if mode != ModeStyled {
		return s
	}
	return style.Render(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
