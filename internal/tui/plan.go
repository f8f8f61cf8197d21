package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// RenderPlan writes the file to table mapping of a scan, followed by a
// warning per table name that more than one file maps to.
func RenderPlan(out io.Writer, sourcePath string, result pgload.ScanResult, mode Mode) {
	fmt.Fprintf(out, "%d %s in %s\n", len(result.Files), plural(len(result.Files), "file", "files"), sourcePath)
	if len(result.Files) == 0 {
		return
	}

	t := newTable(mode).Headers("#", "FILE", "TABLE", "SIZE")
	for i, f := range result.Files {
		t.Row(fmt.Sprint(i+1), f.Name, f.TableName, formatSize(f.SizeBytes))
	}
	fmt.Fprintln(out, t.Render())

	for _, c := range result.Collisions {
		msg := fmt.Sprintf("Table %s is written by %s; the last file wins (%s).",
			c.Table, strings.Join(c.Files, ", "), c.Files[len(c.Files)-1])
		fmt.Fprintln(out, paint(mode, WarningStyle, msg))
	}
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
