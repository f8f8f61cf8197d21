package tui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// ConsoleReporter writes previews and status lines to a writer, normally stdout.
type ConsoleReporter struct {
	out         io.Writer
	previewRows int
	mode        Mode
	mu          sync.Mutex
}

var _ pgload.Reporter = (*ConsoleReporter)(nil)

// NewConsoleReporter creates a reporter for out. Styling is enabled only when
// out is a terminal. previewRows of zero suppresses the preview tables but
// keeps the status lines.
func NewConsoleReporter(out io.Writer, previewRows int) *ConsoleReporter {
	mode := ModePlain
	if f, ok := out.(*os.File); ok {
		mode = DetectMode(f)
	}
	return NewConsoleReporterWithMode(out, previewRows, mode)
}

// NewConsoleReporterWithMode creates a reporter with an explicit render mode.
func NewConsoleReporterWithMode(out io.Writer, previewRows int, mode Mode) *ConsoleReporter {
	if previewRows < 0 {
		previewRows = 0
	}
	return &ConsoleReporter{out: out, previewRows: previewRows, mode: mode}
}

// SourcePreview prints the banner for a parsed file and its leading rows.
func (r *ConsoleReporter) SourcePreview(file pgload.SourceFile, ds *pgload.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.line(BannerStyle, fmt.Sprintf("--- Data read from file %s into dataset %s. ---", file.Name, file.TableName))
	r.preview(ds)
}

// TableCreated prints the per-file success line.
func (r *ConsoleReporter) TableCreated(table pgload.TableRef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.line(SuccessStyle, fmt.Sprintf("--- DB table %s created successfully! ---", displayName(table)))
	fmt.Fprintln(r.out)
}

// TablePreview prints the leading rows read back from the database.
func (r *ConsoleReporter) TablePreview(table pgload.TableRef, ds *pgload.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.previewRows == 0 {
		return
	}
	r.line(MutedStyle, fmt.Sprintf("SELECT * FROM %s", displayName(table)))
	r.preview(ds)
}

// Summary prints the final line of a run, plus one line per failed file.
func (r *ConsoleReporter) Summary(s *pgload.LoadSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total, loaded := s.Total(), s.Loaded()
	switch {
	case s.DryRun:
		r.line(MutedStyle, fmt.Sprintf("Dry run: %d of %d %s parsed, nothing written to the %s database.",
			loaded, total, plural(total, "file", "files"), s.Database))
	case loaded == total:
		r.line(SuccessStyle, fmt.Sprintf("All %d %s imported into separate tables in the %s database.",
			total, plural(total, "file", "files"), s.Database))
	default:
		r.line(WarningStyle, fmt.Sprintf("%d of %d files imported into the %s database (%d failed).",
			loaded, total, s.Database, total-loaded))
	}

	for _, f := range s.Failed() {
		r.line(ErrorStyle, fmt.Sprintf("  %s %s: %v", SymbolCross, f.File.Name, f.Err))
	}
}

func (r *ConsoleReporter) preview(ds *pgload.Dataset) {
	if r.previewRows == 0 || ds == nil {
		return
	}
	fmt.Fprint(r.out, RenderDataset(ds, r.previewRows, r.mode))
}

func (r *ConsoleReporter) line(style lipgloss.Style, s string) {
	fmt.Fprintln(r.out, paint(r.mode, style, s))
}

// displayName omits the default schema so messages read "customer", not "public.customer".
func displayName(t pgload.TableRef) string {
	if t.Schema == "" || t.Schema == pgload.DefaultSchema {
		return t.Name
	}
	return t.String()
}
