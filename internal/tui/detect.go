package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how console output is rendered.
type Mode int

const (
	// ModePlain renders ASCII tables without color. Used for pipes, files and CI logs.
	ModePlain Mode = iota
	// ModeStyled renders rounded borders and colors for a human at the terminal.
	ModeStyled
)

// DetectMode determines how output written to out should be rendered.
//
// Returns ModePlain if:
//   - NO_COLOR is set (https://no-color.org)
//   - PGLOAD_PLAIN=1 is set
//   - out is nil or not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode(out *os.File) Mode {
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if os.Getenv("PGLOAD_PLAIN") == "1" {
		return ModePlain
	}
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return ModePlain
	}
	return ModeStyled
}
