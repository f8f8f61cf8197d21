package tui

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette. Styles are only applied in ModeStyled.
var (
	colorAccent = lipgloss.Color("39")
	colorRule   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorOK     = lipgloss.Color("34")
	colorWarn   = lipgloss.Color("214")
	colorFail   = lipgloss.Color("196")
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	CellStyle   = lipgloss.NewStyle().Padding(0, 1)
	BorderStyle = lipgloss.NewStyle().Foreground(colorRule)

	BannerStyle  = lipgloss.NewStyle().Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(colorDim)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorOK)
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarn)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorFail)
)

const (
	SymbolCross    = "✗"
	SymbolEllipsis = "…"
)
