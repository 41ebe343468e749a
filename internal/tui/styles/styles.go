// ABOUTME: Shared lipgloss styles for the console TUI
// ABOUTME: Nkwabiz palette plus the panel, status and text styles screens compose

package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Status colors follow the send ledger: Secondary for accepted
// batches, Warning for partial or low credit, Danger for rejected or blocked.
var (
	Primary   = lipgloss.Color("#14B8A6") // Teal, brand
	Accent    = lipgloss.Color("#5EEAD4") // Light teal, focused titles and keys
	Secondary = lipgloss.Color("#22C55E") // Green, sent
	Warning   = lipgloss.Color("#EAB308") // Gold, low credit
	Danger    = lipgloss.Color("#DC2626") // Red, blocked
	Info      = lipgloss.Color("#6366F1") // Indigo, plan and buttons
	Muted     = lipgloss.Color("#64748B") // Slate, borders and hints
	Text      = lipgloss.Color("#F8FAFC")
	Surface   = lipgloss.Color("#1E293B") // Estimate panel background
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panel frames inactive content; ActivePanel frames the screen's focus
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Menu shortcut keys
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Counts, costs and balances
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Danger)
)
