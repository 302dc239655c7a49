package ui

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles for one theme.
type styles struct {
	title    lipgloss.Style
	counts   lipgloss.Style
	cursor   lipgloss.Style
	taskID   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	status   lipgloss.Style
	danger   lipgloss.Style
	help     lipgloss.Style
	editBox  lipgloss.Style
}

// newStyles builds the style set for the configured theme. Anything other
// than "light" gets the dark palette.
func newStyles(theme string) styles {
	accent := lipgloss.Color("205")
	id := lipgloss.Color("99")
	dim := lipgloss.Color("241")
	faint := lipgloss.Color("238")
	red := lipgloss.Color("203")
	if theme == "light" {
		accent = lipgloss.Color("161")
		id = lipgloss.Color("55")
		dim = lipgloss.Color("245")
		faint = lipgloss.Color("250")
		red = lipgloss.Color("160")
	}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		counts:   lipgloss.NewStyle().Foreground(dim),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		taskID:   lipgloss.NewStyle().Foreground(id),
		selected: lipgloss.NewStyle().Bold(true),
		done:     lipgloss.NewStyle().Foreground(faint).Strikethrough(true),
		status:   lipgloss.NewStyle().Foreground(dim),
		danger:   lipgloss.NewStyle().Foreground(red),
		help:     lipgloss.NewStyle().Foreground(dim),
		editBox:  lipgloss.NewStyle().MarginLeft(6),
	}
}
