package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title  lipgloss.Style
	Volume lipgloss.Style
	Label  lipgloss.Style
	Grid   lipgloss.Style
	Card   lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title:  lipgloss.NewStyle().Bold(true),
		Volume: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Label:  lipgloss.NewStyle().Faint(true),
		Grid:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}
