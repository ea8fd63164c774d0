package a2a

import "github.com/charmbracelet/lipgloss"

/*
Style is the palette used to print A2A objects on a terminal. The command
output reuses it so tasks and scenario lines look alike.
*/
type Style struct {
	Label lipgloss.Style
	Value lipgloss.Style
	Role  lipgloss.Style
	Muted lipgloss.Style
	Fail  lipgloss.Style
}

var DefaultStyle = Style{
	Label: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	Value: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Role:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}
