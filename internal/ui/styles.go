package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// hexStyle returns a foreground style for a catalog color.
func hexStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// section renders a centered heading flanked by rules, sized to width.
func section(title string, width int) string {
	label := " " + title + " "
	side := (width - lipgloss.Width(label)) / 2
	if side < 2 {
		return accentStyle.Render(title)
	}
	rule := dimStyle.Render(strings.Repeat("─", side))
	return rule + accentStyle.Render(label) + rule
}

// wrap fits text to width columns.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// meter renders a bracketed bar for a 0-100 value followed by the number.
func meter(value, width int) string {
	value = max(0, min(100, value))
	filled := value * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]" +
		fmt.Sprintf(" %3d", value)
}

// choice renders options on one line with the selected one highlighted.
func choice(options []string, selected int) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if i == selected {
			parts[i] = activeStyle.Render("▶ " + o)
		} else {
			parts[i] = dimStyle.Render("  " + o)
		}
	}
	return strings.Join(parts, " ")
}
