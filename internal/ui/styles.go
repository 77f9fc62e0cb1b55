// Package ui renders records for the terminal.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/taskdesk/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// StatusStyle colours a task status cell.
func StatusStyle(s models.TaskStatus) lipgloss.Style {
	switch s {
	case models.TaskNew, models.TaskReopened:
		return CellStyle.Foreground(lipgloss.Color("214"))
	case models.TaskInprogress:
		return CellStyle.Foreground(lipgloss.Color("212"))
	case models.TaskResolved, models.TaskClosed:
		return CellStyle.Foreground(lipgloss.Color("42"))
	}
	return CellStyle
}
