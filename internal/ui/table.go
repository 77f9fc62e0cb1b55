package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"

	"github.com/emilianohg/taskdesk/internal/models"
)

const titleWidth = 40

// TaskTable renders tasks in the order given.
func TaskTable(tasks []models.Task) string {
	if len(tasks) == 0 {
		return DimStyle.Render("No tasks")
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			string(t.Status),
			string(t.Priority),
			truncate.StringWithTail(t.Title, titleWidth, "..."),
			t.ProjectName,
			due,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(DimStyle).
		Headers("ID", "STATUS", "PRIORITY", "TITLE", "PROJECT", "DUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if col == 1 {
				return StatusStyle(tasks[row].Status)
			}
			return CellStyle
		}).
		String()
}

// ProjectTable renders projects with the viewer's task count.
func ProjectTable(projects []models.Project) string {
	if len(projects) == 0 {
		return DimStyle.Render("No projects")
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		count := "-"
		if p.TaskCount != nil {
			count = strconv.Itoa(*p.TaskCount)
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			truncate.StringWithTail(p.Name, titleWidth, "..."),
			string(p.Status),
			string(p.Priority),
			p.StartDate.String(),
			count,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(DimStyle).
		Headers("ID", "NAME", "STATUS", "PRIORITY", "START", "TASKS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if !projects[row].IsActive {
				return CellStyle.Foreground(lipgloss.Color("241"))
			}
			return CellStyle
		}).
		String()
}

// UserTable lists accounts; inactive ones are dimmed.
func UserTable(users []models.User) string {
	if len(users) == 0 {
		return DimStyle.Render("No users")
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		role := "-"
		if u.IsSuperuser {
			role = "superuser"
		}
		login := "yes"
		if u.PasswordHash == "" {
			login = "no"
		}
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Username, role, login})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(DimStyle).
		Headers("ID", "USERNAME", "ROLE", "LOGIN").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if !users[row].IsActive {
				return CellStyle.Foreground(lipgloss.Color("241"))
			}
			return CellStyle
		}).
		String()
}
