// Package validation holds the pure checks every record passes before it is
// written. Nothing here touches storage: cross-entity rules take the parent
// record as an argument.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/emilianohg/taskdesk/internal/models"
)

var (
	// ErrInvalidDateRange is returned when a start date falls after its end or due date.
	ErrInvalidDateRange = errors.New("start date cannot be later than end date")

	// ErrTaskBeforeProjectStart is returned when a task starts before its project.
	ErrTaskBeforeProjectStart = errors.New("task start date cannot be earlier than the project's start date")

	// ErrTaskAfterProjectEnd is returned when a task is due after its project ends.
	ErrTaskAfterProjectEnd = errors.New("task due date cannot be later than the project's end date")

	// ErrRequired is returned when a required field is empty.
	ErrRequired = errors.New("field is required")

	// ErrTooLong is returned when a string exceeds its column length.
	ErrTooLong = errors.New("value too long")

	// ErrInvalidChoice is returned for values outside a field's choice set.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidHours is returned when hours fall outside 0..999.99.
	ErrInvalidHours = errors.New("hours must be between 0 and 999.99")

	// ErrTaskNotInProject is returned when a time-sheet names a task from another project.
	ErrTaskNotInProject = errors.New("task does not belong to project")
)

const (
	MaxProjectName  = 200
	MaxTaskTitle    = 100
	MaxCommentTitle = 200
	MaxFileName     = 50
	MaxFilePath     = 200
)

// ProjectDates checks start <= end when both are set. Dates compare by calendar day.
func ProjectDates(start models.Date, end *models.Date) error {
	if !start.IsZero() && end != nil && start.After(*end) {
		return ErrInvalidDateRange
	}
	return nil
}

// TaskDates returns the first violated rule, checked in the order
// project start, project end, task start/due.
func TaskDates(start models.Date, due *models.Date, projectStart models.Date, projectEnd *models.Date) error {
	errs := taskDateErrors(start, due, projectStart, projectEnd)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// TaskDatesAll is TaskDates reporting every violation.
func TaskDatesAll(start models.Date, due *models.Date, projectStart models.Date, projectEnd *models.Date) error {
	return errors.Join(taskDateErrors(start, due, projectStart, projectEnd)...)
}

func taskDateErrors(start models.Date, due *models.Date, projectStart models.Date, projectEnd *models.Date) []error {
	var errs []error
	if !start.IsZero() && !projectStart.IsZero() && start.Before(projectStart) {
		errs = append(errs, fmt.Errorf("%w (%s)", ErrTaskBeforeProjectStart, projectStart))
	}
	if due != nil && projectEnd != nil && due.After(*projectEnd) {
		errs = append(errs, fmt.Errorf("%w (%s)", ErrTaskAfterProjectEnd, *projectEnd))
	}
	if !start.IsZero() && due != nil && start.After(*due) {
		errs = append(errs, fmt.Errorf("%w: start %s, due %s", ErrInvalidDateRange, start, *due))
	}
	return errs
}

// Project validates a whole project record.
func Project(p *models.Project) error {
	if err := requireText("name", p.Name, MaxProjectName); err != nil {
		return err
	}
	if p.StartDate.IsZero() {
		return required("start_date")
	}
	if !p.Status.Valid() {
		return invalidChoice("status", string(p.Status))
	}
	if !p.Priority.Valid() {
		return invalidChoice("priority", string(p.Priority))
	}
	return ProjectDates(p.StartDate, p.EndDate)
}

// Task validates a whole task record against its parent project.
func Task(t *models.Task, project *models.Project) error {
	if err := requireText("title", t.Title, MaxTaskTitle); err != nil {
		return err
	}
	if project == nil || t.ProjectID == 0 {
		return required("project")
	}
	if t.StartDate.IsZero() {
		return required("start_date")
	}
	if !t.Priority.Valid() {
		return invalidChoice("priority", string(t.Priority))
	}
	if !t.Status.Valid() {
		return invalidChoice("status", string(t.Status))
	}
	if !t.TrackerType.Valid() {
		return invalidChoice("tracker_type", string(t.TrackerType))
	}
	if !t.Severity.Valid() {
		return invalidChoice("severity", string(t.Severity))
	}
	if !t.Reproducibility.Valid() {
		return invalidChoice("reproducibility", string(t.Reproducibility))
	}
	return TaskDates(t.StartDate, t.DueDate, project.StartDate, project.EndDate)
}

func Comment(c *models.Comment) error {
	if c.TaskID == 0 {
		return required("task")
	}
	if c.Title != nil && utf8.RuneCountInString(*c.Title) > MaxCommentTitle {
		return tooLong("title", MaxCommentTitle)
	}
	if strings.TrimSpace(c.Content) == "" {
		return required("content")
	}
	return nil
}

func File(f *models.File) error {
	if err := requireText("name", f.Name, MaxFileName); err != nil {
		return err
	}
	if f.Path == "" {
		return required("file")
	}
	if len(f.Path) > MaxFilePath {
		return tooLong("file", MaxFilePath)
	}
	return nil
}

// TimeSheet validates a time-sheet against the task it books time on.
func TimeSheet(ts *models.TimeSheet, task *models.Task) error {
	if ts.ProjectID == 0 {
		return required("project")
	}
	if ts.TaskID == 0 || task == nil {
		return required("task")
	}
	if task.ProjectID != ts.ProjectID {
		return fmt.Errorf("%w: task %d, project %d", ErrTaskNotInProject, task.ID, ts.ProjectID)
	}
	if ts.Hours < 0 || ts.Hours > models.MaxHours {
		return fmt.Errorf("%w: got %s", ErrInvalidHours, ts.Hours)
	}
	if strings.TrimSpace(ts.Description) == "" {
		return required("description")
	}
	return nil
}

func requireText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return required(field)
	}
	if utf8.RuneCountInString(value) > max {
		return tooLong(field, max)
	}
	return nil
}

func required(field string) error {
	return fmt.Errorf("%w: %s", ErrRequired, field)
}

func tooLong(field string, max int) error {
	return fmt.Errorf("%w: %s exceeds %d characters", ErrTooLong, field, max)
}

func invalidChoice(field, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidChoice, field, value)
}

// IsInvalid reports whether err is one of the rule violations above.
func IsInvalid(err error) bool {
	for _, target := range []error{
		ErrInvalidDateRange, ErrTaskBeforeProjectStart, ErrTaskAfterProjectEnd, ErrRequired,
		ErrTooLong, ErrInvalidChoice, ErrInvalidHours, ErrTaskNotInProject,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
