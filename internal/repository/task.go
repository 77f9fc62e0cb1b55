package repository

import (
	"database/sql"
	"fmt"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
)

const taskColumns = `t.id, t.title, t.description, t.project_id, t.assigned_to, t.priority, t.status,
	t.tracker_type, t.severity, t.reproducibility, t.start_date, t.due_date,
	t.steps_to_reproduce, t.environment, t.created_at, t.updated_at, t.is_active, t.created_by, p.name`

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(t *models.Task) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO tasks (title, description, project_id, assigned_to, priority, status,
			tracker_type, severity, reproducibility, start_date, due_date,
			steps_to_reproduce, environment, created_at, updated_at, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.Title, t.Description, t.ProjectID, nullInt(t.AssignedTo), t.Priority, t.Status,
		t.TrackerType, t.Severity, t.Reproducibility, t.StartDate, nullDate(t.DueDate),
		t.StepsToReproduce, t.Environment, t.CreatedAt, t.UpdatedAt, t.IsActive, nullInt(t.CreatedBy))
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return result.LastInsertId()
}

// GetByID returns the task if it exists and passes f, nil otherwise.
func (r *TaskRepo) GetByID(id int64, f access.Filter) (*models.Task, error) {
	where, args := f.SQL()
	row := r.db.QueryRow(`
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = ? AND (`+where+`)
	`, append([]any{id}, args...)...)

	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the tasks passing f in status rank order, optionally limited to
// one project.
func (r *TaskRepo) List(f access.Filter, projectID *int64) ([]models.Task, error) {
	if projectID != nil {
		f = access.And(f, access.Where("t.project_id = ?", *projectID))
	}
	where, args := f.SQL()
	rows, err := r.db.Query(`
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE `+where+`
		ORDER BY `+access.TaskOrderBy(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

// Count counts the tasks of a project passing f.
func (r *TaskRepo) Count(projectID int64, f access.Filter) (int, error) {
	where, args := f.SQL()
	var n int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM tasks t
		WHERE t.project_id = ? AND (`+where+`)
	`, append([]any{projectID}, args...)...).Scan(&n)
	return n, err
}

// RefsByProject lists {id, title} for every task of a project in id order.
func (r *TaskRepo) RefsByProject(projectID int64) ([]models.TaskRef, error) {
	rows, err := r.db.Query(`
		SELECT id, title
		FROM tasks
		WHERE project_id = ?
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []models.TaskRef{}
	for rows.Next() {
		var ref models.TaskRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *TaskRepo) Update(t *models.Task) error {
	_, err := r.db.Exec(`
		UPDATE tasks SET title = ?, description = ?, project_id = ?, assigned_to = ?, priority = ?,
			status = ?, tracker_type = ?, severity = ?, reproducibility = ?, start_date = ?,
			due_date = ?, steps_to_reproduce = ?, environment = ?, updated_at = ?, is_active = ?
		WHERE id = ?
	`, t.Title, t.Description, t.ProjectID, nullInt(t.AssignedTo), t.Priority,
		t.Status, t.TrackerType, t.Severity, t.Reproducibility, t.StartDate,
		nullDate(t.DueDate), t.StepsToReproduce, t.Environment, t.UpdatedAt, t.IsActive, t.ID)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return nil
}

func (r *TaskRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}

func (r *TaskRepo) scanTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func scanTask(s scanner) (*models.Task, error) {
	var t models.Task
	var assignedTo, createdBy sql.NullInt64
	var dueDate models.Date

	err := s.Scan(
		&t.ID, &t.Title, &t.Description, &t.ProjectID, &assignedTo, &t.Priority, &t.Status,
		&t.TrackerType, &t.Severity, &t.Reproducibility, &t.StartDate, &dueDate,
		&t.StepsToReproduce, &t.Environment, &t.CreatedAt, &t.UpdatedAt, &t.IsActive, &createdBy,
		&t.ProjectName,
	)
	if err != nil {
		return nil, err
	}

	t.AssignedTo = intPtr(assignedTo)
	t.DueDate = datePtr(dueDate)
	t.CreatedBy = intPtr(createdBy)
	t.Status = models.NormalizeTaskStatus(t.Status)
	return &t, nil
}
