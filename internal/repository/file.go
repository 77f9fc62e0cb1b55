package repository

import (
	"database/sql"
	"fmt"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
)

const fileColumns = `f.id, f.name, f.path, f.task_id, f.created_at, f.updated_at, f.is_active, f.created_by`

type FileRepo struct {
	db *sql.DB
}

func NewFileRepo(db *sql.DB) *FileRepo {
	return &FileRepo{db: db}
}

func (r *FileRepo) Create(f *models.File) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO files (name, path, task_id, created_at, updated_at, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.Name, f.Path, nullInt(f.TaskID), f.CreatedAt, f.UpdatedAt, f.IsActive, nullInt(f.CreatedBy))
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	return result.LastInsertId()
}

// GetByID returns the file if it exists and passes filter, nil otherwise.
// Files without a task join no task row, so task predicates are NULL for them.
func (r *FileRepo) GetByID(id int64, filter access.Filter) (*models.File, error) {
	where, args := filter.SQL()
	row := r.db.QueryRow(`
		SELECT `+fileColumns+`
		FROM files f
		LEFT JOIN tasks t ON t.id = f.task_id
		WHERE f.id = ? AND (`+where+`)
	`, append([]any{id}, args...)...)

	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FileRepo) List(filter access.Filter) ([]models.File, error) {
	where, args := filter.SQL()
	rows, err := r.db.Query(`
		SELECT `+fileColumns+`
		FROM files f
		LEFT JOIN tasks t ON t.id = f.task_id
		WHERE `+where+`
		ORDER BY f.is_active, f.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

func (r *FileRepo) Update(f *models.File) error {
	_, err := r.db.Exec(`
		UPDATE files SET name = ?, path = ?, task_id = ?, updated_at = ?, is_active = ?
		WHERE id = ?
	`, f.Name, f.Path, nullInt(f.TaskID), f.UpdatedAt, f.IsActive, f.ID)
	if err != nil {
		return fmt.Errorf("update file %d: %w", f.ID, err)
	}
	return nil
}

func (r *FileRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM files WHERE id = ?", id)
	return err
}

// PathsByTask returns the stored paths of files attached to a task.
func (r *FileRepo) PathsByTask(taskID int64) ([]string, error) {
	return r.paths("SELECT path FROM files WHERE task_id = ?", taskID)
}

// PathsByProject returns the stored paths of files attached to any task of a project.
func (r *FileRepo) PathsByProject(projectID int64) ([]string, error) {
	return r.paths(`
		SELECT f.path
		FROM files f
		JOIN tasks t ON t.id = f.task_id
		WHERE t.project_id = ?
	`, projectID)
}

func (r *FileRepo) paths(query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func scanFile(s scanner) (*models.File, error) {
	var f models.File
	var taskID, createdBy sql.NullInt64

	if err := s.Scan(&f.ID, &f.Name, &f.Path, &taskID, &f.CreatedAt, &f.UpdatedAt, &f.IsActive, &createdBy); err != nil {
		return nil, err
	}

	f.TaskID = intPtr(taskID)
	f.CreatedBy = intPtr(createdBy)
	return &f, nil
}
