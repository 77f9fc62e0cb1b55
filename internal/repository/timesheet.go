package repository

import (
	"database/sql"
	"fmt"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
)

const timeSheetColumns = `ts.id, ts.project_id, ts.task_id, ts.date, ts.hours, ts.description,
	ts.created_at, ts.updated_at, ts.is_active, ts.created_by`

type TimeSheetRepo struct {
	db *sql.DB
}

func NewTimeSheetRepo(db *sql.DB) *TimeSheetRepo {
	return &TimeSheetRepo{db: db}
}

func (r *TimeSheetRepo) Create(ts *models.TimeSheet) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO timesheets (project_id, task_id, date, hours, description,
			created_at, updated_at, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ts.ProjectID, ts.TaskID, ts.Date, int64(ts.Hours), ts.Description,
		ts.CreatedAt, ts.UpdatedAt, ts.IsActive, nullInt(ts.CreatedBy))
	if err != nil {
		return 0, fmt.Errorf("insert timesheet: %w", err)
	}
	return result.LastInsertId()
}

func (r *TimeSheetRepo) GetByID(id int64, f access.Filter) (*models.TimeSheet, error) {
	where, args := f.SQL()
	row := r.db.QueryRow(`
		SELECT `+timeSheetColumns+`
		FROM timesheets ts
		WHERE ts.id = ? AND (`+where+`)
	`, append([]any{id}, args...)...)

	ts, err := scanTimeSheet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *TimeSheetRepo) List(f access.Filter) ([]models.TimeSheet, error) {
	where, args := f.SQL()
	rows, err := r.db.Query(`
		SELECT `+timeSheetColumns+`
		FROM timesheets ts
		WHERE `+where+`
		ORDER BY ts.is_active, ts.date, ts.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sheets := []models.TimeSheet{}
	for rows.Next() {
		ts, err := scanTimeSheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, *ts)
	}
	return sheets, rows.Err()
}

// Update leaves date, created_at and created_by untouched.
func (r *TimeSheetRepo) Update(ts *models.TimeSheet) error {
	_, err := r.db.Exec(`
		UPDATE timesheets SET project_id = ?, task_id = ?, hours = ?, description = ?,
			updated_at = ?, is_active = ?
		WHERE id = ?
	`, ts.ProjectID, ts.TaskID, int64(ts.Hours), ts.Description, ts.UpdatedAt, ts.IsActive, ts.ID)
	if err != nil {
		return fmt.Errorf("update timesheet %d: %w", ts.ID, err)
	}
	return nil
}

func (r *TimeSheetRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM timesheets WHERE id = ?", id)
	return err
}

func scanTimeSheet(s scanner) (*models.TimeSheet, error) {
	var ts models.TimeSheet
	var hours int64
	var createdBy sql.NullInt64

	err := s.Scan(
		&ts.ID, &ts.ProjectID, &ts.TaskID, &ts.Date, &hours, &ts.Description,
		&ts.CreatedAt, &ts.UpdatedAt, &ts.IsActive, &createdBy,
	)
	if err != nil {
		return nil, err
	}

	ts.Hours = models.Hours(hours)
	ts.CreatedBy = intPtr(createdBy)
	return &ts, nil
}
