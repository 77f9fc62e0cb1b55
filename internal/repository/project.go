package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
)

const projectColumns = `p.id, p.name, p.description, p.start_date, p.end_date, p.status, p.priority,
	p.created_at, p.updated_at, p.is_active, p.created_by`

type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create inserts the project and its team in one transaction and returns the new id.
func (r *ProjectRepo) Create(p *models.Project) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO projects (name, description, start_date, end_date, status, priority,
			created_at, updated_at, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.StartDate, nullDate(p.EndDate), p.Status, p.Priority,
		p.CreatedAt, p.UpdatedAt, p.IsActive, nullInt(p.CreatedBy))
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := replaceTeam(tx, id, p.Team); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// GetByID returns the project if it exists and passes f, nil otherwise.
func (r *ProjectRepo) GetByID(id int64, f access.Filter) (*models.Project, error) {
	where, args := f.SQL()
	row := r.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects p
		WHERE p.id = ? AND (`+where+`)
	`, append([]any{id}, args...)...)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadTeams([]*models.Project{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns the projects passing f. The team filter is an EXISTS
// subquery, so a project appears once however many members match.
func (r *ProjectRepo) List(f access.Filter) ([]models.Project, error) {
	where, args := f.SQL()
	rows, err := r.db.Query(`
		SELECT `+projectColumns+`
		FROM projects p
		WHERE `+where+`
		ORDER BY p.is_active, p.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*models.Project, len(projects))
	for i := range projects {
		ptrs[i] = &projects[i]
	}
	if err := r.loadTeams(ptrs); err != nil {
		return nil, err
	}
	return projects, nil
}

// Update writes every column except created_at and created_by, and replaces the team.
func (r *ProjectRepo) Update(p *models.Project) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?, status = ?,
			priority = ?, updated_at = ?, is_active = ?
		WHERE id = ?
	`, p.Name, p.Description, p.StartDate, nullDate(p.EndDate), p.Status,
		p.Priority, p.UpdatedAt, p.IsActive, p.ID)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}

	if err := replaceTeam(tx, p.ID, p.Team); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ProjectRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	return err
}

// TeamMembers lists the team of a project in user id order.
func (r *ProjectRepo) TeamMembers(projectID int64) ([]models.Member, error) {
	rows, err := r.db.Query(`
		SELECT u.id, u.username
		FROM project_team pt
		JOIN users u ON u.id = pt.user_id
		WHERE pt.project_id = ?
		ORDER BY u.id
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Username); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *ProjectRepo) loadTeams(projects []*models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Project, len(projects))
	placeholders := make([]string, 0, len(projects))
	args := make([]any, 0, len(projects))
	for _, p := range projects {
		p.Team = []int64{}
		byID[p.ID] = p
		placeholders = append(placeholders, "?")
		args = append(args, p.ID)
	}

	rows, err := r.db.Query(`
		SELECT project_id, user_id
		FROM project_team
		WHERE project_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY user_id
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var projectID, userID int64
		if err := rows.Scan(&projectID, &userID); err != nil {
			return err
		}
		byID[projectID].Team = append(byID[projectID].Team, userID)
	}
	return rows.Err()
}

func replaceTeam(tx *sql.Tx, projectID int64, team []int64) error {
	if _, err := tx.Exec("DELETE FROM project_team WHERE project_id = ?", projectID); err != nil {
		return err
	}
	for _, userID := range team {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO project_team (project_id, user_id) VALUES (?, ?)",
			projectID, userID,
		); err != nil {
			return fmt.Errorf("add team member %d: %w", userID, err)
		}
	}
	return nil
}

func scanProject(s scanner) (*models.Project, error) {
	var p models.Project
	var endDate models.Date
	var createdBy sql.NullInt64

	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.StartDate, &endDate, &p.Status, &p.Priority,
		&p.CreatedAt, &p.UpdatedAt, &p.IsActive, &createdBy,
	)
	if err != nil {
		return nil, err
	}

	p.EndDate = datePtr(endDate)
	p.CreatedBy = intPtr(createdBy)
	return &p, nil
}
