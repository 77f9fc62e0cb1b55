package repository

import (
	"database/sql"
	"fmt"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
)

const commentColumns = `c.id, c.title, c.task_id, c.content, c.created_at, c.updated_at, c.is_active, c.created_by`

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(c *models.Comment) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO comments (title, task_id, content, created_at, updated_at, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nullString(c.Title), c.TaskID, c.Content, c.CreatedAt, c.UpdatedAt, c.IsActive, nullInt(c.CreatedBy))
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return result.LastInsertId()
}

// GetByID returns the comment if it exists and passes f, nil otherwise.
func (r *CommentRepo) GetByID(id int64, f access.Filter) (*models.Comment, error) {
	where, args := f.SQL()
	row := r.db.QueryRow(`
		SELECT `+commentColumns+`
		FROM comments c
		JOIN tasks t ON t.id = c.task_id
		WHERE c.id = ? AND (`+where+`)
	`, append([]any{id}, args...)...)

	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepo) List(f access.Filter) ([]models.Comment, error) {
	where, args := f.SQL()
	rows, err := r.db.Query(`
		SELECT `+commentColumns+`
		FROM comments c
		JOIN tasks t ON t.id = c.task_id
		WHERE `+where+`
		ORDER BY c.is_active, c.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func (r *CommentRepo) Update(c *models.Comment) error {
	_, err := r.db.Exec(`
		UPDATE comments SET title = ?, task_id = ?, content = ?, updated_at = ?, is_active = ?
		WHERE id = ?
	`, nullString(c.Title), c.TaskID, c.Content, c.UpdatedAt, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("update comment %d: %w", c.ID, err)
	}
	return nil
}

func (r *CommentRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	return err
}

func scanComment(s scanner) (*models.Comment, error) {
	var c models.Comment
	var title sql.NullString
	var createdBy sql.NullInt64

	if err := s.Scan(&c.ID, &title, &c.TaskID, &c.Content, &c.CreatedAt, &c.UpdatedAt, &c.IsActive, &createdBy); err != nil {
		return nil, err
	}

	c.Title = stringPtr(title)
	c.CreatedBy = intPtr(createdBy)
	return &c, nil
}
