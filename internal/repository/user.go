package repository

import (
	"database/sql"
	"fmt"

	"github.com/emilianohg/taskdesk/internal/models"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(username, passwordHash string, superuser bool) (*models.User, error) {
	result, err := r.db.Exec(
		"INSERT INTO users (username, password_hash, is_superuser) VALUES (?, ?, ?)",
		username, passwordHash, superuser,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *UserRepo) GetByID(id int64) (*models.User, error) {
	return r.get("WHERE id = ?", id)
}

func (r *UserRepo) GetByUsername(username string) (*models.User, error) {
	return r.get("WHERE username = ?", username)
}

func (r *UserRepo) get(where string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(
		"SELECT id, username, password_hash, is_superuser, is_active, created_at FROM users "+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsSuperuser, &u.IsActive, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetAll() ([]models.User, error) {
	rows, err := r.db.Query(
		"SELECT id, username, password_hash, is_superuser, is_active, created_at FROM users ORDER BY username",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsSuperuser, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) SetPassword(id int64, passwordHash string) error {
	_, err := r.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	return err
}

// Viewer loads an active user with the roles of their groups. It returns nil
// for unknown or inactive users.
func (r *UserRepo) Viewer(id int64) (*models.Viewer, error) {
	u, err := r.GetByID(id)
	if err != nil || u == nil || !u.IsActive {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT g.name
		FROM auth_user_groups ug
		JOIN auth_groups g ON g.id = ug.group_id
		WHERE ug.user_id = ?
		ORDER BY g.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	v := &models.Viewer{
		ID:            u.ID,
		Username:      u.Username,
		Authenticated: true,
		Superuser:     u.IsSuperuser,
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		v.Roles = append(v.Roles, models.RoleForGroup(name))
	}
	return v, rows.Err()
}
