package repository

import (
	"database/sql"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
)

type GroupRepo struct {
	db *sql.DB
}

func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

func (r *GroupRepo) Create(name string) (*models.Group, error) {
	result, err := r.db.Exec("INSERT INTO auth_groups (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Group{ID: id, Name: name}, nil
}

func (r *GroupRepo) GetByName(name string) (*models.Group, error) {
	var g models.Group
	err := r.db.QueryRow("SELECT id, name FROM auth_groups WHERE name = ?", name).Scan(&g.ID, &g.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetOrCreate returns the named group, creating it if needed.
func (r *GroupRepo) GetOrCreate(name string) (*models.Group, error) {
	g, err := r.GetByName(name)
	if err != nil {
		return nil, err
	}
	if g != nil {
		return g, nil
	}
	return r.Create(name)
}

func (r *GroupRepo) AddMember(groupID, userID int64) error {
	_, err := r.db.Exec(
		"INSERT OR IGNORE INTO auth_user_groups (user_id, group_id) VALUES (?, ?)",
		userID, groupID,
	)
	return err
}

// GetAllWithMembers returns every group in id order with its users.
func (r *GroupRepo) GetAllWithMembers() ([]access.GroupMembers, error) {
	rows, err := r.db.Query(`
		SELECT g.id, g.name, u.id, u.username
		FROM auth_groups g
		LEFT JOIN auth_user_groups ug ON ug.group_id = g.id
		LEFT JOIN users u ON u.id = ug.user_id
		ORDER BY g.id, u.username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []access.GroupMembers
	for rows.Next() {
		var g models.Group
		var userID sql.NullInt64
		var username sql.NullString

		if err := rows.Scan(&g.ID, &g.Name, &userID, &username); err != nil {
			return nil, err
		}

		if len(groups) == 0 || groups[len(groups)-1].Group.ID != g.ID {
			groups = append(groups, access.GroupMembers{Group: g})
		}
		if userID.Valid {
			last := &groups[len(groups)-1]
			last.Members = append(last.Members, models.Member{ID: userID.Int64, Username: username.String})
		}
	}
	return groups, rows.Err()
}
