// Package testsupport opens throwaway databases and inserts fixture rows for
// tests. Fixtures are written with plain SQL so tests of the repositories do
// not depend on the code under test.
package testsupport

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/emilianohg/taskdesk/internal/db"
	"github.com/emilianohg/taskdesk/internal/models"
)

// Day is the fixture instant used when a test does not care about times.
var Day = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

// Start is Day as a calendar date, the start of every fixture project and task.
var Start = models.DateOf(Day)

func Date(y int, m time.Month, d int) models.Date {
	return models.NewDate(y, m, d)
}

// OpenDB returns a migrated database in t's temp dir, closed at cleanup.
func OpenDB(t testing.TB) *sql.DB {
	t.Helper()

	database, err := db.OpenPath(filepath.Join(t.TempDir(), "taskdesk.sqlite"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.RunMigrations(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func execSQL(t testing.TB, database *sql.DB, query string, args ...any) int64 {
	t.Helper()
	result, err := database.Exec(query, args...)
	if err != nil {
		t.Fatalf("fixture %q: %v", query, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("fixture id: %v", err)
	}
	return id
}

// User inserts a user and adds them to the named groups, creating groups as needed.
func User(t testing.TB, database *sql.DB, username string, superuser bool, groups ...string) int64 {
	t.Helper()
	id := execSQL(t, database, "INSERT INTO users (username, is_superuser) VALUES (?, ?)", username, superuser)
	for _, name := range groups {
		execSQL(t, database, "INSERT OR IGNORE INTO auth_groups (name) VALUES (?)", name)
		var groupID int64
		if err := database.QueryRow("SELECT id FROM auth_groups WHERE name = ?", name).Scan(&groupID); err != nil {
			t.Fatalf("group %q: %v", name, err)
		}
		execSQL(t, database, "INSERT INTO auth_user_groups (user_id, group_id) VALUES (?, ?)", id, groupID)
	}
	return id
}

// Project inserts a project starting on Day with no end date.
func Project(t testing.TB, database *sql.DB, name string, createdBy int64, team ...int64) int64 {
	t.Helper()
	id := execSQL(t, database, `
		INSERT INTO projects (name, start_date, created_at, updated_at, created_by)
		VALUES (?, ?, ?, ?, ?)
	`, name, Start, Day, Day, nullable(createdBy))
	for _, userID := range team {
		execSQL(t, database, "INSERT INTO project_team (project_id, user_id) VALUES (?, ?)", id, userID)
	}
	return id
}

// Task inserts a task of projectID starting on Day.
func Task(t testing.TB, database *sql.DB, projectID int64, title, status string, assignedTo, createdBy int64) int64 {
	t.Helper()
	return execSQL(t, database, `
		INSERT INTO tasks (title, project_id, assigned_to, status, start_date, created_at, updated_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, title, projectID, nullable(assignedTo), status, Start, Day, Day, nullable(createdBy))
}

func Comment(t testing.TB, database *sql.DB, taskID int64, content string, createdBy int64) int64 {
	t.Helper()
	return execSQL(t, database, `
		INSERT INTO comments (task_id, content, created_at, updated_at, created_by)
		VALUES (?, ?, ?, ?, ?)
	`, taskID, content, Day, Day, nullable(createdBy))
}

// File inserts a file row; taskID 0 leaves the file unattached.
func File(t testing.TB, database *sql.DB, name, path string, taskID, createdBy int64) int64 {
	t.Helper()
	return execSQL(t, database, `
		INSERT INTO files (name, path, task_id, created_at, updated_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`, name, path, nullable(taskID), Day, Day, nullable(createdBy))
}

// nullable stores 0 as NULL.
func nullable(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
