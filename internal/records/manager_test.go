package records

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/emilianohg/taskdesk/internal/blob"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/testsupport"
)

var clock = time.Date(2025, 2, 5, 10, 0, 0, 0, time.UTC)

func newManager(t *testing.T) (*Manager, *sql.DB, *blob.Store) {
	t.Helper()
	db := testsupport.OpenDB(t)
	blobs := blob.NewStore(t.TempDir())
	m := NewManager(db, blobs)
	m.now = func() time.Time { return clock }
	return m, db, blobs
}

func member(id int64, roles ...models.Role) models.Viewer {
	return models.Viewer{ID: id, Authenticated: true, Roles: roles}
}

func superuser(id int64) models.Viewer {
	return models.Viewer{ID: id, Authenticated: true, Superuser: true}
}

func ptr[T any](v T) *T { return &v }

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := notFound("task", 7)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("%v does not wrap ErrNotFound", err)
	}
	if err.Error() != "task 7: not found" {
		t.Errorf("message = %q", err)
	}
}
