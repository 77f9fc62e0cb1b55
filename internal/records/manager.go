// Package records is the only writer of tracked records. Every mutation takes
// the acting viewer explicitly, runs the validation rules and stamps the audit
// fields before anything reaches storage.
package records

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/emilianohg/taskdesk/internal/blob"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/repository"
)

type Manager struct {
	projects   *repository.ProjectRepo
	tasks      *repository.TaskRepo
	comments   *repository.CommentRepo
	files      *repository.FileRepo
	timesheets *repository.TimeSheetRepo
	blobs      *blob.Store
	now        func() time.Time
}

func NewManager(db *sql.DB, blobs *blob.Store) *Manager {
	return &Manager{
		projects:   repository.NewProjectRepo(db),
		tasks:      repository.NewTaskRepo(db),
		comments:   repository.NewCommentRepo(db),
		files:      repository.NewFileRepo(db),
		timesheets: repository.NewTimeSheetRepo(db),
		blobs:      blobs,
		now:        time.Now,
	}
}

// stampCreate fills the audit fields of a new record.
func (m *Manager) stampCreate(a *models.Audit, v models.Viewer) {
	if a.CreatedBy == nil {
		a.CreatedBy = v.ActorID()
	}
	now := m.now()
	a.CreatedAt = now
	a.UpdatedAt = now
}

// stampUpdate carries the immutable audit fields over from stored.
func (m *Manager) stampUpdate(a *models.Audit, stored models.Audit) {
	a.CreatedBy = stored.CreatedBy
	a.CreatedAt = stored.CreatedAt
	a.UpdatedAt = m.now()
}

// removeBlobs deletes stored content after its rows are gone. Failures leave
// orphaned content behind and are only logged.
func (m *Manager) removeBlobs(paths []string) {
	for _, p := range paths {
		if err := m.blobs.Remove(p); err != nil {
			log.Printf("remove blob %s: %v", p, err)
		}
	}
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, models.ErrNotFound)
}

// NewProject returns a project holding the field defaults. Request input is
// decoded over it.
func NewProject() models.Project {
	return models.Project{
		Status:   models.ProjectNew,
		Priority: models.PriorityLow,
		Team:     []int64{},
		Audit:    models.Audit{IsActive: true},
	}
}

func NewTask() models.Task {
	return models.Task{
		Priority:        models.PriorityLow,
		Status:          models.TaskNew,
		TrackerType:     models.TrackerTask,
		Severity:        models.SeverityCritical,
		Reproducibility: models.ReproducibleAlways,
		Audit:           models.Audit{IsActive: true},
	}
}

func NewComment() models.Comment {
	return models.Comment{Audit: models.Audit{IsActive: true}}
}

func NewFile() models.File {
	return models.File{Audit: models.Audit{IsActive: true}}
}

func NewTimeSheet() models.TimeSheet {
	return models.TimeSheet{Audit: models.Audit{IsActive: true}}
}
