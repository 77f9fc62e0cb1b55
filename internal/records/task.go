package records

import (
	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/validation"
)

func (m *Manager) CreateTask(v models.Viewer, t *models.Task) error {
	applyTaskDefaults(t)
	if err := m.validateTask(t); err != nil {
		return err
	}

	m.stampCreate(&t.Audit, v)
	id, err := m.tasks.Create(t)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (m *Manager) UpdateTask(v models.Viewer, t *models.Task) error {
	stored, err := m.tasks.GetByID(t.ID, access.For(v).Tasks())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("task", t.ID)
	}

	applyTaskDefaults(t)
	if err := m.validateTask(t); err != nil {
		return err
	}

	m.stampUpdate(&t.Audit, stored.Audit)
	return m.tasks.Update(t)
}

// DeleteTask removes the task with its comments, files and time-sheets.
func (m *Manager) DeleteTask(v models.Viewer, id int64) error {
	stored, err := m.tasks.GetByID(id, access.For(v).Tasks())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("task", id)
	}

	paths, err := m.files.PathsByTask(id)
	if err != nil {
		return err
	}
	if err := m.tasks.Delete(id); err != nil {
		return err
	}
	m.removeBlobs(paths)
	return nil
}

func (m *Manager) GetTask(v models.Viewer, id int64) (*models.Task, error) {
	t, err := m.tasks.GetByID(id, access.For(v).Tasks())
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("task", id)
	}
	return t, nil
}

// ListTasks returns the visible tasks in status order, optionally for one project.
func (m *Manager) ListTasks(v models.Viewer, projectID *int64) ([]models.Task, error) {
	return m.tasks.List(access.For(v).Tasks(), projectID)
}

// validateTask loads the parent project and checks t against it.
func (m *Manager) validateTask(t *models.Task) error {
	var project *models.Project
	if t.ProjectID != 0 {
		p, err := m.projects.GetByID(t.ProjectID, access.All())
		if err != nil {
			return err
		}
		project = p
	}
	return validation.Task(t, project)
}

func applyTaskDefaults(t *models.Task) {
	t.Status = models.NormalizeTaskStatus(t.Status)
	if t.Status == "" {
		t.Status = models.TaskNew
	}
	if t.Priority == "" {
		t.Priority = models.PriorityLow
	}
	if t.TrackerType == "" {
		t.TrackerType = models.TrackerTask
	}
	if t.Severity == "" {
		t.Severity = models.SeverityCritical
	}
	if t.Reproducibility == "" {
		t.Reproducibility = models.ReproducibleAlways
	}
}
