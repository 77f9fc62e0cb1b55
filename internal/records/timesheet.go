package records

import (
	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/validation"
)

// CreateTimeSheet stamps the entry date with the current time.
func (m *Manager) CreateTimeSheet(v models.Viewer, ts *models.TimeSheet) error {
	if err := m.validateTimeSheet(ts); err != nil {
		return err
	}

	m.stampCreate(&ts.Audit, v)
	ts.Date = ts.CreatedAt
	id, err := m.timesheets.Create(ts)
	if err != nil {
		return err
	}
	ts.ID = id
	return nil
}

// UpdateTimeSheet keeps the stored entry date.
func (m *Manager) UpdateTimeSheet(v models.Viewer, ts *models.TimeSheet) error {
	stored, err := m.timesheets.GetByID(ts.ID, access.For(v).TimeSheets())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("timesheet", ts.ID)
	}

	if err := m.validateTimeSheet(ts); err != nil {
		return err
	}

	ts.Date = stored.Date
	m.stampUpdate(&ts.Audit, stored.Audit)
	return m.timesheets.Update(ts)
}

func (m *Manager) DeleteTimeSheet(v models.Viewer, id int64) error {
	stored, err := m.timesheets.GetByID(id, access.For(v).TimeSheets())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("timesheet", id)
	}
	return m.timesheets.Delete(id)
}

func (m *Manager) GetTimeSheet(v models.Viewer, id int64) (*models.TimeSheet, error) {
	ts, err := m.timesheets.GetByID(id, access.For(v).TimeSheets())
	if err != nil {
		return nil, err
	}
	if ts == nil {
		return nil, notFound("timesheet", id)
	}
	return ts, nil
}

func (m *Manager) ListTimeSheets(v models.Viewer) ([]models.TimeSheet, error) {
	return m.timesheets.List(access.For(v).TimeSheets())
}

func (m *Manager) validateTimeSheet(ts *models.TimeSheet) error {
	var task *models.Task
	if ts.TaskID != 0 {
		t, err := m.tasks.GetByID(ts.TaskID, access.All())
		if err != nil {
			return err
		}
		task = t
	}
	return validation.TimeSheet(ts, task)
}
