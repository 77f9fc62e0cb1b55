package records

import (
	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/validation"
)

// CreateProject validates and stores p. Fields the viewer may not write are
// left at their zero value, so a viewer who may not set the name cannot
// create a project at all.
func (m *Manager) CreateProject(v models.Viewer, p *models.Project) error {
	policy := access.For(v)
	keepReadOnly(p, &models.Project{}, policy)
	applyProjectDefaults(p)

	if err := validation.Project(p); err != nil {
		return err
	}

	m.stampCreate(&p.Audit, v)
	id, err := m.projects.Create(p)
	if err != nil {
		return err
	}
	p.ID = id
	return m.countTasks(policy, p)
}

// UpdateProject writes p over the stored project with the same id. Read-only
// fields keep their stored value.
func (m *Manager) UpdateProject(v models.Viewer, p *models.Project) error {
	policy := access.For(v)
	stored, err := m.projects.GetByID(p.ID, policy.Projects())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("project", p.ID)
	}

	keepReadOnly(p, stored, policy)
	applyProjectDefaults(p)

	if err := validation.Project(p); err != nil {
		return err
	}

	m.stampUpdate(&p.Audit, stored.Audit)
	if err := m.projects.Update(p); err != nil {
		return err
	}
	return m.countTasks(policy, p)
}

// DeleteProject removes the project, its tasks and everything hanging off them.
func (m *Manager) DeleteProject(v models.Viewer, id int64) error {
	stored, err := m.projects.GetByID(id, access.For(v).Projects())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("project", id)
	}

	paths, err := m.files.PathsByProject(id)
	if err != nil {
		return err
	}
	if err := m.projects.Delete(id); err != nil {
		return err
	}
	m.removeBlobs(paths)
	return nil
}

func (m *Manager) GetProject(v models.Viewer, id int64) (*models.Project, error) {
	policy := access.For(v)
	p, err := m.projects.GetByID(id, policy.Projects())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("project", id)
	}
	if err := m.countTasks(policy, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns the visible projects with their per-viewer task counts.
func (m *Manager) ListProjects(v models.Viewer) ([]models.Project, error) {
	policy := access.For(v)
	projects, err := m.projects.List(policy.Projects())
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	for i := range projects {
		if err := m.countTasks(policy, &projects[i]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (m *Manager) countTasks(policy access.Policy, p *models.Project) error {
	n, err := m.tasks.Count(p.ID, policy.TaskCount())
	if err != nil {
		return err
	}
	p.TaskCount = &n
	return nil
}

func applyProjectDefaults(p *models.Project) {
	if p.Status == "" {
		p.Status = models.ProjectNew
	}
	if p.Priority == "" {
		p.Priority = models.PriorityLow
	}
	if p.Team == nil {
		p.Team = []int64{}
	}
}

// keepReadOnly copies every field the policy refuses from stored into p.
func keepReadOnly(p, stored *models.Project, policy access.Policy) {
	for _, field := range policy.ReadOnlyProjectFields() {
		switch field {
		case access.FieldIsActive:
			p.IsActive = stored.IsActive
		case access.FieldName:
			p.Name = stored.Name
		case access.FieldDescription:
			p.Description = stored.Description
		case access.FieldStartDate:
			p.StartDate = stored.StartDate
		case access.FieldEndDate:
			p.EndDate = stored.EndDate
		case access.FieldStatus:
			p.Status = stored.Status
		case access.FieldPriority:
			p.Priority = stored.Priority
		case access.FieldTeam:
			p.Team = stored.Team
		case access.FieldCreatedBy:
			// stamped by the audit helpers
		}
	}
}
