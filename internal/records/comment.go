package records

import (
	"fmt"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/validation"
)

func (m *Manager) CreateComment(v models.Viewer, c *models.Comment) error {
	if err := m.validateComment(access.For(v), c); err != nil {
		return err
	}

	m.stampCreate(&c.Audit, v)
	id, err := m.comments.Create(c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (m *Manager) UpdateComment(v models.Viewer, c *models.Comment) error {
	policy := access.For(v)
	stored, err := m.comments.GetByID(c.ID, policy.Comments())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("comment", c.ID)
	}

	if err := m.validateComment(policy, c); err != nil {
		return err
	}

	m.stampUpdate(&c.Audit, stored.Audit)
	return m.comments.Update(c)
}

func (m *Manager) DeleteComment(v models.Viewer, id int64) error {
	stored, err := m.comments.GetByID(id, access.For(v).Comments())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("comment", id)
	}
	return m.comments.Delete(id)
}

func (m *Manager) GetComment(v models.Viewer, id int64) (*models.Comment, error) {
	c, err := m.comments.GetByID(id, access.For(v).Comments())
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("comment", id)
	}
	return c, nil
}

func (m *Manager) ListComments(v models.Viewer) ([]models.Comment, error) {
	return m.comments.List(access.For(v).Comments())
}

// validateComment also requires the task to be one the viewer may comment on.
func (m *Manager) validateComment(policy access.Policy, c *models.Comment) error {
	if err := validation.Comment(c); err != nil {
		return err
	}
	task, err := m.tasks.GetByID(c.TaskID, policy.CommentTaskChoices())
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task %d", validation.ErrInvalidChoice, c.TaskID)
	}
	return nil
}
