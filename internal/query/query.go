// Package query serves the read-only lookups external forms use to fill their
// pickers.
package query

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/repository"
)

type Service struct {
	projects *repository.ProjectRepo
	tasks    *repository.TaskRepo
	groups   *repository.GroupRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		projects: repository.NewProjectRepo(db),
		tasks:    repository.NewTaskRepo(db),
		groups:   repository.NewGroupRepo(db),
	}
}

// TasksForProject lists {id, title} for the tasks of a project. A missing or
// malformed id yields an empty list.
func (s *Service) TasksForProject(rawID string) ([]models.TaskRef, error) {
	id, ok := parseID(rawID)
	if !ok {
		return []models.TaskRef{}, nil
	}
	return s.tasks.RefsByProject(id)
}

// TeamMembers lists {id, username} for a project's team. It fails with
// models.ErrBadRequest when rawID is empty and models.ErrNotFound when no
// project has that id.
func (s *Service) TeamMembers(rawID string) ([]models.Member, error) {
	if strings.TrimSpace(rawID) == "" {
		return nil, fmt.Errorf("project id: %w", models.ErrBadRequest)
	}
	id, ok := parseID(rawID)
	if !ok {
		return nil, fmt.Errorf("project %q: %w", rawID, models.ErrNotFound)
	}

	p, err := s.projects.GetByID(id, access.All())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %d: %w", id, models.ErrNotFound)
	}
	return s.projects.TeamMembers(id)
}

// TeamChoices groups the users a project team can be picked from.
func (s *Service) TeamChoices() ([]models.GroupChoices, error) {
	groups, err := s.groups.GetAllWithMembers()
	if err != nil {
		return nil, err
	}
	return access.TeamChoices(groups), nil
}

// CommentTaskChoices lists the tasks v may attach a comment to.
func (s *Service) CommentTaskChoices(v models.Viewer) ([]models.TaskRef, error) {
	tasks, err := s.tasks.List(access.For(v).CommentTaskChoices(), nil)
	if err != nil {
		return nil, err
	}
	refs := make([]models.TaskRef, 0, len(tasks))
	for _, t := range tasks {
		refs = append(refs, models.TaskRef{ID: t.ID, Title: t.Title})
	}
	return refs, nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
