package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/models"
)

func (s *Server) projectTasks(c *gin.Context) {
	tasks, err := s.query.TasksForProject(c.Query("project"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) fetchTeamMembers(c *gin.Context) {
	members, err := s.query.TeamMembers(c.Query("project_id"))
	switch {
	case errors.Is(err, models.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "No project ID provided")
	case errors.Is(err, models.ErrNotFound):
		writeError(c, http.StatusNotFound, "Project not found")
	case err != nil:
		fail(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"team_members": members})
	}
}

func (s *Server) teamChoices(c *gin.Context) {
	choices, err := s.query.TeamChoices()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, choices)
}

func (s *Server) readOnlyFields(c *gin.Context) {
	policy := access.For(auth.ViewerFrom(c))
	c.JSON(http.StatusOK, gin.H{"read_only_fields": policy.ReadOnlyProjectFields()})
}

func (s *Server) commentTaskChoices(c *gin.Context) {
	refs, err := s.query.CommentTaskChoices(auth.ViewerFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}
