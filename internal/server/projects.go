package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/records"
)

func (s *Server) listProjects(c *gin.Context) {
	projects, err := s.records.ListProjects(auth.ViewerFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) getProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := s.records.GetProject(auth.ViewerFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProject(c *gin.Context) {
	p := records.NewProject()
	if !bindJSON(c, &p) {
		return
	}
	p.ID = 0
	if err := s.records.CreateProject(auth.ViewerFrom(c), &p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v := auth.ViewerFrom(c)
	p, err := s.records.GetProject(v, id)
	if err != nil {
		fail(c, err)
		return
	}
	if !bindJSON(c, p) {
		return
	}
	p.ID = id
	if err := s.records.UpdateProject(v, p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.records.DeleteProject(auth.ViewerFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
