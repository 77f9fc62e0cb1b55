package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/records"
)

// listTasks accepts an optional ?project= filter.
func (s *Server) listTasks(c *gin.Context) {
	var projectID *int64
	if raw := c.Query("project"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(c, http.StatusBadRequest, "Invalid project ID")
			return
		}
		projectID = &id
	}

	tasks, err := s.records.ListTasks(auth.ViewerFrom(c), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) getTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := s.records.GetTask(auth.ViewerFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createTask(c *gin.Context) {
	t := records.NewTask()
	if !bindJSON(c, &t) {
		return
	}
	t.ID = 0
	if err := s.records.CreateTask(auth.ViewerFrom(c), &t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v := auth.ViewerFrom(c)
	t, err := s.records.GetTask(v, id)
	if err != nil {
		fail(c, err)
		return
	}
	if !bindJSON(c, t) {
		return
	}
	t.ID = id
	if err := s.records.UpdateTask(v, t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.records.DeleteTask(auth.ViewerFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
