package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/records"
)

func (s *Server) listTimeSheets(c *gin.Context) {
	sheets, err := s.records.ListTimeSheets(auth.ViewerFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sheets)
}

func (s *Server) getTimeSheet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ts, err := s.records.GetTimeSheet(auth.ViewerFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (s *Server) createTimeSheet(c *gin.Context) {
	ts := records.NewTimeSheet()
	if !bindJSON(c, &ts) {
		return
	}
	ts.ID = 0
	if err := s.records.CreateTimeSheet(auth.ViewerFrom(c), &ts); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ts)
}

func (s *Server) updateTimeSheet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v := auth.ViewerFrom(c)
	ts, err := s.records.GetTimeSheet(v, id)
	if err != nil {
		fail(c, err)
		return
	}
	if !bindJSON(c, ts) {
		return
	}
	ts.ID = id
	if err := s.records.UpdateTimeSheet(v, ts); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (s *Server) deleteTimeSheet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.records.DeleteTimeSheet(auth.ViewerFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
