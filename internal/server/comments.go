package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/records"
)

func (s *Server) listComments(c *gin.Context) {
	comments, err := s.records.ListComments(auth.ViewerFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) getComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	comment, err := s.records.GetComment(auth.ViewerFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *Server) createComment(c *gin.Context) {
	comment := records.NewComment()
	if !bindJSON(c, &comment) {
		return
	}
	comment.ID = 0
	if err := s.records.CreateComment(auth.ViewerFrom(c), &comment); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) updateComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v := auth.ViewerFrom(c)
	comment, err := s.records.GetComment(v, id)
	if err != nil {
		fail(c, err)
		return
	}
	if !bindJSON(c, comment) {
		return
	}
	comment.ID = id
	if err := s.records.UpdateComment(v, comment); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *Server) deleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.records.DeleteComment(auth.ViewerFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
