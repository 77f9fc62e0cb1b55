package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/records"
)

func (s *Server) listFiles(c *gin.Context) {
	files, err := s.records.ListFiles(auth.ViewerFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

func (s *Server) getFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	f, err := s.records.GetFile(auth.ViewerFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// createFile takes a multipart form with name, an optional task_id and the
// content in the file field.
func (s *Server) createFile(c *gin.Context) {
	f := records.NewFile()
	if !bindFileForm(c, &f) {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	content, err := header.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer content.Close()

	if f.Name == "" {
		f.Name = header.Filename
	}
	upload := records.Upload{Name: header.Filename, Content: content}
	if err := s.records.CreateFile(auth.ViewerFrom(c), &f, upload); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// updateFile accepts the same form as createFile; the file field is optional.
func (s *Server) updateFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v := auth.ViewerFrom(c)
	f, err := s.records.GetFile(v, id)
	if err != nil {
		fail(c, err)
		return
	}
	if !bindFileForm(c, f) {
		return
	}

	var upload *records.Upload
	if header, err := c.FormFile("file"); err == nil {
		content, err := header.Open()
		if err != nil {
			fail(c, err)
			return
		}
		defer content.Close()
		upload = &records.Upload{Name: header.Filename, Content: content}
	}

	if err := s.records.UpdateFile(v, f, upload); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) downloadFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	f, content, err := s.records.OpenFile(auth.ViewerFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", content, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", f.Name),
	})
}

func (s *Server) deleteFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.records.DeleteFile(auth.ViewerFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindFileForm applies the name, task_id and is_active form values present
// in the request. An empty task_id detaches the file.
func bindFileForm(c *gin.Context, f *models.File) bool {
	if name, ok := c.GetPostForm("name"); ok {
		f.Name = name
	}
	if raw, ok := c.GetPostForm("task_id"); ok {
		if raw == "" {
			f.TaskID = nil
		} else {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(c, http.StatusBadRequest, "Invalid task ID")
				return false
			}
			f.TaskID = &id
		}
	}
	if raw, ok := c.GetPostForm("is_active"); ok {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "Invalid is_active")
			return false
		}
		f.IsActive = active
	}
	return true
}
