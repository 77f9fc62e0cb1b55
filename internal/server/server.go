// Package server exposes the records and lookups over a JSON HTTP API.
package server

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/blob"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/query"
	"github.com/emilianohg/taskdesk/internal/records"
	"github.com/emilianohg/taskdesk/internal/repository"
	"github.com/emilianohg/taskdesk/internal/validation"
)

type Server struct {
	records *records.Manager
	query   *query.Service
	users   *repository.UserRepo
	issuer  *auth.Issuer
}

func New(db *sql.DB, blobs *blob.Store, issuer *auth.Issuer) *Server {
	return &Server{
		records: records.NewManager(db, blobs),
		query:   query.NewService(db),
		users:   repository.NewUserRepo(db),
		issuer:  issuer,
	}
}

// Router builds the gin engine with middleware ahead of every route.
func (s *Server) Router(middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware...)

	r.POST("/login", s.login)

	// picker lookups are served without a token
	r.GET("/api/project-tasks", s.projectTasks)
	r.GET("/api/fetch-team-members", s.fetchTeamMembers)

	api := r.Group("/api", auth.Middleware(s.issuer, s.users))

	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)
	api.GET("/projects/team-choices", s.teamChoices)
	api.GET("/projects/read-only-fields", s.readOnlyFields)
	api.GET("/projects/:id", s.getProject)
	api.PUT("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)

	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.GET("/tasks/:id", s.getTask)
	api.PUT("/tasks/:id", s.updateTask)
	api.DELETE("/tasks/:id", s.deleteTask)

	api.GET("/comments", s.listComments)
	api.POST("/comments", s.createComment)
	api.GET("/comments/task-choices", s.commentTaskChoices)
	api.GET("/comments/:id", s.getComment)
	api.PUT("/comments/:id", s.updateComment)
	api.DELETE("/comments/:id", s.deleteComment)

	api.GET("/files", s.listFiles)
	api.POST("/files", s.createFile)
	api.GET("/files/:id", s.getFile)
	api.GET("/files/:id/download", s.downloadFile)
	api.PUT("/files/:id", s.updateFile)
	api.DELETE("/files/:id", s.deleteFile)

	api.GET("/timesheets", s.listTimeSheets)
	api.POST("/timesheets", s.createTimeSheet)
	api.GET("/timesheets/:id", s.getTimeSheet)
	api.PUT("/timesheets/:id", s.updateTimeSheet)
	api.DELETE("/timesheets/:id", s.deleteTimeSheet)

	return r
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := auth.Login(s.users, in.Username, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// fail maps err onto a response status.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrBadRequest),
		errors.Is(err, blob.ErrPathTooLong),
		validation.IsInvalid(err):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		writeError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID parses the :id parameter. Malformed ids are reported as missing records.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body over dst, so absent fields keep the value
// dst already holds.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
