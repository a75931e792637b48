package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tablero/internal/models"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// errBadDate is returned for due dates that are neither a date nor RFC 3339
var errBadDate = errors.New("due_date must be YYYY-MM-DD or RFC 3339")

type createTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.Status       `json:"status"`
	Priority    models.Priority     `json:"priority"`
	DueDate     string              `json:"due_date"`
	Progress    int                 `json:"progress"`
	AssigneeID  *int                `json:"assignee_id"`
	ProjectID   int                 `json:"project_id"`
	Attachments []models.Attachment `json:"attachments"`
}

type moveRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// parseDate accepts a bare date or a full timestamp
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}

// handleListTasks lists tasks matching the query filters.
func (s *Server) handleListTasks(c *gin.Context) {
	var filter models.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	tasks, err := s.app.TaskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleCreateTask creates a task at the end of its column.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.app.TaskService.CreateTask(c.Request.Context(), taskservice.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     due,
		Progress:    req.Progress,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
		Attachments: req.Attachments,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.app.TaskService.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleUpdateTask applies a partial update.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.app.TaskService.UpdateTask(c.Request.Context(), id, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.app.TaskService.DeleteTask(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleMoveTask drops a task onto another column.
func (s *Server) handleMoveTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}
	status, err := models.ParseStatus(string(req.Status))
	if err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.app.TaskService.MoveTask(c.Request.Context(), id, status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

func (s *Server) handleAddAttachment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var a models.Attachment
	if err := c.ShouldBindJSON(&a); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.app.TaskService.AddAttachment(c.Request.Context(), id, a)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

func (s *Server) handleRemoveAttachment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.app.TaskService.RemoveAttachment(c.Request.Context(), id, c.Param("attachmentID"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}
