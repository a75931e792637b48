package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tablero/internal/models"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
)

type createProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	DueDate     string               `json:"due_date"`
	TeamMembers []string             `json:"team_members"`
}

// handleListProjects returns every project matching the query filters.
func (s *Server) handleListProjects(c *gin.Context) {
	var filter models.ProjectFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	projects, err := s.app.ProjectService.ListProjects(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleCreateProject validates payload and persists a new project.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	project, err := s.app.ProjectService.CreateProject(c.Request.Context(), projectservice.CreateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     due,
		TeamMembers: req.TeamMembers,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := s.app.ProjectService.GetProject(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleUpdateProject applies a partial update.
func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	project, err := s.app.ProjectService.UpdateProject(c.Request.Context(), id, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject removes a project. Its tasks stay.
func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.app.ProjectService.DeleteProject(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleProjectUsers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	users, err := s.app.UserService.GetUsersByProject(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"users": users})
}
