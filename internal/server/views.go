package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/gantt"
	"github.com/thenoetrevino/tablero/internal/models"
)

func (s *Server) handleDashboard(c *gin.Context) {
	ov, err := s.app.DashboardService.GetOverview(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, ov)
}

// handleBoard returns the three kanban columns for the filtered tasks.
func (s *Server) handleBoard(c *gin.Context) {
	var filter models.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	columns, err := s.app.TaskService.GetBoard(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"columns": columns})
}

// handleGantt lays the filtered tasks out on a weekly timeline.
// week_start accepts sunday, monday or saturday.
func (s *Server) handleGantt(c *gin.Context) {
	var filter models.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}
	weekStart := config.GanttConfig{WeekStart: c.Query("week_start")}.WeekStartDay()

	layout, err := s.app.TaskService.GetGantt(c.Request.Context(), filter, gantt.WithWeekStart(weekStart))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"layout":     layout,
		"total_days": layout.TotalDays(),
	})
}

func (s *Server) handleTaskStats(c *gin.Context) {
	projectID := 0
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		projectID = id
	}

	stats, err := s.app.TaskService.GetStats(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, stats)
}

func (s *Server) handleProjectStats(c *gin.Context) {
	stats, err := s.app.ProjectService.GetStats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, stats)
}
