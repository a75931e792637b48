package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tablero/internal/models"
)

type bulkReadRequest struct {
	IDs []int `json:"ids" binding:"required"`
}

// handleListNotifications lists newest first. A page query parameter
// overrides offset.
func (s *Server) handleListNotifications(c *gin.Context) {
	var filter models.NotificationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	var (
		list []models.Notification
		err  error
	)
	if raw := c.Query("page"); raw != "" {
		page, convErr := strconv.Atoi(raw)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		list, err = s.app.NotificationService.GetPage(ctx, filter, page)
	} else {
		list, err = s.app.NotificationService.GetAll(ctx, filter)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"notifications": list})
}

func (s *Server) handleCreateNotification(c *gin.Context) {
	var n models.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	created, err := s.app.NotificationService.Create(c.Request.Context(), n)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"notification": created})
}

// recipientID reads the required recipient_id query parameter
func recipientID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Query("recipient_id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient_id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleNotificationCounts(c *gin.Context) {
	id, ok := recipientID(c)
	if !ok {
		return
	}
	counts, err := s.app.NotificationService.GetCounts(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, counts)
}

func (s *Server) handleUnreadCount(c *gin.Context) {
	id, ok := recipientID(c)
	if !ok {
		return
	}
	n, err := s.app.NotificationService.GetUnreadCount(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"unread": n})
}

// handleBulkRead marks every listed notification as read and reports how
// many changed.
func (s *Server) handleBulkRead(c *gin.Context) {
	var req bulkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	n, err := s.app.NotificationService.BulkMarkAsRead(c.Request.Context(), req.IDs)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"updated": n})
}

func (s *Server) handleGetNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	n, err := s.app.NotificationService.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"notification": n})
}

func (s *Server) handleUpdateNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch models.NotificationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	n, err := s.app.NotificationService.Update(c.Request.Context(), id, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"notification": n})
}

func (s *Server) handleDeleteNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.app.NotificationService.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleMarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	n, err := s.app.NotificationService.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"notification": n})
}

func (s *Server) handleArchive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	n, err := s.app.NotificationService.MarkAsArchived(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"notification": n})
}
