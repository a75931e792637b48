package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commentservice "github.com/thenoetrevino/tablero/internal/services/comment"
)

type commentRequest struct {
	AuthorID int    `json:"author_id"`
	Content  string `json:"content"`
}

func (s *Server) handleListComments(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := s.app.CommentService.ListComments(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"comments": comments})
}

func (s *Server) handleCreateComment(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	comment, err := s.app.CommentService.CreateComment(c.Request.Context(), commentservice.CreateCommentRequest{
		TaskID:   taskID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"comment": comment})
}

func (s *Server) handleUpdateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondStatus(c, http.StatusBadRequest, err)
		return
	}

	comment, err := s.app.CommentService.UpdateComment(c.Request.Context(), id, req.Content)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"comment": comment})
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.app.CommentService.DeleteComment(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
