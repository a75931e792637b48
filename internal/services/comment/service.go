package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
)

const maxContentLength = 1000

// Service defines comment operations on tasks
type Service interface {
	ListComments(ctx context.Context, taskID int) ([]models.Comment, error)
	CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, id int, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// CreateCommentRequest encapsulates data for creating a comment
type CreateCommentRequest struct {
	TaskID   int
	AuthorID int
	Content  string
}

type service struct {
	comments    database.CommentRepository
	tasks       database.TaskReader
	eventClient events.EventPublisher
}

// NewService creates a new comment service
func NewService(comments database.CommentRepository, tasks database.TaskReader, eventClient events.EventPublisher) Service {
	return &service{
		comments:    comments,
		tasks:       tasks,
		eventClient: eventClient,
	}
}

// ListComments returns a task's comments, oldest first, with authors
func (s *service) ListComments(ctx context.Context, taskID int) ([]models.Comment, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	comments, err := s.comments.GetAll(ctx, models.CommentFilter{TaskID: taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *service) CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.AuthorID <= 0 {
		return nil, ErrInvalidAuthorID
	}
	content, err := validateContent(req.Content)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, req.TaskID)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	c, err := s.comments.Create(ctx, models.Comment{
		TaskID:   req.TaskID,
		AuthorID: req.AuthorID,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.publishCommentEvent(task.ProjectID, c.ID)
	return c, nil
}

func (s *service) UpdateComment(ctx context.Context, id int, content string) (*models.Comment, error) {
	if id <= 0 {
		return nil, ErrInvalidCommentID
	}
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	c, err := s.comments.Update(ctx, id, content)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	s.publishCommentEvent(0, id)
	return c, nil
}

func (s *service) DeleteComment(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidCommentID
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.publishCommentEvent(0, id)
	return nil
}

// validateContent trims content and checks its length in characters
func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

func (s *service) publishCommentEvent(projectID, commentID int) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventCommentChanged,
		ProjectID: projectID,
		EntityID:  commentID,
	}, 3)
}
