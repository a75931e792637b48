// Package services groups the business services. This file classifies
// their errors for the outer surfaces.
package services

import (
	"errors"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/comment"
	"github.com/thenoetrevino/tablero/internal/services/notification"
	"github.com/thenoetrevino/tablero/internal/services/project"
	"github.com/thenoetrevino/tablero/internal/services/task"
	"github.com/thenoetrevino/tablero/internal/services/user"
)

// validationErrors are the sentinels that mean the caller sent bad input
var validationErrors = []error{
	task.ErrEmptyTitle,
	task.ErrTitleTooLong,
	task.ErrMissingDueDate,
	task.ErrInvalidProgress,
	task.ErrInvalidTaskID,
	task.ErrInvalidProjectID,
	task.ErrInvalidStatus,
	task.ErrInvalidPriority,
	task.ErrInvalidPosition,
	task.ErrPositionTaken,
	task.ErrAttachmentTooLarge,
	task.ErrUnsupportedAttachment,
	task.ErrEmptyAttachmentName,
	task.ErrProjectNotFound,
	task.ErrAssigneeNotFound,

	project.ErrEmptyName,
	project.ErrNameTooLong,
	project.ErrInvalidProjectID,
	project.ErrInvalidStatus,
	project.ErrInvalidProgress,
	project.ErrEmptyTeamMember,

	user.ErrEmptyName,
	user.ErrNameTooLong,
	user.ErrInvalidEmail,
	user.ErrInvalidUserID,

	comment.ErrEmptyContent,
	comment.ErrContentTooLong,
	comment.ErrInvalidCommentID,
	comment.ErrInvalidTaskID,
	comment.ErrInvalidAuthorID,
	comment.ErrTaskNotFound,

	notification.ErrInvalidNotificationID,
	notification.ErrInvalidRecipientID,
	notification.ErrEmptyMessage,
	notification.ErrInvalidType,
	notification.ErrInvalidStatus,
	notification.ErrInvalidTransition,
	notification.ErrInvalidPage,

	models.ErrInvalidStatus,
	models.ErrInvalidPriority,
	models.ErrInvalidProjectStatus,
	models.ErrInvalidNotificationStatus,
	models.ErrInvalidNotificationType,
}

// IsValidation reports whether err was caused by invalid input
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the addressed record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound) || errors.Is(err, task.ErrAttachmentNotFound)
}
