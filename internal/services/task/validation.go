package task

import (
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

const (
	maxTitleLength    = 255
	maxAttachmentSize = 10 * 1024 * 1024
)

// AllowedMimeTypes lists the attachment types tasks accept
var AllowedMimeTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/webp",
	"application/pdf", "text/plain",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/zip",
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDueDate(due time.Time) error {
	if due.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}

func validateProgress(progress int) error {
	if progress < 0 || progress > models.MaxProgress {
		return ErrInvalidProgress
	}
	return nil
}

func validateStatus(s models.Status) error {
	if !s.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func validatePriority(p models.Priority) error {
	if !p.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

func validateAttachment(a models.Attachment) error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyAttachmentName
	}
	if a.Size > maxAttachmentSize {
		return ErrAttachmentTooLarge
	}
	if !slices.Contains(AllowedMimeTypes, a.MimeType) {
		return ErrUnsupportedAttachment
	}
	return nil
}

func validateCreateTask(req CreateTaskRequest) error {
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if err := validateDueDate(req.DueDate); err != nil {
		return err
	}
	if req.ProjectID <= 0 {
		return ErrInvalidProjectID
	}
	if err := validateProgress(req.Progress); err != nil {
		return err
	}
	if req.Status != "" {
		if err := validateStatus(req.Status); err != nil {
			return err
		}
	}
	if req.Priority != "" {
		if err := validatePriority(req.Priority); err != nil {
			return err
		}
	}
	for _, a := range req.Attachments {
		if err := validateAttachment(a); err != nil {
			return err
		}
	}
	return nil
}

func validatePatch(patch models.TaskPatch) error {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return err
		}
	}
	if patch.DueDate != nil {
		if err := validateDueDate(*patch.DueDate); err != nil {
			return err
		}
	}
	if patch.Progress != nil {
		if err := validateProgress(*patch.Progress); err != nil {
			return err
		}
	}
	if patch.Status != nil {
		if err := validateStatus(*patch.Status); err != nil {
			return err
		}
	}
	if patch.Priority != nil {
		if err := validatePriority(*patch.Priority); err != nil {
			return err
		}
	}
	if patch.ProjectID != nil && *patch.ProjectID <= 0 {
		return ErrInvalidProjectID
	}
	if patch.Position != nil && *patch.Position < models.FirstPosition {
		return ErrInvalidPosition
	}
	if patch.Attachments != nil {
		for _, a := range *patch.Attachments {
			if err := validateAttachment(a); err != nil {
				return err
			}
		}
	}
	return nil
}
