package leave

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("leave request not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("authentication required")
)

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

const maxAttachmentBytes = 10 << 20 // 10 MiB per file

var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

var allowedTypes = map[string]bool{
	TypeSick:     true,
	TypePersonal: true,
	TypeOfficial: true,
}

// ValidateInput checks the requester-supplied fields. maxSpan caps the
// interval length; pass zero to skip the cap (edits keep whatever span the
// stored request already has).
func ValidateInput(input RequestInput, maxSpan time.Duration) *ValidationError {
	if !allowedTypes[input.Type] {
		return &ValidationError{Field: "type", Reason: "must be one of sick, personal, official"}
	}
	if input.StartAt.IsZero() {
		return &ValidationError{Field: "startAt", Reason: "is required"}
	}
	if input.EndAt.IsZero() {
		return &ValidationError{Field: "endAt", Reason: "is required"}
	}
	if input.EndAt.Before(input.StartAt) {
		return &ValidationError{Field: "endAt", Reason: "must not be before startAt"}
	}
	if maxSpan > 0 && input.EndAt.Sub(input.StartAt) > maxSpan {
		return &ValidationError{Field: "endAt", Reason: fmt.Sprintf("leave may not span more than %s", maxSpan)}
	}
	if strings.TrimSpace(input.Reason) == "" {
		return &ValidationError{Field: "reason", Reason: "is required"}
	}
	for _, attachment := range input.Attachments {
		if err := ValidateAttachment(attachment); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAttachment enforces the allowed media types and the per-file size
// limit before anything is uploaded.
func ValidateAttachment(upload AttachmentUpload) *ValidationError {
	if !allowedAttachmentTypes[upload.ContentType] {
		return &ValidationError{Field: "attachments", Reason: fmt.Sprintf("unsupported file type %s", upload.ContentType)}
	}
	if upload.Size > maxAttachmentBytes {
		return &ValidationError{Field: "attachments", Reason: fmt.Sprintf("file %s exceeds the 10 MiB limit", upload.FileName)}
	}
	return nil
}
