package leave

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Store   StoreAPI
	Files   FileStore
	Notify  Notifier
	Authz   Authorizer
	MaxSpan time.Duration

	now func() time.Time
}

func NewService(store StoreAPI, files FileStore, notify Notifier, authz Authorizer, maxSpan time.Duration) *Service {
	return &Service{
		Store:   store,
		Files:   files,
		Notify:  notify,
		Authz:   authz,
		MaxSpan: maxSpan,
		now:     time.Now,
	}
}

// Create validates the input, uploads attachments, and persists a new
// request in pending state. When a course attachment is present the stored
// interval is the concrete session range, not the raw requested window.
func (s *Service) Create(ctx context.Context, actor Actor, input RequestInput) (LeaveRequest, error) {
	if actor.ID == "" {
		return LeaveRequest{}, ErrUnauthorized
	}
	if err := ValidateInput(input, s.MaxSpan); err != nil {
		return LeaveRequest{}, err
	}

	urls, err := s.uploadAttachments(ctx, actor.ID, input.Attachments)
	if err != nil {
		return LeaveRequest{}, err
	}

	now := s.now()
	req := LeaveRequest{
		ID:            uuid.NewString(),
		RequesterID:   actor.ID,
		RequesterName: actor.Name,
		Type:          input.Type,
		StartAt:       input.StartAt,
		EndAt:         input.EndAt,
		Reason:        input.Reason,
		Status:        StatusPending,
		Attachments:   urls,
		Course:        input.Course,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.Course != nil {
		req.StartAt = input.Course.SessionStart
		req.EndAt = input.Course.SessionEnd
	}

	if err := s.Store.Insert(ctx, req); err != nil {
		return LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}

	if req.Course != nil && req.Course.TeacherID != "" {
		s.notify(ctx, req.Course.TeacherID, "leave.created",
			fmt.Sprintf("New leave request from %s", req.RequesterName),
			fmt.Sprintf("%s requested %s leave for %s (%s - %s).",
				req.RequesterName, req.Type, req.Course.CourseName,
				req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339)))
	}
	return req, nil
}

// Edit overwrites an owned pending or rejected request and resubmits it:
// status returns to pending and any previous review comment is cleared.
// Approved requests cannot be edited. The span cap applies only at creation.
func (s *Service) Edit(ctx context.Context, actor Actor, id string, input RequestInput) (LeaveRequest, error) {
	if actor.ID == "" {
		return LeaveRequest{}, ErrUnauthorized
	}

	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	if !s.Authz.CanEditOwn(actor, req) {
		return LeaveRequest{}, ErrForbidden
	}
	if req.Status == StatusApproved {
		return LeaveRequest{}, ErrInvalidState
	}
	if err := ValidateInput(input, 0); err != nil {
		return LeaveRequest{}, err
	}

	urls, err := s.uploadAttachments(ctx, actor.ID, input.Attachments)
	if err != nil {
		return LeaveRequest{}, err
	}

	req.Type = input.Type
	req.StartAt = input.StartAt
	req.EndAt = input.EndAt
	req.Reason = input.Reason
	req.Course = input.Course
	if input.Course != nil {
		req.StartAt = input.Course.SessionStart
		req.EndAt = input.Course.SessionEnd
	}
	req.Attachments = append(req.Attachments, urls...)
	req.Status = StatusPending
	req.ReviewComment = ""
	req.ReviewedBy = ""
	req.UpdatedAt = s.now()

	if err := s.Store.Update(ctx, req); err != nil {
		return LeaveRequest{}, fmt.Errorf("update leave request: %w", err)
	}
	return req, nil
}

// Review decides a pending request. Only reviewers may call it, and a
// request that is no longer pending cannot be decided again.
func (s *Service) Review(ctx context.Context, actor Actor, id, decision, comment string) (LeaveRequest, error) {
	if actor.ID == "" {
		return LeaveRequest{}, ErrUnauthorized
	}
	if !s.Authz.CanReview(actor) {
		return LeaveRequest{}, ErrForbidden
	}
	if decision != StatusApproved && decision != StatusRejected {
		return LeaveRequest{}, &ValidationError{Field: "decision", Reason: "must be approved or rejected"}
	}

	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	if req.Status != StatusPending {
		return LeaveRequest{}, ErrInvalidState
	}

	req.Status = decision
	req.ReviewComment = comment
	req.ReviewedBy = actor.ID
	req.UpdatedAt = s.now()

	if err := s.Store.Update(ctx, req); err != nil {
		return LeaveRequest{}, fmt.Errorf("update leave request: %w", err)
	}

	title := fmt.Sprintf("Your leave request was %s", decision)
	body := fmt.Sprintf("Leave %s - %s: %s.", req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339), decision)
	if comment != "" {
		body += " Comment: " + comment
	}
	s.notify(ctx, req.RequesterID, "leave.reviewed", title, body)

	return req, nil
}

// Delete removes an owned request while it is still pending. Rejected
// requests are edited and resubmitted, not deleted.
func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	if actor.ID == "" {
		return ErrUnauthorized
	}

	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.Authz.CanEditOwn(actor, req) {
		return ErrForbidden
	}
	if req.Status != StatusPending {
		return ErrInvalidState
	}
	return s.Store.Delete(ctx, id)
}

// List returns every request for reviewers and only the caller's own
// otherwise, newest first.
func (s *Service) List(ctx context.Context, actor Actor) ([]LeaveRequest, error) {
	if actor.ID == "" {
		return nil, ErrUnauthorized
	}
	if s.Authz.CanReview(actor) {
		return s.Store.ListAll(ctx)
	}
	return s.Store.ListByRequester(ctx, actor.ID)
}

// ListPending is the reviewer queue.
func (s *Service) ListPending(ctx context.Context, actor Actor) ([]LeaveRequest, error) {
	if actor.ID == "" {
		return nil, ErrUnauthorized
	}
	if !s.Authz.CanReview(actor) {
		return nil, ErrForbidden
	}
	return s.Store.ListByStatus(ctx, StatusPending)
}

func (s *Service) Get(ctx context.Context, actor Actor, id string) (LeaveRequest, error) {
	if actor.ID == "" {
		return LeaveRequest{}, ErrUnauthorized
	}
	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	if req.RequesterID != actor.ID && !s.Authz.CanReview(actor) {
		return LeaveRequest{}, ErrForbidden
	}
	return req, nil
}

// uploadAttachments stores each file in turn. A failure part-way through
// leaves the already-uploaded blobs in place; they are logged, not rolled
// back.
func (s *Service) uploadAttachments(ctx context.Context, requesterID string, uploads []AttachmentUpload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		path := fmt.Sprintf("%s/%s_%s", requesterID, uuid.NewString(), filepath.Base(upload.FileName))
		url, err := s.Files.Upload(ctx, path, upload.Data, upload.ContentType)
		if err != nil {
			if len(urls) > 0 {
				slog.Warn("attachment upload failed part-way, earlier blobs remain", "uploaded", len(urls), "err", err)
			}
			return nil, fmt.Errorf("upload attachment %s: %w", upload.FileName, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *Service) notify(ctx context.Context, recipientID, kind, title, body string) {
	if s.Notify == nil {
		return
	}
	if err := s.Notify.Create(ctx, recipientID, kind, title, body); err != nil {
		slog.Warn("leave notification failed", "kind", kind, "recipient", recipientID, "err", err)
	}
}
