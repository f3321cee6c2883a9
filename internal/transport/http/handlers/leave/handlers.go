package leavehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/course"
	"campusleave/internal/domain/leave"
	"campusleave/internal/domain/reports"
	"campusleave/internal/transport/http/api"
	"campusleave/internal/transport/http/middleware"
	"campusleave/internal/transport/http/shared"
)

const maxMultipartBytes = 64 << 20

type Handler struct {
	Service *leave.Service
	Courses *course.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *leave.Service, courses *course.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Courses: courses, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Post("/requests", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermLeaveReview, h.Perms)).Get("/requests/export.pdf", h.handleExportPDF)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Put("/requests/{requestID}", h.handleEdit)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Delete("/requests/{requestID}", h.handleDelete)
		r.With(middleware.RequirePermission(auth.PermLeaveReview, h.Perms)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermLeaveReview, h.Perms)).Post("/requests/{requestID}/reject", h.handleReject)
	})
}

func actorFrom(user auth.UserContext) leave.Actor {
	return leave.Actor{ID: user.UserID, Name: user.Username, Role: user.Role}
}

type requestPayload struct {
	Type       string `json:"type"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`
	Reason     string `json:"reason"`
	CourseCode string `json:"courseCode,omitempty"`
}

// decodeRequest accepts either a JSON body or a multipart form carrying
// the same fields plus "attachments" files.
func decodeRequest(r *http.Request) (requestPayload, []leave.AttachmentUpload, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
			return requestPayload{}, nil, fmt.Errorf("parse multipart form: %w", err)
		}
		payload := requestPayload{
			Type:       r.FormValue("type"),
			StartAt:    r.FormValue("startAt"),
			EndAt:      r.FormValue("endAt"),
			Reason:     r.FormValue("reason"),
			CourseCode: r.FormValue("courseCode"),
		}

		var uploads []leave.AttachmentUpload
		if r.MultipartForm != nil {
			for _, header := range r.MultipartForm.File["attachments"] {
				file, err := header.Open()
				if err != nil {
					return requestPayload{}, nil, fmt.Errorf("open attachment: %w", err)
				}
				data, err := io.ReadAll(file)
				_ = file.Close()
				if err != nil {
					return requestPayload{}, nil, fmt.Errorf("read attachment: %w", err)
				}
				uploads = append(uploads, leave.AttachmentUpload{
					FileName:    header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Size:        header.Size,
					Data:        data,
				})
			}
		}
		return payload, uploads, nil
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return requestPayload{}, nil, fmt.Errorf("decode json: %w", err)
	}
	return payload, nil, nil
}

// buildInput parses the payload dates and, when a course code was chosen,
// re-runs the matcher over the requested window so the attachment carries
// the concrete session the matcher found, never client-supplied times.
func (h *Handler) buildInput(r *http.Request, user auth.UserContext, payload requestPayload, uploads []leave.AttachmentUpload) (leave.RequestInput, *api.Error) {
	input := leave.RequestInput{
		Type:        payload.Type,
		Reason:      payload.Reason,
		Attachments: uploads,
	}

	startAt, err := shared.ParseDateTime(payload.StartAt)
	if err != nil {
		return input, &api.Error{Code: "validation_error", Message: "startAt must be an RFC3339 timestamp"}
	}
	endAt, err := shared.ParseDateTime(payload.EndAt)
	if err != nil {
		return input, &api.Error{Code: "validation_error", Message: "endAt must be an RFC3339 timestamp"}
	}
	input.StartAt = startAt
	input.EndAt = endAt

	if payload.CourseCode != "" {
		matches, err := h.Courses.MatchForStudent(r.Context(), user.UserID, startAt, endAt)
		if err != nil {
			return input, &api.Error{Code: "course_match_failed", Message: "failed to match courses"}
		}
		var attachment *leave.CourseAttachment
		for _, match := range matches {
			if match.Enrollment.CourseCode == payload.CourseCode {
				attachment = &leave.CourseAttachment{
					CourseCode:   match.Enrollment.CourseCode,
					CourseName:   match.Enrollment.CourseName,
					TeacherID:    match.Enrollment.TeacherID,
					TeacherName:  match.Enrollment.TeacherName,
					SessionStart: match.SessionStart,
					SessionEnd:   match.SessionEnd,
				}
				break
			}
		}
		if attachment == nil {
			return input, &api.Error{Code: "validation_error", Message: fmt.Sprintf("no session of %s falls within the requested interval", payload.CourseCode)}
		}
		input.Course = attachment
	}

	return input, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	payload, uploads, err := decodeRequest(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	input, apiErr := h.buildInput(r, user, payload, uploads)
	if apiErr != nil {
		api.Fail(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Create(r.Context(), actorFrom(user), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	payload, uploads, err := decodeRequest(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	input, apiErr := h.buildInput(r, user, payload, uploads)
	if apiErr != nil {
		api.Fail(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Edit(r.Context(), actorFrom(user), chi.URLParam(r, "requestID"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var (
		requests []leave.LeaveRequest
		err      error
	)
	if r.URL.Query().Get("status") == leave.StatusPending {
		requests, err = h.Service.ListPending(r.Context(), actorFrom(user))
	} else {
		requests, err = h.Service.List(r.Context(), actorFrom(user))
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if requests == nil {
		requests = []leave.LeaveRequest{}
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Get(r.Context(), actorFrom(user), chi.URLParam(r, "requestID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Delete(r.Context(), actorFrom(user), chi.URLParam(r, "requestID")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type reviewPayload struct {
	Comment string `json:"comment"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, leave.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, leave.StatusRejected)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, decision string) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload reviewPayload
	if r.Body != nil {
		// An empty body means no comment.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	req, err := h.Service.Review(r.Context(), actorFrom(user), chi.URLParam(r, "requestID"), decision, payload.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	requests, err := h.Service.List(r.Context(), actorFrom(user))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pdfBytes, err := reports.LeavePDF(requests)
	if err != nil {
		slog.Error("leave pdf export failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to generate export", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-requests.pdf"`)
	_, _ = w.Write(pdfBytes)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	var verr *leave.ValidationError
	switch {
	case errors.As(err, &verr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", verr.Error(), map[string]string{"field": verr.Field}, requestID)
	case errors.Is(err, leave.ErrUnauthorized):
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "operation not permitted", requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "operation not permitted in the current status", requestID)
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
	default:
		slog.Error("leave operation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "the operation could not be completed", requestID)
	}
}
