package coursehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/course"
	"campusleave/internal/transport/http/api"
	"campusleave/internal/transport/http/middleware"
	"campusleave/internal/transport/http/shared"
)

type Handler struct {
	Service *course.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *course.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCoursesRead, h.Perms)).Get("/enrollments", h.handleListEnrollments)
		r.With(middleware.RequirePermission(auth.PermCoursesRead, h.Perms)).Get("/match", h.handleMatch)
	})
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	enrollments, err := h.Service.ListEnrollments(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enrollments_failed", "failed to list enrollments", middleware.GetRequestID(r.Context()))
		return
	}
	if enrollments == nil {
		enrollments = []course.Enrollment{}
	}
	api.Success(w, enrollments, middleware.GetRequestID(r.Context()))
}

// handleMatch previews which enrolled courses have a session inside the
// interval, so the requester can pick the one the leave should attach to.
// An empty list is a valid response.
func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	startAt, err := shared.ParseDateTime(r.URL.Query().Get("start"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "start must be an RFC3339 timestamp", middleware.GetRequestID(r.Context()))
		return
	}
	endAt, err := shared.ParseDateTime(r.URL.Query().Get("end"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "end must be an RFC3339 timestamp", middleware.GetRequestID(r.Context()))
		return
	}
	if endAt.Before(startAt) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "end must not be before start", middleware.GetRequestID(r.Context()))
		return
	}

	matches, err := h.Service.MatchForStudent(r.Context(), user.UserID, startAt, endAt)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "course_match_failed", "failed to match courses", middleware.GetRequestID(r.Context()))
		return
	}
	if matches == nil {
		matches = []course.CourseMatch{}
	}
	api.Success(w, matches, middleware.GetRequestID(r.Context()))
}
