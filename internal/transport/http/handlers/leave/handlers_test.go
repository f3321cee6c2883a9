package leavehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/course"
	"campusleave/internal/domain/leave"
	"campusleave/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type fakeLeaveStore struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveStore) Insert(ctx context.Context, req leave.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[req.ID] = req
	return nil
}

func (f *fakeLeaveStore) Update(ctx context.Context, req leave.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[req.ID]; !ok {
		return leave.ErrNotFound
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeLeaveStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[id]; !ok {
		return leave.ErrNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeLeaveStore) Get(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrNotFound
	}
	return req, nil
}

func (f *fakeLeaveStore) list(filter func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if filter(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeLeaveStore) ListByRequester(ctx context.Context, requesterID string) ([]leave.LeaveRequest, error) {
	return f.list(func(req leave.LeaveRequest) bool { return req.RequesterID == requesterID }), nil
}

func (f *fakeLeaveStore) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return f.list(func(leave.LeaveRequest) bool { return true }), nil
}

func (f *fakeLeaveStore) ListByStatus(ctx context.Context, status string) ([]leave.LeaveRequest, error) {
	return f.list(func(req leave.LeaveRequest) bool { return req.Status == status }), nil
}

type fakeFiles struct{}

func (fakeFiles) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	return "/files/" + path, nil
}

type fakeCourseStore struct {
	enrollments []course.Enrollment
}

func (f *fakeCourseStore) ListEnrollments(ctx context.Context, studentID string) ([]course.Enrollment, error) {
	return f.enrollments, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	courses := course.NewService(&fakeCourseStore{enrollments: []course.Enrollment{
		{
			CourseCode: "CS101",
			CourseName: "Intro to Programming",
			TeacherID:  "teacher-1",
			Schedule:   course.ScheduleRecord{Compact: "Mon 09:00-10:30"},
		},
	}})
	svc := leave.NewService(newFakeLeaveStore(), fakeFiles{}, nil, leave.RoleAuthorizer{}, 7*24*time.Hour)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	NewHandler(svc, courses, auth.Permissions{}).RegisterRoutes(router)
	return router
}

func token(t *testing.T, userID, name, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, auth.Claims{UserID: userID, Username: name, Role: role}, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, router http.Handler, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestLeaveWorkflowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	studentToken := token(t, "student-1", "Alice", auth.RoleStudent)
	teacherToken := token(t, "teacher-1", "Prof", auth.RoleTeacher)

	// Student submits a leave attached to CS101; 2025-10-13 is a Monday.
	rec, env := do(t, router, http.MethodPost, "/leave/requests", studentToken, map[string]string{
		"type":       "sick",
		"startAt":    "2025-10-13T08:00:00Z",
		"endAt":      "2025-10-13T11:00:00Z",
		"reason":     "flu",
		"courseCode": "CS101",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	var created leave.LeaveRequest
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, leave.StatusPending, created.Status)
	require.NotNil(t, created.Course)
	assert.Equal(t, "2025-10-13T09:00:00Z", created.StartAt.Format(time.RFC3339), "stored interval is the matched session")
	assert.Equal(t, "2025-10-13T10:30:00Z", created.EndAt.Format(time.RFC3339))

	// Teacher sees it in the pending queue.
	rec, env = do(t, router, http.MethodGet, "/leave/requests?status=pending", teacherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []leave.LeaveRequest
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	// Teacher approves.
	rec, env = do(t, router, http.MethodPost, "/leave/requests/"+created.ID+"/approve", teacherToken, map[string]string{"comment": "ok"})
	require.Equal(t, http.StatusOK, rec.Code)
	var approved leave.LeaveRequest
	require.NoError(t, json.Unmarshal(env.Data, &approved))
	assert.Equal(t, leave.StatusApproved, approved.Status)
	assert.Equal(t, "ok", approved.ReviewComment)

	// Once approved the owner can no longer edit.
	rec, env = do(t, router, http.MethodPut, "/leave/requests/"+created.ID, studentToken, map[string]string{
		"type":    "sick",
		"startAt": "2025-10-13T08:00:00Z",
		"endAt":   "2025-10-13T11:00:00Z",
		"reason":  "flu, still",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_state", env.Error.Code)
}

func TestCreateRequiresAuth(t *testing.T) {
	router := newTestRouter(t)
	rec, _ := do(t, router, http.MethodPost, "/leave/requests", "", map[string]string{"type": "sick"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStudentCannotReview(t *testing.T) {
	router := newTestRouter(t)
	studentToken := token(t, "student-1", "Alice", auth.RoleStudent)

	rec, env := do(t, router, http.MethodPost, "/leave/requests", studentToken, map[string]string{
		"type":    "personal",
		"startAt": "2025-10-14T08:00:00Z",
		"endAt":   "2025-10-14T12:00:00Z",
		"reason":  "errand",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created leave.LeaveRequest
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ = do(t, router, http.MethodPost, "/leave/requests/"+created.ID+"/approve", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateValidationErrorSurfacesField(t *testing.T) {
	router := newTestRouter(t)
	studentToken := token(t, "student-1", "Alice", auth.RoleStudent)

	rec, env := do(t, router, http.MethodPost, "/leave/requests", studentToken, map[string]string{
		"type":    "vacation",
		"startAt": "2025-10-13T08:00:00Z",
		"endAt":   "2025-10-13T11:00:00Z",
		"reason":  "trip",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
}

func TestCreateUnmatchedCourseRejected(t *testing.T) {
	router := newTestRouter(t)
	studentToken := token(t, "student-1", "Alice", auth.RoleStudent)

	// Tuesday interval cannot contain the Monday CS101 session.
	rec, env := do(t, router, http.MethodPost, "/leave/requests", studentToken, map[string]string{
		"type":       "sick",
		"startAt":    "2025-10-14T08:00:00Z",
		"endAt":      "2025-10-14T11:00:00Z",
		"reason":     "flu",
		"courseCode": "CS101",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
}
