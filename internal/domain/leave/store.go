package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"campusleave/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const leaveColumns = `
    id, requester_id, requester_name, type, start_at, end_at, reason, status,
    attachments, course_code, course_name, course_teacher_id, course_teacher_name,
    session_start, session_end, review_comment, reviewed_by, created_at, updated_at`

func (s *Store) Insert(ctx context.Context, req LeaveRequest) error {
	courseCode, courseName, teacherID, teacherName, sessionStart, sessionEnd := courseFields(req.Course)
	var reviewedBy *string
	if req.ReviewedBy != "" {
		reviewedBy = &req.ReviewedBy
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_requests (
      id, requester_id, requester_name, type, start_at, end_at, reason, status,
      attachments, course_code, course_name, course_teacher_id, course_teacher_name,
      session_start, session_end, review_comment, reviewed_by, created_at, updated_at
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
  `, req.ID, req.RequesterID, req.RequesterName, req.Type, req.StartAt, req.EndAt, req.Reason, req.Status,
		req.Attachments, courseCode, courseName, teacherID, teacherName,
		sessionStart, sessionEnd, req.ReviewComment, reviewedBy, req.CreatedAt, req.UpdatedAt)
	return err
}

func (s *Store) Update(ctx context.Context, req LeaveRequest) error {
	courseCode, courseName, teacherID, teacherName, sessionStart, sessionEnd := courseFields(req.Course)
	var reviewedBy *string
	if req.ReviewedBy != "" {
		reviewedBy = &req.ReviewedBy
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET type = $2, start_at = $3, end_at = $4, reason = $5, status = $6,
        attachments = $7, course_code = $8, course_name = $9,
        course_teacher_id = $10, course_teacher_name = $11,
        session_start = $12, session_end = $13,
        review_comment = $14, reviewed_by = $15, updated_at = $16
    WHERE id = $1
  `, req.ID, req.Type, req.StartAt, req.EndAt, req.Reason, req.Status,
		req.Attachments, courseCode, courseName, teacherID, teacherName,
		sessionStart, sessionEnd, req.ReviewComment, reviewedBy, req.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (LeaveRequest, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+leaveColumns+" FROM leave_requests WHERE id = $1", id)
	req, err := scanLeave(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, ErrNotFound
	}
	return req, err
}

func (s *Store) ListByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+leaveColumns+`
    FROM leave_requests
    WHERE requester_id = $1
    ORDER BY created_at DESC, id ASC
  `, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (s *Store) ListAll(ctx context.Context) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+leaveColumns+`
    FROM leave_requests
    ORDER BY created_at DESC, id ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+leaveColumns+`
    FROM leave_requests
    WHERE status = $1
    ORDER BY created_at DESC, id ASC
  `, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func courseFields(course *CourseAttachment) (code, name, teacherID, teacherName, sessionStart, sessionEnd any) {
	if course == nil {
		return nil, nil, nil, nil, nil, nil
	}
	code, name, teacherName = course.CourseCode, course.CourseName, course.TeacherName
	if course.TeacherID != "" {
		teacherID = course.TeacherID
	}
	return code, name, teacherID, teacherName, course.SessionStart, course.SessionEnd
}

func scanLeave(row pgx.Row) (LeaveRequest, error) {
	var req LeaveRequest
	var courseCode, courseName, teacherID, teacherName, reviewedBy *string
	var sessionStart, sessionEnd *time.Time

	err := row.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.Type, &req.StartAt, &req.EndAt,
		&req.Reason, &req.Status, &req.Attachments, &courseCode, &courseName, &teacherID, &teacherName,
		&sessionStart, &sessionEnd, &req.ReviewComment, &reviewedBy, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return LeaveRequest{}, err
	}

	if reviewedBy != nil {
		req.ReviewedBy = *reviewedBy
	}
	if courseCode != nil {
		course := &CourseAttachment{CourseCode: *courseCode}
		if courseName != nil {
			course.CourseName = *courseName
		}
		if teacherID != nil {
			course.TeacherID = *teacherID
		}
		if teacherName != nil {
			course.TeacherName = *teacherName
		}
		if sessionStart != nil {
			course.SessionStart = *sessionStart
		}
		if sessionEnd != nil {
			course.SessionEnd = *sessionEnd
		}
		req.Course = course
	}
	if req.Attachments == nil {
		req.Attachments = []string{}
	}
	return req, nil
}

func scanLeaves(rows pgx.Rows) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
