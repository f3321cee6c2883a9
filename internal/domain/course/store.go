package course

import (
	"context"
	"database/sql"

	"campusleave/internal/platform/querier"
)

type StoreAPI interface {
	ListEnrollments(ctx context.Context, studentID string) ([]Enrollment, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEnrollments(ctx context.Context, studentID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT c.code, c.name, c.location, c.schedule, u.id, u.username
    FROM enrollments e
    JOIN courses c ON e.course_code = c.code
    LEFT JOIN users u ON c.teacher_id = u.id
    WHERE e.student_id = $1
    ORDER BY c.code
  `, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []Enrollment
	for rows.Next() {
		var enrollment Enrollment
		var teacherID, teacherName sql.NullString
		if err := rows.Scan(&enrollment.CourseCode, &enrollment.CourseName, &enrollment.Location, &enrollment.Schedule.Compact, &teacherID, &teacherName); err != nil {
			return nil, err
		}
		enrollment.TeacherID = teacherID.String
		enrollment.TeacherName = teacherName.String
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}
