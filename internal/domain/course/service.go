package course

import (
	"context"
	"log/slog"
	"time"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) ListEnrollments(ctx context.Context, studentID string) ([]Enrollment, error) {
	return s.Store.ListEnrollments(ctx, studentID)
}

// MatchForStudent loads the student's enrollments and returns the courses
// whose sessions fall inside the leave interval. Zero matches is a valid
// outcome, not an error.
func (s *Service) MatchForStudent(ctx context.Context, studentID string, intervalStart, intervalEnd time.Time) ([]CourseMatch, error) {
	enrollments, err := s.Store.ListEnrollments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	for _, enrollment := range enrollments {
		if _, ok := Resolve(enrollment.Schedule); !ok {
			slog.Warn("course schedule unparseable, excluded from matching",
				"courseCode", enrollment.CourseCode,
				"schedule", enrollment.Schedule.Compact)
		}
	}

	return MatchSessions(intervalStart, intervalEnd, enrollments), nil
}
