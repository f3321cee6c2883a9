package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"campusleave/internal/domain/auth"
	"campusleave/internal/platform/config"
)

// Seed creates the demo teacher, student, courses and enrollments used in
// development. Every statement is an upsert, so repeated runs are harmless.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	teacherEmail := cfg.SeedTeacherEmail
	if teacherEmail == "" {
		teacherEmail = "teacher@campus.test"
	}
	teacherPassword := cfg.SeedTeacherPassword
	if teacherPassword == "" {
		teacherPassword = "teacher123"
	}
	studentEmail := cfg.SeedStudentEmail
	if studentEmail == "" {
		studentEmail = "student@campus.test"
	}
	studentPassword := cfg.SeedStudentPassword
	if studentPassword == "" {
		studentPassword = "student123"
	}

	teacherID, err := ensureUser(ctx, pool, "Prof. Lin", teacherEmail, teacherPassword, auth.RoleTeacher, "")
	if err != nil {
		return fmt.Errorf("seed teacher: %w", err)
	}
	studentID, err := ensureUser(ctx, pool, "Alex Chen", studentEmail, studentPassword, auth.RoleStudent, "S2025001")
	if err != nil {
		return fmt.Errorf("seed student: %w", err)
	}

	courses := []struct {
		code     string
		name     string
		location string
		schedule string
	}{
		{"CS101", "Introduction to Programming", "Hall A-204", "Mon 09:00-10:30"},
		{"CS201", "Data Structures", "Hall B-101", "Wed 14:00-15:30"},
		{"CS301", "Operating Systems", "Lab C-302", "Fri 10:00-11:30"},
	}
	for _, c := range courses {
		if err := ensureCourse(ctx, pool, c.code, c.name, c.location, c.schedule, teacherID); err != nil {
			return fmt.Errorf("seed course %s: %w", c.code, err)
		}
		if err := ensureEnrollment(ctx, pool, studentID, c.code); err != nil {
			return fmt.Errorf("seed enrollment %s: %w", c.code, err)
		}
	}

	slog.Info("seed complete", "teacher", teacherEmail, "student", studentEmail)
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, name, email, password, role, studentNo string) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	var id string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, student_no)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username, role = EXCLUDED.role
		RETURNING id`,
		name, email, hash, role, studentNo,
	).Scan(&id)
	return id, err
}

func ensureCourse(ctx context.Context, pool *pgxpool.Pool, code, name, location, schedule, teacherID string) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO courses (code, name, location, teacher_id, schedule)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, location = EXCLUDED.location,
			teacher_id = EXCLUDED.teacher_id, schedule = EXCLUDED.schedule`,
		code, name, location, teacherID, schedule,
	)
	return err
}

func ensureEnrollment(ctx context.Context, pool *pgxpool.Pool, studentID, courseCode string) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO enrollments (student_id, course_code)
		VALUES ($1, $2)
		ON CONFLICT (student_id, course_code) DO NOTHING`,
		studentID, courseCode,
	)
	return err
}
