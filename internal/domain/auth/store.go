package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"campusleave/internal/platform/querier"
)

var ErrUserNotFound = errors.New("user not found")

type UserRecord struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	StudentNo    string    `json:"studentNo,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (UserRecord, error) {
	var user UserRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, email, password_hash, role, student_no, created_at
    FROM users
    WHERE email = $1
  `, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.StudentNo, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserRecord{}, ErrUserNotFound
	}
	if err != nil {
		return UserRecord{}, err
	}
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (UserRecord, error) {
	var user UserRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, email, password_hash, role, student_no, created_at
    FROM users
    WHERE id = $1
  `, id).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.StudentNo, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserRecord{}, ErrUserNotFound
	}
	if err != nil {
		return UserRecord{}, err
	}
	return user, nil
}
