package auth

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 12 * time.Hour

type Service struct {
	Store  *Store
	Secret string
}

func NewService(store *Store, secret string) *Service {
	return &Service{Store: store, Secret: secret}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, UserRecord, error) {
	user, err := s.Store.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", UserRecord{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", UserRecord{}, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", UserRecord{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, tokenTTL)
	if err != nil {
		return "", UserRecord{}, err
	}
	return token, user, nil
}
