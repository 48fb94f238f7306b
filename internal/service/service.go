package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"wellnest/internal/auth"
	"wellnest/internal/repo"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	Repo       *repo.Repo
	Auth       *auth.Manager
	TokenTTL   time.Duration
	RefreshTTL time.Duration
}

func New(repository *repo.Repo, authManager *auth.Manager) *Service {
	return &Service{Repo: repository, Auth: authManager, TokenTTL: time.Hour, RefreshTTL: 7 * 24 * time.Hour}
}

// Register creates the account and its settings row, so goals and budget have
// sane defaults right after signup.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	hash, err := s.Auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	userID, err := s.Repo.CreateUser(ctx, email, hash)
	if err != nil {
		return "", err
	}
	if _, err := s.Repo.EnsureSettings(ctx, userID); err != nil {
		return "", err
	}
	return userID, nil
}

// Login verifies credentials and opens a session. The returned user ID lets
// the caller kick a post-login generation run.
func (s *Service) Login(ctx context.Context, email, password string) (userID, accessToken, refreshToken string, err error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	if err := s.Auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	accessToken, err = s.Auth.GenerateToken(user.ID, s.TokenTTL)
	if err != nil {
		return "", "", "", err
	}
	refreshToken, err = s.generateRefreshToken()
	if err != nil {
		return "", "", "", err
	}
	if err := s.Repo.CreateSession(ctx, user.ID, refreshToken, time.Now().Add(s.RefreshTTL)); err != nil {
		return "", "", "", err
	}
	return user.ID, accessToken, refreshToken, nil
}

func (s *Service) Logout(ctx context.Context, userID, refreshToken string) error {
	return s.Repo.DeleteSession(ctx, userID, refreshToken)
}

func (s *Service) generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
