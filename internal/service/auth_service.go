package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/repository"
)

const minPasswordLen = 6

type AuthService struct {
	users  *repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users *repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a reader account and returns a session token.
// Roles are never taken from the registration request; only admins
// assign them, through the users endpoint.
func (s *AuthService) Register(name, email, password string) (string, *models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return "", nil, apperr.New(apperr.ErrValidation, "name, email and password are required")
	}
	if len(password) < minPasswordLen {
		return "", nil, apperr.New(apperr.ErrValidation, "password must be at least %d characters", minPasswordLen)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(&models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleReader,
	})
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.Get(id)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Login verifies credentials and returns a session token. Unknown
// email and wrong password produce the same answer.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, apperr.New(apperr.ErrValidation, "email and password are required")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return "", nil, err
	}
	if err != nil || !auth.CheckPassword(password, user.Password) {
		return "", nil, apperr.New(apperr.ErrUnauthenticated, "invalid credentials")
	}
	user.Password = ""

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Verify resolves a validated token's user from the store.
func (s *AuthService) Verify(claims *auth.Claims) (*models.User, error) {
	return s.users.Get(claims.UserID)
}
