package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gradebook/internal/auth"
	apperrors "gradebook/internal/errors"
	"gradebook/internal/logger"
	"gradebook/internal/model"
	"gradebook/internal/repository"
)

const bcryptCost = 10

// Principal is the identity carried by a verified session token.
type Principal struct {
	Username string `json:"username"`
}

// AuthService handles registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	Authenticate(token string) (*Principal, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperrors.Validation("username and password are required")
	}

	// Check if user already exists
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrConflict)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Storage("check user existence", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrConflict)
		}
		return nil, apperrors.Storage("create user", err)
	}

	logger.Infof("registered user %s", username)
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.Validation("username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
		}
		return "", apperrors.Storage("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warningf("failed login for user %s", username)
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return token, nil
}

// Authenticate verifies a bearer token and returns its principal.
func (s *authService) Authenticate(token string) (*Principal, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &Principal{Username: claims.Username}, nil
}
