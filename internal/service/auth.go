package service

import (
	"errors"
	"fmt"
	"time"

	"blogapi/internal/crypto"
	"blogapi/internal/models"
	"blogapi/internal/repository"

	"go.uber.org/zap"
)

var ( // Define custom errors
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DefaultRoleName is assigned to every newly registered user.
const DefaultRoleName = "user"

type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	Login(username, password string) (string, time.Time, error) // Returns JWT token, expiration time, and error
}

type authService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	tokens *TokenManager
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, tokens *TokenManager, logger *zap.Logger) AuthService {
	return &authService{
		users:  users,
		roles:  roles,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user with the default "user" role.
func (s *authService) Register(username, email, password string) (*models.User, error) {
	existing, err := s.users.GetUserByUsername(username)
	if err != nil {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role, err := s.roles.GetRoleByName(DefaultRoleName)
	if err != nil {
		s.logger.Error("Failed to look up default role", zap.Error(err))
		return nil, fmt.Errorf("failed to look up default role: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.users.CreateUser(user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a bearer token. An unknown
// username and a wrong password both return ErrInvalidCredentials.
func (s *authService) Login(username, password string) (string, time.Time, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if !crypto.VerifyPassword(user.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	tokenString, expirationTime, err := s.tokens.Issue(user.Username)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully.", zap.String("username", user.Username))
	return tokenString, expirationTime, nil
}
