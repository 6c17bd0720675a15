// Package service implements the application logic between the HTTP API and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()

// AuthService handles user registration, login, and token verification.
type AuthService struct {
	store  *store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(s *store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  s,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and the authenticated user.
type AuthResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// Register creates a new user account and signs them in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.New(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Record:       domain.Record{ID: userID},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domainerrors.AlreadyExists("User already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	return &AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

// Login authenticates a user by email and password.
// Wrong email and wrong password produce the same error so the endpoint
// doesn't reveal which addresses are registered.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.InvalidCredentials("Invalid credentials")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domainerrors.InvalidCredentials("Invalid credentials")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

// VerifyToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	return s.tokens.VerifyToken(token)
}

// Authenticate verifies a bearer token and resolves its subject to a live
// user account. Used by the HTTP auth middleware; a token whose user no
// longer exists carries no identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return "", err
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return "", err
	}

	return user.ID, nil
}
