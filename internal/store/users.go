package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// CreateUser creates a new user account.
// Returns ErrEmailExists when the email address is already registered.
// The email uniqueness check runs inside the write transaction, so two
// concurrent registrations for the same address cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	err := s.Users.Create(ctx, user.ID, user)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
// Lookup is case-insensitive.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "email", email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	return user, nil
}

// GetUsersByIDs retrieves multiple users at once, keyed by ID.
// Missing users are silently skipped so callers can tolerate deleted accounts.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	users := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if _, ok := users[id]; ok {
			continue
		}
		user, err := s.GetUser(ctx, id)
		if errors.Is(err, ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users[id] = user
	}
	return users, nil
}

// normalizeEmail normalizes an email address for consistent lookups.
// Lowercases and trims whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
