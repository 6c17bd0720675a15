package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

type testServices struct {
	store   *store.Store
	auth    *AuthService
	books   *BookService
	reviews *ReviewService
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	s, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	tokens, err := auth.NewTokenService(strings.Repeat("ab", 32), 7*24*time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testServices{
		store:   s,
		auth:    NewAuthService(s, tokens, logger),
		books:   NewBookService(s, logger),
		reviews: NewReviewService(s, logger),
	}
}

// registerTestUser registers a user and returns them.
func (ts *testServices) registerTestUser(t *testing.T, email string) *AuthResponse {
	t.Helper()

	resp, err := ts.auth.Register(context.Background(), RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	return resp
}

// createTestBook creates a book owned by userID.
func (ts *testServices) createTestBook(t *testing.T, userID, title string) *domain.Book {
	t.Helper()

	book, err := ts.books.Create(context.Background(), userID, CreateBookRequest{
		Title:  title,
		Author: "Some Author",
		Year:   1999,
	})
	require.NoError(t, err)
	return book
}
