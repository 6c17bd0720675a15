package api

import (
	"encoding/hex"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/config"
	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := store.New(filepath.Join(tmpDir, "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(hex.EncodeToString(key), 7*24*time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	services := &Services{
		Auth:   service.NewAuthService(st, tokens, logger),
		Book:   service.NewBookService(st, logger),
		Review: service.NewReviewService(st, logger),
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Name: "Inkwell Test",
		},
		Auth: config.AuthConfig{
			TokenKey:      key,
			TokenDuration: 7 * 24 * time.Hour,
			// Slow refill with a deep burst keeps the limiter out of the
			// way until a test drains it on purpose.
			LoginRatePerMinute: 60,
			LoginRateBurst:     10000,
		},
	}

	s := NewServer(st, services, cfg, logger)
	t.Cleanup(s.Shutdown)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// registerUser creates a user via the API and returns its token and ID.
func (ts *testServer) registerUser(t *testing.T, name, email string) (token string, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	return body.Token, body.User.ID
}

// createBook adds a book via the API on behalf of the token holder.
func (ts *testServer) createBook(t *testing.T, token, title string) BookResponse {
	t.Helper()

	resp := ts.api.Post("/api/books",
		"Authorization: Bearer "+token,
		map[string]any{
			"title":  title,
			"author": "Test Author",
			"year":   1994,
		})
	require.Equal(t, http.StatusCreated, resp.Code, "create book failed: %s", resp.Body.String())

	var body BookMessageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	return body.Book
}

// errorBody is the JSON shape of API error responses.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"error"`
}

func decodeError(t *testing.T, raw []byte) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
	require.Equal(t, "healthy", body.Components["database"].Status)
}
