package api

import (
	"encoding/json/v2"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBook(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.registerUser(t, "Ada", "ada@example.com")

	resp := ts.api.Post("/api/books",
		"Authorization: Bearer "+token,
		map[string]any{
			"title":       "The Dispossessed",
			"author":      "Ursula K. Le Guin",
			"year":        1974,
			"description": "An ambiguous utopia",
			"genre":       "Science Fiction",
		})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body BookMessageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "Book added successfully", body.Message)
	assert.Equal(t, "The Dispossessed", body.Book.Title)
	assert.Equal(t, "Science Fiction", body.Book.Genre)
	assert.Equal(t, userID, body.Book.AddedBy)
	assert.NotEmpty(t, body.Book.ID)
}

func TestCreateBookRequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/books", map[string]any{
		"title":  "No Token",
		"author": "Nobody",
		"year":   2020,
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "No token provided, access denied", decodeError(t, resp.Body.Bytes()).Message)
}

func TestCreateBookInvalidToken(t *testing.T) {
	ts := setupTestServer(t)

	// A garbage token is rejected differently from a missing one.
	resp := ts.api.Post("/api/books",
		"Authorization: Bearer not-a-real-token",
		map[string]any{
			"title":  "Bad Token",
			"author": "Nobody",
			"year":   2020,
		})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Token invalid or expired", decodeError(t, resp.Body.Bytes()).Message)
}

func TestCreateBookMissingFields(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "Ada", "ada@example.com")

	resp := ts.api.Post("/api/books",
		"Authorization: Bearer "+token,
		map[string]any{
			"title": "Author Missing",
		})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestGetBook(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "Ada", "ada@example.com")
	book := ts.createBook(t, token, "Middlemarch")

	resp := ts.api.Get("/api/books/" + book.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var body GetBookOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body.Body))
	assert.Equal(t, "Middlemarch", body.Body.Book.Title)
}

func TestGetBookNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/books/bok-missing")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Book not found", decodeError(t, resp.Body.Bytes()).Message)
}

func TestListBooksPagination(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "Ada", "ada@example.com")

	for i := 0; i < 7; i++ {
		ts.createBook(t, token, fmt.Sprintf("Book %02d", i))
	}

	resp := ts.api.Get("/api/books?page=1")
	require.Equal(t, http.StatusOK, resp.Code)

	var body BookPageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 2, body.TotalPages)
	assert.Equal(t, 7, body.TotalBooks)
	assert.Len(t, body.Books, 5)

	resp = ts.api.Get("/api/books?page=2")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Page)
	assert.Len(t, body.Books, 2)
}

func TestListBooksEmpty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var body BookPageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, 0, body.TotalBooks)
	assert.NotNil(t, body.Books)
	assert.Empty(t, body.Books)
}

func TestUpdateBook(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "Ada", "ada@example.com")
	book := ts.createBook(t, token, "First Draft")

	resp := ts.api.Put("/api/books/"+book.ID,
		"Authorization: Bearer "+token,
		map[string]any{
			"title": "Second Draft",
		})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body BookMessageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "Book updated successfully", body.Message)
	assert.Equal(t, "Second Draft", body.Book.Title)
	assert.Equal(t, "Test Author", body.Book.Author)
}

func TestUpdateBookNotOwner(t *testing.T) {
	ts := setupTestServer(t)
	ownerToken, _ := ts.registerUser(t, "Ada", "ada@example.com")
	otherToken, _ := ts.registerUser(t, "Eve", "eve@example.com")
	book := ts.createBook(t, ownerToken, "Ada's Book")

	resp := ts.api.Put("/api/books/"+book.ID,
		"Authorization: Bearer "+otherToken,
		map[string]any{
			"title": "Hijacked",
		})
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "Not authorized to edit this book", decodeError(t, resp.Body.Bytes()).Message)
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "Ada", "ada@example.com")
	book := ts.createBook(t, token, "Ephemeral")

	resp := ts.api.Delete("/api/books/"+book.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body MessageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Book deleted successfully", body.Message)

	gone := ts.api.Get("/api/books/" + book.ID)
	require.Equal(t, http.StatusNotFound, gone.Code)
}

func TestDeleteBookNotOwner(t *testing.T) {
	ts := setupTestServer(t)
	ownerToken, _ := ts.registerUser(t, "Ada", "ada@example.com")
	otherToken, _ := ts.registerUser(t, "Eve", "eve@example.com")
	book := ts.createBook(t, ownerToken, "Ada's Book")

	resp := ts.api.Delete("/api/books/"+book.ID, "Authorization: Bearer "+otherToken)
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "Not authorized to delete this book", decodeError(t, resp.Body.Bytes()).Message)
}
