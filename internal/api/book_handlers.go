package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/books",
		Summary:       "Add book",
		Description:   "Adds a new book to the catalog",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Returns one page of the catalog, newest first",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/books/{id}",
		Summary:     "Update book",
		Description: "Updates a book. Only the user who added the book may edit it.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book and its reviews. Only the user who added the book may delete it.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookRequest is the request body for creating a book.
type BookRequest struct {
	Title       string `json:"title,omitempty" doc:"Book title"`
	Author      string `json:"author,omitempty" doc:"Author name"`
	Year        int    `json:"year,omitempty" doc:"Publication year"`
	Description string `json:"description,omitempty" doc:"Optional description"`
	Genre       string `json:"genre,omitempty" doc:"Optional genre"`
}

// CreateBookInput wraps the book request for Huma.
type CreateBookInput struct {
	Body BookRequest
}

// UpdateBookInput wraps a partial book update for Huma.
// Omitted fields are left unchanged.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body BookRequest
}

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID          string    `json:"id" doc:"Book ID"`
	Title       string    `json:"title" doc:"Book title"`
	Author      string    `json:"author" doc:"Author name"`
	Year        int       `json:"year" doc:"Publication year"`
	Description string    `json:"description,omitempty" doc:"Description"`
	Genre       string    `json:"genre,omitempty" doc:"Genre"`
	AddedBy     string    `json:"addedBy" doc:"ID of the user who added the book"`
	CreatedAt   time.Time `json:"createdAt" doc:"Creation timestamp"`
	UpdatedAt   time.Time `json:"updatedAt" doc:"Last update timestamp"`
}

// BookMessageResponse pairs a status message with the affected book.
type BookMessageResponse struct {
	Message string       `json:"message" doc:"Status message"`
	Book    BookResponse `json:"book" doc:"Affected book"`
}

// BookMessageOutput wraps the book message response for Huma.
type BookMessageOutput struct {
	Body BookMessageResponse
}

// GetBookInput identifies a single book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// GetBookOutput wraps a single book for Huma.
type GetBookOutput struct {
	Body struct {
		Book BookResponse `json:"book" doc:"Requested book"`
	}
}

// ListBooksInput carries pagination parameters.
type ListBooksInput struct {
	Page int `query:"page" default:"1" minimum:"1" doc:"Page number, 1-based"`
}

// BookPageResponse is one page of the catalog listing.
type BookPageResponse struct {
	Page       int            `json:"page" doc:"Current page number"`
	TotalPages int            `json:"totalPages" doc:"Total number of pages"`
	TotalBooks int            `json:"totalBooks" doc:"Total number of books"`
	Books      []BookResponse `json:"books" doc:"Books on this page"`
}

// ListBooksOutput wraps the book page for Huma.
type ListBooksOutput struct {
	Body BookPageResponse
}

// === Handlers ===

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookMessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.Create(ctx, userID, service.CreateBookRequest{
		Title:       input.Body.Title,
		Author:      input.Body.Author,
		Year:        input.Body.Year,
		Description: input.Body.Description,
		Genre:       input.Body.Genre,
	})
	if err != nil {
		return nil, err
	}

	return &BookMessageOutput{
		Body: BookMessageResponse{
			Message: "Book added successfully",
			Book:    mapBook(book),
		},
	}, nil
}

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	page, err := s.services.Book.List(ctx, input.Page)
	if err != nil {
		return nil, err
	}

	books := make([]BookResponse, 0, len(page.Books))
	for _, book := range page.Books {
		books = append(books, mapBook(book))
	}

	return &ListBooksOutput{
		Body: BookPageResponse{
			Page:       page.Page,
			TotalPages: page.TotalPages,
			TotalBooks: page.TotalBooks,
			Books:      books,
		},
	}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*GetBookOutput, error) {
	book, err := s.services.Book.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &GetBookOutput{}
	out.Body.Book = mapBook(book)
	return out, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookMessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.Update(ctx, input.ID, userID, service.UpdateBookRequest{
		Title:       input.Body.Title,
		Author:      input.Body.Author,
		Year:        input.Body.Year,
		Description: input.Body.Description,
		Genre:       input.Body.Genre,
	})
	if err != nil {
		return nil, err
	}

	return &BookMessageOutput{
		Body: BookMessageResponse{
			Message: "Book updated successfully",
			Book:    mapBook(book),
		},
	}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *GetBookInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Book.Delete(ctx, input.ID, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book deleted successfully"}}, nil
}

// === Helpers ===

func mapBook(b *domain.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Year:        b.Year,
		Description: b.Description,
		Genre:       b.Genre,
		AddedBy:     b.AddedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
