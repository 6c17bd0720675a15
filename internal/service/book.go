package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/authz"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// BookService handles the book catalog.
type BookService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(s *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  s,
		logger: logger,
	}
}

// CreateBookRequest contains the data for a new book.
type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Year        int    `json:"year" validate:"required"`
	Description string `json:"description,omitempty"`
	Genre       string `json:"genre,omitempty"`
}

// UpdateBookRequest contains partial book updates.
// Zero-valued fields are left unchanged.
type UpdateBookRequest struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Year        int    `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	Genre       string `json:"genre,omitempty"`
}

// BookPage is one page of the catalog listing.
type BookPage struct {
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalBooks int            `json:"totalBooks"`
	Books      []*domain.Book `json:"books"`
}

// Create adds a new book to the catalog on behalf of userID.
func (s *BookService) Create(ctx context.Context, userID string, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.New(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		Record:      domain.Record{ID: bookID},
		Title:       req.Title,
		Author:      req.Author,
		Year:        req.Year,
		Description: req.Description,
		Genre:       req.Genre,
		AddedBy:     userID,
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title, "added_by", userID)

	return book, nil
}

// Get retrieves a single book.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("Book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// List returns one page of the catalog, newest first.
func (s *BookService) List(ctx context.Context, page int) (*BookPage, error) {
	result, err := s.store.ListBooks(ctx, store.PageParams{Page: page})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := result.Items
	if books == nil {
		books = []*domain.Book{}
	}

	return &BookPage{
		Page:       result.Page,
		TotalPages: result.TotalPages,
		TotalBooks: result.Total,
		Books:      books,
	}, nil
}

// Update applies partial changes to a book. Only the user who added the
// book may edit it.
func (s *BookService) Update(ctx context.Context, bookID, callerID string, req UpdateBookRequest) (*domain.Book, error) {
	book, err := s.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireOwner(book.AddedBy, callerID, "Not authorized to edit this book"); err != nil {
		return nil, err
	}

	if req.Title != "" {
		book.Title = req.Title
	}
	if req.Author != "" {
		book.Author = req.Author
	}
	if req.Year != 0 {
		book.Year = req.Year
	}
	if req.Description != "" {
		book.Description = req.Description
	}
	if req.Genre != "" {
		book.Genre = req.Genre
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "book_id", book.ID, "by", callerID)

	return book, nil
}

// Delete removes a book and all of its reviews. Only the user who added
// the book may delete it.
func (s *BookService) Delete(ctx context.Context, bookID, callerID string) error {
	book, err := s.Get(ctx, bookID)
	if err != nil {
		return err
	}

	if err := authz.RequireOwner(book.AddedBy, callerID, "Not authorized to delete this book"); err != nil {
		return err
	}

	deleted, err := s.store.DeleteReviewsForBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("delete book reviews: %w", err)
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.logger.Info("book deleted", "book_id", bookID, "by", callerID, "reviews_removed", deleted)

	return nil
}
