package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

const bookPrefix = "book:"

// CreateBook stores a new book.
func (s *Store) CreateBook(_ context.Context, book *domain.Book) error {
	key := []byte(bookPrefix + book.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if exists {
		return ErrAlreadyExists
	}

	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(_ context.Context, id string) (*domain.Book, error) {
	key := []byte(bookPrefix + id)

	var book domain.Book
	if err := s.get(key, &book); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

// UpdateBook updates an existing book.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	key := []byte(bookPrefix + book.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if !exists {
		return ErrBookNotFound
	}

	book.Touch()

	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// DeleteBook removes a book by ID. Idempotent.
// Reviews of the book are removed separately via DeleteReviewsForBook.
func (s *Store) DeleteBook(_ context.Context, id string) error {
	key := []byte(bookPrefix + id)

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
}

// ListBooks returns one page of books, newest first.
func (s *Store) ListBooks(ctx context.Context, params PageParams) (PagedResult[*domain.Book], error) {
	books, err := s.allBooks(ctx)
	if err != nil {
		return PagedResult[*domain.Book]{}, err
	}

	// Newest first; ID breaks ties for records created in the same instant.
	slices.SortFunc(books, func(a, b *domain.Book) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return paginate(books, params), nil
}

// allBooks loads every stored book.
func (s *Store) allBooks(ctx context.Context) ([]*domain.Book, error) {
	prefix := []byte(bookPrefix)
	var books []*domain.Book

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			err := it.Item().Value(func(val []byte) error {
				var book domain.Book
				if err := json.Unmarshal(val, &book); err != nil {
					return fmt.Errorf("unmarshal book: %w", err)
				}
				books = append(books, &book)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return books, nil
}
