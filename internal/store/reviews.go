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

const (
	reviewPrefix       = "review:"
	reviewByPairPrefix = "idx:reviews:pair:" // <bookID>:<userID> -> review ID, enforces one review per user per book
	reviewByBookPrefix = "idx:reviews:book:" // <bookID>:<reviewID> -> review ID, for listing a book's reviews
)

func reviewPairKey(bookID, userID string) []byte {
	return []byte(reviewByPairPrefix + bookID + ":" + userID)
}

func reviewBookKey(bookID, reviewID string) []byte {
	return []byte(reviewByBookPrefix + bookID + ":" + reviewID)
}

// CreateReview stores a new review.
// Returns ErrReviewExists when the user already reviewed the book. The pair
// index is checked and written in the same transaction, so concurrent
// submissions for the same (book, user) cannot both succeed.
func (s *Store) CreateReview(_ context.Context, review *domain.Review) error {
	key := []byte(reviewPrefix + review.ID)
	pairKey := reviewPairKey(review.BookID, review.UserID)

	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(pairKey)
		if err == nil {
			return ErrReviewExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check review pair: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(pairKey, []byte(review.ID)); err != nil {
			return err
		}
		return txn.Set(reviewBookKey(review.BookID, review.ID), []byte(review.ID))
	})
}

// GetReview retrieves a review by ID.
func (s *Store) GetReview(_ context.Context, id string) (*domain.Review, error) {
	key := []byte(reviewPrefix + id)

	var review domain.Review
	if err := s.get(key, &review); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &review, nil
}

// GetReviewByBookAndUser retrieves the review a user left on a book.
func (s *Store) GetReviewByBookAndUser(ctx context.Context, bookID, userID string) (*domain.Review, error) {
	var reviewID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(reviewPairKey(bookID, userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			reviewID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("lookup review by pair: %w", err)
	}

	return s.GetReview(ctx, reviewID)
}

// UpdateReview updates an existing review.
// Book and user bindings never change, so the indexes stay put.
func (s *Store) UpdateReview(_ context.Context, review *domain.Review) error {
	key := []byte(reviewPrefix + review.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check review exists: %w", err)
	}
	if !exists {
		return ErrReviewNotFound
	}

	review.Touch()

	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// DeleteReview removes a review and its index entries. Idempotent.
func (s *Store) DeleteReview(_ context.Context, id string) error {
	key := []byte(reviewPrefix + id)

	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get review: %w", err)
		}

		var review domain.Review
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &review)
		})
		if err != nil {
			return fmt.Errorf("unmarshal review: %w", err)
		}

		if err := txn.Delete(reviewPairKey(review.BookID, review.UserID)); err != nil {
			return err
		}
		if err := txn.Delete(reviewBookKey(review.BookID, review.ID)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListReviewsForBook returns all reviews of a book, newest first.
func (s *Store) ListReviewsForBook(ctx context.Context, bookID string) ([]*domain.Review, error) {
	ids, err := s.reviewIDsForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	reviews := make([]*domain.Review, 0, len(ids))
	for _, id := range ids {
		review, err := s.GetReview(ctx, id)
		if errors.Is(err, ErrReviewNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	slices.SortFunc(reviews, func(a, b *domain.Review) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return reviews, nil
}

// DeleteReviewsForBook removes every review of a book.
// Called when the book itself is deleted so reviews don't orphan.
func (s *Store) DeleteReviewsForBook(ctx context.Context, bookID string) (int, error) {
	ids, err := s.reviewIDsForBook(ctx, bookID)
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := s.DeleteReview(ctx, id); err != nil {
			return 0, fmt.Errorf("delete review %s: %w", id, err)
		}
	}

	return len(ids), nil
}

// reviewIDsForBook collects review IDs from the book listing index.
func (s *Store) reviewIDsForBook(ctx context.Context, bookID string) ([]string, error) {
	prefix := []byte(reviewByBookPrefix + bookID + ":")
	var ids []string

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
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews for book: %w", err)
	}

	return ids, nil
}
