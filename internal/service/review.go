package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/authz"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// ReviewService handles book reviews and rating aggregation.
type ReviewService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(s *store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  s,
		logger: logger,
	}
}

// CreateReviewRequest contains the data for a new review.
type CreateReviewRequest struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText,omitempty"`
}

// UpdateReviewRequest contains partial review updates.
// Zero-valued fields are left unchanged.
type UpdateReviewRequest struct {
	Rating     int    `json:"rating,omitempty"`
	ReviewText string `json:"reviewText,omitempty"`
}

// ReviewWithUser is a review joined with its author for display.
type ReviewWithUser struct {
	ID         string            `json:"id"`
	BookID     string            `json:"bookId"`
	Rating     int               `json:"rating"`
	ReviewText string            `json:"reviewText,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	User       domain.PublicUser `json:"user"`
}

// BookReviews is the full review listing for a book with its aggregates.
type BookReviews struct {
	TotalReviews  int              `json:"totalReviews"`
	AverageRating float64          `json:"averageRating"`
	Reviews       []ReviewWithUser `json:"reviews"`
}

// RatingSummary holds just the aggregates for a book.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// Create adds userID's review of a book. A user may review a book once.
func (s *ReviewService) Create(ctx context.Context, bookID, userID string, req CreateReviewRequest) (*domain.Review, error) {
	if !domain.ValidRating(req.Rating) {
		return nil, domainerrors.Validation("Rating must be between 1 and 5")
	}

	if _, err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	// Friendly pre-check; the store's pair index closes the race.
	if _, err := s.store.GetReviewByBookAndUser(ctx, bookID, userID); err == nil {
		return nil, domainerrors.DuplicateReview("You already reviewed this book")
	} else if !errors.Is(err, store.ErrReviewNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	reviewID, err := id.New(id.PrefixReview)
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		Record:     domain.Record{ID: reviewID},
		BookID:     bookID,
		UserID:     userID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}
	review.InitTimestamps()

	if err := s.store.CreateReview(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewExists) {
			return nil, domainerrors.DuplicateReview("You already reviewed this book")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("review created", "review_id", review.ID, "book_id", bookID, "user_id", userID, "rating", req.Rating)

	return review, nil
}

// ListForBook returns every review of a book, newest first, joined with
// review authors and topped with the rating aggregates.
// An unknown book simply has no reviews; only Create insists the book exists.
func (s *ReviewService) ListForBook(ctx context.Context, bookID string) (*BookReviews, error) {
	reviews, err := s.store.ListReviewsForBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	userIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		userIDs = append(userIDs, r.UserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load review authors: %w", err)
	}

	joined := make([]ReviewWithUser, 0, len(reviews))
	for _, r := range reviews {
		rw := ReviewWithUser{
			ID:         r.ID,
			BookID:     r.BookID,
			Rating:     r.Rating,
			ReviewText: r.ReviewText,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		}
		if user, ok := users[r.UserID]; ok {
			rw.User = user.Public()
		} else {
			// Author account is gone; keep the review with a bare ID.
			rw.User = domain.PublicUser{ID: r.UserID}
		}
		joined = append(joined, rw)
	}

	return &BookReviews{
		TotalReviews:  len(reviews),
		AverageRating: averageRating(reviews),
		Reviews:       joined,
	}, nil
}

// Summary returns the rating aggregates for a book.
// Like ListForBook, an unknown book reports zero reviews.
func (s *ReviewService) Summary(ctx context.Context, bookID string) (*RatingSummary, error) {
	reviews, err := s.store.ListReviewsForBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return &RatingSummary{
		AverageRating: averageRating(reviews),
		TotalReviews:  len(reviews),
	}, nil
}

// Update applies partial changes to a review. Only its author may edit it.
func (s *ReviewService) Update(ctx context.Context, reviewID, callerID string, req UpdateReviewRequest) (*domain.Review, error) {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, domainerrors.NotFound("Review not found")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	if err := authz.RequireOwner(review.UserID, callerID, "Not authorized to edit this review"); err != nil {
		return nil, err
	}

	if req.Rating != 0 {
		if !domain.ValidRating(req.Rating) {
			return nil, domainerrors.Validation("Rating must be between 1 and 5")
		}
		review.Rating = req.Rating
	}
	if req.ReviewText != "" {
		review.ReviewText = req.ReviewText
	}

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.Info("review updated", "review_id", review.ID, "by", callerID)

	return review, nil
}

// Delete removes a review. Only its author may delete it.
func (s *ReviewService) Delete(ctx context.Context, reviewID, callerID string) error {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return domainerrors.NotFound("Review not found")
		}
		return fmt.Errorf("get review: %w", err)
	}

	if err := authz.RequireOwner(review.UserID, callerID, "Not authorized to delete this review"); err != nil {
		return err
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.Info("review deleted", "review_id", reviewID, "by", callerID)

	return nil
}

// requireBook loads a book or reports it missing.
func (s *ReviewService) requireBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("Book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// averageRating returns the mean rating rounded to one decimal place.
// An empty slice averages to 0.
func averageRating(reviews []*domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}
