package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createReview",
		Method:        http.MethodPost,
		Path:          "/api/reviews/{bookId}",
		Summary:       "Add review",
		Description:   "Adds a star-rated review to a book. One review per user per book.",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/reviews/{bookId}",
		Summary:     "List reviews",
		Description: "Returns all reviews for a book with the aggregate rating",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "averageRating",
		Method:      http.MethodGet,
		Path:        "/api/reviews/average/{bookId}",
		Summary:     "Average rating",
		Description: "Returns the mean rating for a book, rounded to one decimal place",
		Tags:        []string{"Reviews"},
	}, s.handleAverageRating)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPut,
		Path:        "/api/reviews/{reviewId}",
		Summary:     "Update review",
		Description: "Updates a review. Only its author may edit it.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReview",
		Method:      http.MethodDelete,
		Path:        "/api/reviews/{reviewId}",
		Summary:     "Delete review",
		Description: "Deletes a review. Only its author may delete it.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteReview)
}

// === DTOs ===

// ReviewRequest is the request body for creating or updating a review.
type ReviewRequest struct {
	Rating     int    `json:"rating,omitempty" doc:"Star rating from 1 to 5"`
	ReviewText string `json:"reviewText,omitempty" doc:"Optional review text"`
}

// CreateReviewInput wraps the review request for Huma.
type CreateReviewInput struct {
	BookID string `path:"bookId" doc:"Book ID"`
	Body   ReviewRequest
}

// UpdateReviewInput wraps a partial review update for Huma.
// Omitted fields are left unchanged.
type UpdateReviewInput struct {
	ReviewID string `path:"reviewId" doc:"Review ID"`
	Body     ReviewRequest
}

// ReviewPathInput identifies a single review.
type ReviewPathInput struct {
	ReviewID string `path:"reviewId" doc:"Review ID"`
}

// BookPathInput identifies a book in review routes.
type BookPathInput struct {
	BookID string `path:"bookId" doc:"Book ID"`
}

// ReviewResponse contains review data in API responses.
type ReviewResponse struct {
	ID         string    `json:"id" doc:"Review ID"`
	BookID     string    `json:"bookId" doc:"Reviewed book ID"`
	UserID     string    `json:"userId" doc:"Author user ID"`
	Rating     int       `json:"rating" doc:"Star rating"`
	ReviewText string    `json:"reviewText,omitempty" doc:"Review text"`
	CreatedAt  time.Time `json:"createdAt" doc:"Creation timestamp"`
	UpdatedAt  time.Time `json:"updatedAt" doc:"Last update timestamp"`
}

// ReviewMessageResponse pairs a status message with the affected review.
type ReviewMessageResponse struct {
	Message string         `json:"message" doc:"Status message"`
	Review  ReviewResponse `json:"review" doc:"Affected review"`
}

// ReviewMessageOutput wraps the review message response for Huma.
type ReviewMessageOutput struct {
	Body ReviewMessageResponse
}

// ReviewWithUserResponse is a review joined with its author.
type ReviewWithUserResponse struct {
	ID         string       `json:"id" doc:"Review ID"`
	BookID     string       `json:"bookId" doc:"Reviewed book ID"`
	Rating     int          `json:"rating" doc:"Star rating"`
	ReviewText string       `json:"reviewText,omitempty" doc:"Review text"`
	CreatedAt  time.Time    `json:"createdAt" doc:"Creation timestamp"`
	UpdatedAt  time.Time    `json:"updatedAt" doc:"Last update timestamp"`
	User       UserResponse `json:"user" doc:"Review author"`
}

// BookReviewsResponse contains all reviews for a book with the aggregate rating.
type BookReviewsResponse struct {
	TotalReviews  int                      `json:"totalReviews" doc:"Number of reviews"`
	AverageRating float64                  `json:"averageRating" doc:"Mean rating rounded to one decimal place"`
	Reviews       []ReviewWithUserResponse `json:"reviews" doc:"Reviews, newest first"`
}

// ListReviewsOutput wraps the book reviews for Huma.
type ListReviewsOutput struct {
	Body BookReviewsResponse
}

// RatingSummaryResponse contains the aggregate rating for a book.
type RatingSummaryResponse struct {
	AverageRating float64 `json:"averageRating" doc:"Mean rating rounded to one decimal place"`
	TotalReviews  int     `json:"totalReviews" doc:"Number of reviews"`
}

// RatingSummaryOutput wraps the rating summary for Huma.
type RatingSummaryOutput struct {
	Body RatingSummaryResponse
}

// === Handlers ===

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewMessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.Create(ctx, input.BookID, userID, service.CreateReviewRequest{
		Rating:     input.Body.Rating,
		ReviewText: input.Body.ReviewText,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewMessageOutput{
		Body: ReviewMessageResponse{
			Message: "Review added successfully",
			Review:  mapReview(review),
		},
	}, nil
}

func (s *Server) handleListReviews(ctx context.Context, input *BookPathInput) (*ListReviewsOutput, error) {
	result, err := s.services.Review.ListForBook(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	reviews := make([]ReviewWithUserResponse, 0, len(result.Reviews))
	for _, r := range result.Reviews {
		reviews = append(reviews, ReviewWithUserResponse{
			ID:         r.ID,
			BookID:     r.BookID,
			Rating:     r.Rating,
			ReviewText: r.ReviewText,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
			User:       mapUser(r.User),
		})
	}

	return &ListReviewsOutput{
		Body: BookReviewsResponse{
			TotalReviews:  result.TotalReviews,
			AverageRating: result.AverageRating,
			Reviews:       reviews,
		},
	}, nil
}

func (s *Server) handleAverageRating(ctx context.Context, input *BookPathInput) (*RatingSummaryOutput, error) {
	summary, err := s.services.Review.Summary(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	return &RatingSummaryOutput{
		Body: RatingSummaryResponse{
			AverageRating: summary.AverageRating,
			TotalReviews:  summary.TotalReviews,
		},
	}, nil
}

func (s *Server) handleUpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewMessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.Update(ctx, input.ReviewID, userID, service.UpdateReviewRequest{
		Rating:     input.Body.Rating,
		ReviewText: input.Body.ReviewText,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewMessageOutput{
		Body: ReviewMessageResponse{
			Message: "Review updated successfully",
			Review:  mapReview(review),
		},
	}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *ReviewPathInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.Delete(ctx, input.ReviewID, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Review deleted successfully"}}, nil
}

// === Helpers ===

func mapReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
