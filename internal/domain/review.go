package domain

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a single user's rating and optional commentary on a book.
// A user may hold at most one review per book.
type Review struct {
	Record
	BookID     string `json:"book_id"`
	UserID     string `json:"user_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text,omitempty"`
}

// ValidRating reports whether rating is within the allowed range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
