package store

import "errors"

// Sentinel errors returned by the store. Services translate these into
// user-facing domain errors.
var (
	// ErrNotFound is the generic missing-entity error used by Entity.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is the generic conflict error used by Entity.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when attempting to create a user with an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrBookNotFound is returned when a book cannot be found by ID.
	ErrBookNotFound = errors.New("book not found")
	// ErrReviewNotFound is returned when a review cannot be found by ID.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewExists is returned when the user already has a review for the book.
	ErrReviewExists = errors.New("review already exists for this book and user")
)
