// Package id generates prefixed unique identifiers for domain entities.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each entity type.
const (
	PrefixUser   = "usr"
	PrefixBook   = "bok"
	PrefixReview = "rev"
)

// New generates a new prefixed ID, e.g. "bok-V1StGXR8_Z5jdHi6B-myT".
func New(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustNew generates a new prefixed ID and panics on failure.
// Nanoid generation only fails if the system entropy source is broken.
func MustNew(prefix string) string {
	id, err := New(prefix)
	if err != nil {
		panic(err)
	}
	return id
}

// HasPrefix reports whether id carries the given entity prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-")
}
