// Package authz holds the ownership policy shared by every resource that
// restricts mutation to its creator.
package authz

import (
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/errors"
)

// IsOwner reports whether callerID owns a resource created by ownerID.
// Both IDs are compared after trimming whitespace; an empty caller or
// owner never matches.
func IsOwner(ownerID, callerID string) bool {
	owner := strings.TrimSpace(ownerID)
	caller := strings.TrimSpace(callerID)
	if owner == "" || caller == "" {
		return false
	}
	return owner == caller
}

// RequireOwner returns a Forbidden error with the given message when
// callerID does not own the resource.
func RequireOwner(ownerID, callerID, message string) error {
	if !IsOwner(ownerID, callerID) {
		return errors.Forbidden(message)
	}
	return nil
}
