// Package identity verifies externally issued bearer credentials and
// maps them to identity claims. Verification is a pure call to the
// external identity authority; nothing here touches the database.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrUnauthenticated is returned for a missing, malformed, or rejected
// credential. Callers translate it to a 403.
var ErrUnauthenticated = errors.New("invalid or expired authorization token")

// Claim is a verified identity as asserted by the external authority.
type Claim struct {
	ExternalID    string // the authority's stable user id (Firebase UID)
	Email         string
	FirstName     string
	LastName      string
	AvatarURL     string
	EmailVerified bool

	// CreatedAt is an optional account-creation time supplied at
	// registration. Zero means "now" to the directory.
	CreatedAt time.Time
}

// Verifier validates a bearer credential string and extracts the
// identity claim, or fails with ErrUnauthenticated.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claim, error)
}

// SplitDisplayName breaks an authority-supplied display name into first
// and last name the way the directory stores them: first word, then the
// rest.
func SplitDisplayName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
