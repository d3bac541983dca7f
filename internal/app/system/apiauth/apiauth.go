// Package apiauth is the single authorization checkpoint for protected
// routes. It extracts the bearer credential, verifies it against the
// external identity authority, and attaches the resulting claim (and,
// where required, the resolved directory user) to the request context.
// Handlers never re-verify.
package apiauth

import (
	"context"
	"net/http"
	"strings"

	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"github.com/muba123321/WATTWISE/internal/app/system/identity"
	"github.com/muba123321/WATTWISE/internal/app/system/timeouts"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ctxKey int

const (
	claimKey ctxKey = iota
	userKey
)

// UserDirectory is the slice of the user store the gate needs: mapping a
// verified external identity to the internal user record.
type UserDirectory interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// Gate holds the verifier and directory used by the middleware.
type Gate struct {
	Verifier identity.Verifier
	Users    UserDirectory
	Log      *zap.Logger
}

func New(v identity.Verifier, users UserDirectory, logger *zap.Logger) *Gate {
	return &Gate{Verifier: v, Users: users, Log: logger}
}

// WithTestClaim returns a copy of the request carrying the claim, as if
// RequireIdentity had run. For handler tests.
func WithTestClaim(r *http.Request, c *identity.Claim) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimKey, c))
}

// WithTestUser returns a copy of the request carrying the resolved
// user, as if RequireUser had run. For handler tests.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, u))
}

// ClaimFrom returns the verified claim attached by RequireIdentity.
func ClaimFrom(r *http.Request) (*identity.Claim, bool) {
	c, ok := r.Context().Value(claimKey).(*identity.Claim)
	return c, ok
}

// CurrentUser returns the directory user attached by RequireUser.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(userKey).(*models.User)
	return u, ok
}

// BearerToken extracts the credential from the Authorization header.
// ok is false when the header is absent or not Bearer-shaped.
func BearerToken(r *http.Request) (token string, ok bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return token, token != ""
}

// RequireIdentity verifies the bearer credential and stores the claim in
// the request context. A missing or rejected credential stops the
// request with a 403 envelope.
func (g *Gate) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			httpjson.Error(w, g.Log, httpjson.Forbidden("Authorization token missing"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		claim, err := g.Verifier.Verify(ctx, token)
		if err != nil {
			g.Log.Debug("token verification failed", zap.Error(err))
			httpjson.Error(w, g.Log, httpjson.Forbidden("Invalid or expired authorization token"))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimKey, claim)))
	})
}

// RequireUser behaves like RequireIdentity and additionally resolves the
// claim to its directory user, so handlers get the internal user id
// without a lookup of their own. An identity with no directory entry
// (never registered or logged in) gets a 404.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return g.RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim, _ := ClaimFrom(r)

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		u, err := g.Users.GetByExternalID(ctx, claim.ExternalID)
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, g.Log, httpjson.NotFound("User not found"))
			return
		}
		if err != nil {
			g.Log.Error("user lookup failed", zap.Error(err), zap.String("external_id", claim.ExternalID))
			httpjson.Error(w, g.Log, httpjson.Internal("Failed to load user"))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	}))
}
