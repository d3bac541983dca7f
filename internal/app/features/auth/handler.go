// internal/app/features/auth/handler.go
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/muba123321/WATTWISE/internal/app/store/users"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/htmlsanitize"
	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"github.com/muba123321/WATTWISE/internal/app/system/identity"
	"github.com/muba123321/WATTWISE/internal/app/system/timeouts"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves account registration, login, and profile management.
type Handler struct {
	Users    *userstore.Store
	Verifier identity.Verifier
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, verifier identity.Verifier, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Verifier: verifier, Log: logger}
}

// profileResponse is the user payload shape shared by the auth routes.
type profileResponse struct {
	ID              string             `json:"id"`
	Email           string             `json:"email"`
	FirstName       string             `json:"firstName"`
	LastName        string             `json:"lastName"`
	PhotoURL        string             `json:"photoUrl,omitempty"`
	IsEmailVerified bool               `json:"isEmailVerified"`
	CreatedAt       time.Time          `json:"createdAt"`
	Preferences     models.Preferences `json:"preferences"`
}

func toProfile(u *models.User) profileResponse {
	return profileResponse{
		ID:              u.ID.Hex(),
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		PhotoURL:        u.PhotoURL,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		Preferences:     u.Preferences,
	}
}

// registerRequest carries the identity claim fields a client submits at
// registration time.
type registerRequest struct {
	UID             string     `json:"uid"`
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	PhotoURL        string     `json:"photoUrl"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	CreatedAt       *time.Time `json:"createdAt"`
}

// Register handles POST /api/auth/register.
//
// When an Authorization header is present the token is verified and its
// identity wins over the body; otherwise the body supplies the claim
// (the client has just completed signup against the authority and
// relays what it was issued). Either way the directory entry is
// created-or-patched by the same diff-policy as login.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	claim := &identity.Claim{
		ExternalID:    req.UID,
		Email:         req.Email,
		FirstName:     htmlsanitize.Strip(req.FirstName),
		LastName:      htmlsanitize.Strip(req.LastName),
		AvatarURL:     req.PhotoURL,
		EmailVerified: req.IsEmailVerified,
	}
	if req.CreatedAt != nil {
		claim.CreatedAt = *req.CreatedAt
	}

	if token, ok := apiauth.BearerToken(r); ok {
		vctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		verified, err := h.Verifier.Verify(vctx, token)
		cancel()
		if err != nil {
			httpjson.Error(w, h.Log, httpjson.Forbidden("Invalid or expired authorization token"))
			return
		}
		// The verified identity is authoritative for the key fields.
		claim.ExternalID = verified.ExternalID
		if verified.Email != "" {
			claim.Email = verified.Email
		}
	}

	if claim.ExternalID == "" || claim.Email == "" {
		httpjson.Error(w, h.Log, httpjson.Validation("uid and email are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.ResolveOrCreate(ctx, claim)
	if err != nil {
		h.Log.Error("register: resolve-or-create failed", zap.Error(err), zap.String("external_id", claim.ExternalID))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to register user"))
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", u.ID.Hex()),
		zap.String("external_id", u.FirebaseUID))

	httpjson.User(w, http.StatusOK, toProfile(u))
}

// loginRequest carries the only body field login accepts; everything
// else comes from the verified token.
type loginRequest struct {
	IsEmailVerified *bool `json:"isEmailVerified"`
}

// Login handles POST /api/auth/login. The Request Gate has already
// verified the token, so the claim in context is trusted; the optional
// body may carry a fresher email-verified flag than the token does.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	claim, ok := apiauth.ClaimFrom(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.Forbidden("Authorization token missing"))
		return
	}

	var req loginRequest
	if r.Body != nil {
		_ = httpjson.Decode(r, &req) // body is optional on login
	}
	if req.IsEmailVerified != nil {
		c := *claim
		c.EmailVerified = *req.IsEmailVerified
		claim = &c
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.ResolveOrCreate(ctx, claim)
	if err != nil {
		h.Log.Error("login: resolve-or-create failed", zap.Error(err), zap.String("external_id", claim.ExternalID))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to log in"))
		return
	}

	h.Log.Info("user logged in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("external_id", u.FirebaseUID))

	httpjson.User(w, http.StatusOK, toProfile(u))
}

// Profile handles GET /api/auth/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}
	httpjson.User(w, http.StatusOK, toProfile(u))
}

// updateProfileRequest holds the patchable profile fields; absent
// members leave the stored value alone.
type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	PhotoURL  *string `json:"photoUrl"`
}

// UpdateProfile handles PUT /api/auth/profileUpdate.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	var req updateProfileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	upd := userstore.ProfileUpdate{
		FirstName: sanitized(req.FirstName),
		LastName:  sanitized(req.LastName),
		PhotoURL:  req.PhotoURL,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Users.UpdateProfile(ctx, u.FirebaseUID, upd)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}
	if err != nil {
		h.Log.Error("profile update failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to update profile"))
		return
	}

	httpjson.User(w, http.StatusOK, toProfile(updated))
}

// DeleteAccount handles DELETE /api/auth/delete. Owned appliances,
// goals, and meter readings are removed with the account.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Users.Delete(ctx, u.ID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
			return
		}
		h.Log.Error("account deletion failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to delete account"))
		return
	}

	h.Log.Info("account deleted", zap.String("user_id", u.ID.Hex()))
	httpjson.Msg(w, http.StatusOK, "Account deleted")
}

func sanitized(s *string) *string {
	if s == nil {
		return nil
	}
	clean := htmlsanitize.Strip(*s)
	return &clean
}
