// internal/app/features/preferences/handler.go
package preferences

import (
	"context"
	"net/http"
	"time"

	"github.com/muba123321/WATTWISE/internal/app/store/users"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"github.com/muba123321/WATTWISE/internal/app/system/timeouts"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the user preference endpoint.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type userResponse struct {
	ID              string             `json:"id"`
	Email           string             `json:"email"`
	FirstName       string             `json:"firstName"`
	LastName        string             `json:"lastName"`
	PhotoURL        string             `json:"photoUrl,omitempty"`
	IsEmailVerified bool               `json:"isEmailVerified"`
	CreatedAt       time.Time          `json:"createdAt"`
	Preferences     models.Preferences `json:"preferences"`
}

// Update handles PUT /api/user/preferences. The submitted document
// replaces the stored preferences wholesale; absent fields take their
// zero values.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	var prefs models.Preferences
	if err := httpjson.Decode(r, &prefs); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Users.ReplacePreferences(ctx, u.FirebaseUID, prefs)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}
	if err != nil {
		h.Log.Error("preferences update failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to update preferences"))
		return
	}

	httpjson.User(w, http.StatusOK, userResponse{
		ID:              updated.ID.Hex(),
		Email:           updated.Email,
		FirstName:       updated.FirstName,
		LastName:        updated.LastName,
		PhotoURL:        updated.PhotoURL,
		IsEmailVerified: updated.IsEmailVerified,
		CreatedAt:       updated.CreatedAt,
		Preferences:     updated.Preferences,
	})
}
