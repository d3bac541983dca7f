// internal/app/features/readings/handler.go
package readings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/store/readings"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"github.com/muba123321/WATTWISE/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the owner-scoped meter reading endpoints.
type Handler struct {
	Readings *readingstore.Store
	Log      *zap.Logger
}

func NewHandler(readings *readingstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Readings: readings, Log: logger}
}

type createRequest struct {
	Value    float64    `json:"value"`
	Unit     string     `json:"unit"`
	ImageURL string     `json:"imageUrl"`
	Date     *time.Time `json:"date"`
}

type updateRequest struct {
	Value    *float64   `json:"value"`
	Unit     *string    `json:"unit"`
	ImageURL *string    `json:"imageUrl"`
	Date     *time.Time `json:"date"`
}

// Create handles POST /api/meter-readings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	p := readingstore.Params{
		Value:    req.Value,
		Unit:     req.Unit,
		ImageURL: req.ImageURL,
	}
	if req.Date != nil {
		p.Date = *req.Date
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Readings.Create(ctx, u.ID, p)
	if err != nil {
		if errors.Is(err, readingstore.ErrInvalid) {
			httpjson.Error(w, h.Log, httpjson.Validation(err.Error()))
			return
		}
		h.Log.Error("reading create failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to save meter reading"))
		return
	}

	httpjson.Data(w, http.StatusCreated, m)
}

// List handles GET /api/meter-readings.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Readings.ListByOwner(ctx, u.ID)
	if err != nil {
		h.Log.Error("reading list failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to fetch meter readings"))
		return
	}
	httpjson.Data(w, http.StatusOK, list)
}

// Update handles PUT /api/meter-readings/{id}; only supplied fields
// change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, httpjson.NotFound("Meter reading not found"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Readings.Update(ctx, id, u.ID, readingstore.Update{
		Value:    req.Value,
		Unit:     req.Unit,
		ImageURL: req.ImageURL,
		Date:     req.Date,
	})
	switch {
	case errors.Is(err, readingstore.ErrInvalid):
		httpjson.Error(w, h.Log, httpjson.Validation(err.Error()))
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, h.Log, httpjson.NotFound("Meter reading not found"))
	case err != nil:
		h.Log.Error("reading update failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to update meter reading"))
	default:
		httpjson.Data(w, http.StatusOK, m)
	}
}

// Delete handles DELETE /api/meter-readings/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, httpjson.NotFound("Meter reading not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Readings.Delete(ctx, id, u.ID); {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, h.Log, httpjson.NotFound("Meter reading not found"))
	case err != nil:
		h.Log.Error("reading delete failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to delete meter reading"))
	default:
		httpjson.Msg(w, http.StatusOK, "Meter reading deleted")
	}
}
