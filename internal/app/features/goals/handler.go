// internal/app/features/goals/handler.go
package goals

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/store/goals"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/htmlsanitize"
	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"github.com/muba123321/WATTWISE/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the owner-scoped energy goal endpoints.
type Handler struct {
	Goals *goalstore.Store
	Log   *zap.Logger
}

func NewHandler(goals *goalstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Goals: goals, Log: logger}
}

type createRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	TargetValue  float64    `json:"targetValue"`
	Unit         string     `json:"unit"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	CurrentValue float64    `json:"currentValue"`
}

type updateRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	TargetValue  *float64   `json:"targetValue"`
	Unit         *string    `json:"unit"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Type         *string    `json:"type"`
	Status       *string    `json:"status"`
	CurrentValue *float64   `json:"currentValue"`
}

// Create handles POST /api/goals.
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

	p := goalstore.Params{
		Title:        htmlsanitize.Strip(req.Title),
		Description:  htmlsanitize.Strip(req.Description),
		TargetValue:  req.TargetValue,
		Unit:         req.Unit,
		Type:         req.Type,
		Status:       req.Status,
		CurrentValue: req.CurrentValue,
	}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = *req.EndDate
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Goals.Create(ctx, u.ID, p)
	if err != nil {
		if errors.Is(err, goalstore.ErrInvalid) {
			httpjson.Error(w, h.Log, httpjson.Validation(err.Error()))
			return
		}
		h.Log.Error("goal create failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to create goal"))
		return
	}

	httpjson.Data(w, http.StatusCreated, g)
}

// List handles GET /api/goals.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Goals.ListByOwner(ctx, u.ID)
	if err != nil {
		h.Log.Error("goal list failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to fetch goals"))
		return
	}
	httpjson.Data(w, http.StatusOK, list)
}

// Update handles PUT /api/goals/{id}; only the supplied fields change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, httpjson.NotFound("Goal not found"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	upd := goalstore.Update{
		Title:        sanitized(req.Title),
		Description:  sanitized(req.Description),
		TargetValue:  req.TargetValue,
		Unit:         req.Unit,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Type:         req.Type,
		Status:       req.Status,
		CurrentValue: req.CurrentValue,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Goals.Update(ctx, id, u.ID, upd)
	switch {
	case errors.Is(err, goalstore.ErrInvalid):
		httpjson.Error(w, h.Log, httpjson.Validation(err.Error()))
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, h.Log, httpjson.NotFound("Goal not found"))
	case err != nil:
		h.Log.Error("goal update failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to update goal"))
	default:
		httpjson.Data(w, http.StatusOK, g)
	}
}

// Delete handles DELETE /api/goals/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, httpjson.NotFound("Goal not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Goals.Delete(ctx, id, u.ID); {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, h.Log, httpjson.NotFound("Goal not found"))
	case err != nil:
		h.Log.Error("goal delete failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to delete goal"))
	default:
		httpjson.Msg(w, http.StatusOK, "Goal deleted")
	}
}

func sanitized(s *string) *string {
	if s == nil {
		return nil
	}
	clean := htmlsanitize.Strip(*s)
	return &clean
}
