// internal/app/features/appliances/handler.go
package appliances

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/store/appliances"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/energy"
	"github.com/muba123321/WATTWISE/internal/app/system/htmlsanitize"
	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"github.com/muba123321/WATTWISE/internal/app/system/timeouts"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the owner-scoped appliance CRUD endpoints.
type Handler struct {
	Appliances *appliancestore.Store
	RatePerKWh float64
	Log        *zap.Logger
}

func NewHandler(appliances *appliancestore.Store, ratePerKWh float64, logger *zap.Logger) *Handler {
	if ratePerKWh <= 0 {
		ratePerKWh = energy.DefaultRatePerKWh
	}
	return &Handler{Appliances: appliances, RatePerKWh: ratePerKWh, Log: logger}
}

type applianceRequest struct {
	Name             string   `json:"name"`
	UsageHoursPerDay *float64 `json:"usageHoursPerDay"`
	PowerRatingWatts *float64 `json:"powerRatingWatts"`
}

// applianceResponse decorates the stored appliance with its estimated
// monthly running cost at the configured tariff.
type applianceResponse struct {
	models.Appliance
	EstimatedMonthlyCost float64 `json:"estimatedMonthlyCost"`
}

func (h *Handler) respond(a models.Appliance) applianceResponse {
	return applianceResponse{
		Appliance:            a,
		EstimatedMonthlyCost: energy.EstimateMonthlyCost(a.PowerRatingWatts, a.UsageHoursPerDay, h.RatePerKWh),
	}
}

// Create handles POST /api/appliance/add.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	var req applianceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.Name == "" || req.UsageHoursPerDay == nil || req.PowerRatingWatts == nil {
		httpjson.Error(w, h.Log, httpjson.Validation("All fields are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Appliances.Create(ctx, u.ID, appliancestore.Params{
		Name:             htmlsanitize.Strip(req.Name),
		UsageHoursPerDay: *req.UsageHoursPerDay,
		PowerRatingWatts: *req.PowerRatingWatts,
	})
	if err != nil {
		if errors.Is(err, appliancestore.ErrInvalid) {
			httpjson.Error(w, h.Log, httpjson.Validation(err.Error()))
			return
		}
		h.Log.Error("appliance create failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to add appliance"))
		return
	}

	httpjson.Data(w, http.StatusCreated, h.respond(a))
}

// List handles GET /api/appliance/all.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Appliances.ListByOwner(ctx, u.ID)
	if err != nil {
		h.Log.Error("appliance list failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to fetch appliances"))
		return
	}

	out := make([]applianceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, h.respond(a))
	}
	httpjson.Data(w, http.StatusOK, out)
}

// Update handles PUT /api/appliance/{id}. All fields are required; the
// update is a full replacement of the editable fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, httpjson.NotFound("Appliance not found or unauthorized"))
		return
	}

	var req applianceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.Name == "" || req.UsageHoursPerDay == nil || req.PowerRatingWatts == nil {
		httpjson.Error(w, h.Log, httpjson.Validation("All fields are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Appliances.Update(ctx, id, u.ID, appliancestore.Params{
		Name:             htmlsanitize.Strip(req.Name),
		UsageHoursPerDay: *req.UsageHoursPerDay,
		PowerRatingWatts: *req.PowerRatingWatts,
	})
	switch {
	case errors.Is(err, appliancestore.ErrInvalid):
		httpjson.Error(w, h.Log, httpjson.Validation(err.Error()))
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, h.Log, httpjson.NotFound("Appliance not found or unauthorized"))
	case err != nil:
		h.Log.Error("appliance update failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to update appliance"))
	default:
		httpjson.Data(w, http.StatusOK, h.respond(a))
	}
}

// Delete handles DELETE /api/appliance/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, httpjson.NotFound("Appliance not found or unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Appliances.Delete(ctx, id, u.ID); {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, h.Log, httpjson.NotFound("Appliance not found or unauthorized"))
	case err != nil:
		h.Log.Error("appliance delete failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to delete appliance"))
	default:
		httpjson.Msg(w, http.StatusOK, "Appliance deleted")
	}
}
