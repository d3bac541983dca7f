// internal/app/features/consumption/handler.go
package consumption

import (
	"context"
	"net/http"

	"github.com/muba123321/WATTWISE/internal/app/store/readings"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"github.com/muba123321/WATTWISE/internal/app/system/timeouts"
	"github.com/muba123321/WATTWISE/internal/domain/models"
	"go.uber.org/zap"
)

// hourlyWindow is how many of the most recent readings the hourly view
// returns.
const hourlyWindow = 24

// Handler serves the read-only consumption views derived from the
// caller's meter readings.
type Handler struct {
	Readings *readingstore.Store
	Log      *zap.Logger
}

func NewHandler(readings *readingstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Readings: readings, Log: logger}
}

// periodResponse brackets the caller's readings; both ends are null
// when none exist.
type periodResponse struct {
	Start *models.MeterReading `json:"start"`
	End   *models.MeterReading `json:"end"`
}

// All handles GET /api/consumption: every reading, date ascending.
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	h.ordered(w, r, "Failed to fetch consumption data")
}

// Periods handles GET /api/consumption/periods. Same ordered series as
// All; period grouping is left to the client.
func (h *Handler) Periods(w http.ResponseWriter, r *http.Request) {
	h.ordered(w, r, "Failed to fetch periods")
}

func (h *Handler) ordered(w http.ResponseWriter, r *http.Request, failMsg string) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Readings.Ordered(ctx, u.ID)
	if err != nil {
		h.Log.Error("consumption query failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal(failMsg))
		return
	}
	httpjson.Data(w, http.StatusOK, list)
}

// CurrentPeriod handles GET /api/consumption/current: the earliest and
// latest reading by date.
func (h *Handler) CurrentPeriod(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	first, last, err := h.Readings.CurrentPeriod(ctx, u.ID)
	if err != nil {
		h.Log.Error("current period query failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to fetch current period"))
		return
	}
	httpjson.Data(w, http.StatusOK, periodResponse{Start: first, End: last})
}

// Hourly handles GET /api/consumption/hourly: the most recent readings,
// newest first, capped at the window size.
func (h *Handler) Hourly(w http.ResponseWriter, r *http.Request) {
	u, ok := apiauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, httpjson.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Readings.RecentWindow(ctx, u.ID, hourlyWindow)
	if err != nil {
		h.Log.Error("hourly query failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, h.Log, httpjson.Internal("Failed to fetch hourly consumption"))
		return
	}
	httpjson.Data(w, http.StatusOK, list)
}
