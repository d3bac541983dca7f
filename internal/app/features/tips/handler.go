// internal/app/features/tips/handler.go
package tips

import (
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// TipItem is one energy-saving tip. ApplianceType is empty for general
// advice.
type TipItem struct {
	Title         string `json:"title"`
	ApplianceType string `json:"applianceType,omitempty"`
}

// catalog is the fixed tip set served by every route. The category
// routes match on ApplianceType.
var catalog = []TipItem{
	{Title: "Turn off lights when not in use"},
	{Title: "Use energy-efficient bulbs"},
	{Title: "Unplug chargers and electronics when idle"},
	{Title: "Run full loads only", ApplianceType: "washer"},
	{Title: "Wash with cold water when possible", ApplianceType: "washer"},
	{Title: "Air-dry clothes instead of machine drying", ApplianceType: "dryer"},
	{Title: "Keep the refrigerator between 3 and 5 degrees Celsius", ApplianceType: "refrigerator"},
	{Title: "Let hot food cool before refrigerating", ApplianceType: "refrigerator"},
	{Title: "Raise the thermostat a degree or two in summer", ApplianceType: "ac"},
	{Title: "Clean or replace AC filters monthly", ApplianceType: "ac"},
	{Title: "Use the dishwasher's eco cycle", ApplianceType: "dishwasher"},
	{Title: "Match pot size to the burner", ApplianceType: "stove"},
}

// Handler serves the static tip catalog.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// All handles GET /api/tips.
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	httpjson.Tips(w, http.StatusOK, catalog)
}

// Random handles GET /api/tips/random: one uniformly random tip.
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	httpjson.Tip(w, http.StatusOK, catalog[rand.IntN(len(catalog))])
}

// ByAppliance handles GET /api/tips/appliance/{applianceType}. An
// unknown category falls back to the full set rather than an empty
// list.
func (h *Handler) ByAppliance(w http.ResponseWriter, r *http.Request) {
	applianceType := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "applianceType")))

	var matched []TipItem
	for _, t := range catalog {
		if t.ApplianceType == applianceType {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		matched = catalog
	}
	httpjson.Tips(w, http.StatusOK, matched)
}
