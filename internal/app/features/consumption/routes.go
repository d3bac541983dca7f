// internal/app/features/consumption/routes.go
package consumption

import (
	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
)

// Routes mounts the consumption views. Everything requires a resolved
// user.
func Routes(r chi.Router, h *Handler, gate *apiauth.Gate) {
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireUser)
		r.Get("/", h.All)
		r.Get("/current", h.CurrentPeriod)
		r.Get("/periods", h.Periods)
		r.Get("/hourly", h.Hourly)
	})
}
