// internal/app/features/preferences/routes.go
package preferences

import (
	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
)

// Routes mounts the preference endpoint behind the user gate.
func Routes(r chi.Router, h *Handler, gate *apiauth.Gate) {
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireUser)
		r.Put("/preferences", h.Update)
	})
}
