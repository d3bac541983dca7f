// internal/app/features/appliances/routes.go
package appliances

import (
	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
)

// Routes mounts the appliance endpoints. Everything requires a
// resolved user.
func Routes(r chi.Router, h *Handler, gate *apiauth.Gate) {
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireUser)
		r.Post("/add", h.Create)
		r.Get("/all", h.List)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
