// internal/app/features/readings/routes.go
package readings

import (
	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
)

// Routes mounts the meter reading endpoints. Everything requires a
// resolved user.
func Routes(r chi.Router, h *Handler, gate *apiauth.Gate) {
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireUser)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
