// internal/app/features/goals/routes.go
package goals

import (
	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
)

// Routes mounts the goal endpoints. Everything requires a resolved user.
func Routes(r chi.Router, h *Handler, gate *apiauth.Gate) {
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireUser)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
