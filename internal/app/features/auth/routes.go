// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
)

// Routes mounts the account endpoints under the caller's router.
func Routes(r chi.Router, h *Handler, gate *apiauth.Gate) {
	r.Post("/register", h.Register)

	r.Group(func(r chi.Router) {
		r.Use(gate.RequireIdentity)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate.RequireUser)
		r.Get("/profile", h.Profile)
		r.Put("/profileUpdate", h.UpdateProfile)
		r.Delete("/delete", h.DeleteAccount)
	})
}
