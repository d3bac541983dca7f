// internal/app/features/tips/routes.go
package tips

import "github.com/go-chi/chi/v5"

// Routes mounts the tip endpoints. No auth; the catalog is public.
func Routes(r chi.Router, h *Handler) {
	r.Get("/", h.All)
	r.Get("/random", h.Random)
	r.Get("/appliance/{applianceType}", h.ByAppliance)
}
