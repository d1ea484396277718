// internal/app/features/complaints/routes.go
package complaints

import (
	_ "github.com/cyvox/console/internal/app/features/complaints/views"
	"github.com/cyvox/console/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServePage)
	})

	return r
}
