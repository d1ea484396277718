// internal/app/features/complaintdetails/routes.go
package complaintdetails

import (
	_ "github.com/cyvox/console/internal/app/features/complaintdetails/views"
	"github.com/cyvox/console/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/{userId}", h.ServePage)
	})

	return r
}
