// internal/app/features/shell/routes.go
package shell

import (
	_ "github.com/cyvox/console/internal/app/features/shell/views"
	"github.com/cyvox/console/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeRoot)
		pr.Get("/nav", h.ServeNav)
	})

	return r
}
