// internal/app/features/login/routes.go
package login

import (
	_ "github.com/cyvox/console/internal/app/features/login/views"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Post("/", h.HandleLoginPost)
	return r
}
