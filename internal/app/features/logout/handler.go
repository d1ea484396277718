// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	loginstore "github.com/cyvox/console/internal/app/store/logins"
	"github.com/cyvox/console/internal/app/system/auth"
	"github.com/cyvox/console/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Logins     *loginstore.Store
}

func NewHandler(sessionMgr *auth.SessionManager, logins *loginstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Logins:     logins,
	}
}

// ServeLogout handles GET /logout. Clearing is idempotent: a corrupt or
// missing session still gets its cookie deleted.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "audit logout")
		defer cancel()
		if err := h.Logins.CreateFrom(ctx, r, user.ID, user.Email, loginstore.EventLogout); err != nil {
			h.Log.Warn("logout: audit write failed", zap.Error(err))
		}
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
