// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	loginstore "github.com/cyvox/console/internal/app/store/logins"
	"github.com/cyvox/console/internal/app/system/auth"
	"github.com/cyvox/console/internal/app/system/metrics"
	"github.com/cyvox/console/internal/app/system/timeouts"
	"github.com/cyvox/console/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Auth       *auth.Authenticator
	Logins     *loginstore.Store
}

func NewHandler(authenticator *auth.Authenticator, sessionMgr *auth.SessionManager, logins *loginstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Auth:       authenticator,
		Logins:     logins,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// ServeLogin handles GET /login. An already signed-in operator is sent
// straight to the dashboard.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Log.Warn("login: parse form failed", zap.Error(err))
		h.renderFormWithError(w, r, "Invalid form data.", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email)
		return
	}

	principal, ok := h.Auth.Login(email, password)
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		h.Log.Info("login rejected", zap.String("email", email))
		h.renderFormWithError(w, r, "Invalid email or password.", email)
		return
	}

	if err := h.SessionMgr.Establish(w, r, principal); err != nil {
		h.Log.Error("login: establish session", zap.Error(err))
		h.renderFormWithError(w, r, "Could not start a session. Please try again.", email)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.Log.Info("login accepted",
		zap.String("user_id", principal.ID),
		zap.String("email", principal.Email))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "audit login")
	defer cancel()
	if err := h.Logins.CreateFrom(ctx, r, principal.ID, principal.Email, loginstore.EventLogin); err != nil {
		// Auditing never blocks a sign-in.
		h.Log.Warn("login: audit write failed", zap.Error(err))
	}

	dest := urlutil.SafeReturn(r.FormValue("return"), "", "/dashboard")

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	ret := r.FormValue("return")
	if ret == "" {
		ret = query.Get(r, "return")
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	})
}
