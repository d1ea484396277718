package logout_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/cyvox/console/internal/app/features/logout"
	"github.com/cyvox/console/internal/app/system/auth"
	"github.com/cyvox/console/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *logout.Handler {
	t.Helper()
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "cyvox-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return logout.NewHandler(sessionMgr, nil, logger)
}

func TestServeLogout_RedirectsToLogin(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/logout", testutil.AdminUser())
	rec := testutil.NewRecorder()

	handler.ServeLogout(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/login")

	// The session cookie must be expired.
	setCookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "cyvox-session") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Errorf("deletion cookie: got %q", setCookie)
	}
}

func TestServeLogout_HTMXGetsHXRedirect(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/logout", testutil.AdminUser())
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()

	handler.ServeLogout(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := rec.Header().Get("HX-Redirect"); got != "/login" {
		t.Errorf("HX-Redirect: got %q", got)
	}
}

func TestServeLogout_WithoutSessionStillClears(t *testing.T) {
	handler := newTestHandler(t)

	// No principal in context, no cookie on the request.
	req := testutil.NewRequest("GET", "/logout")
	rec := testutil.NewRecorder()

	handler.ServeLogout(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/login")
}
