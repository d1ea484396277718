package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cyvox/console/internal/app/system/auth"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testSessionKey, "cyvox-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return m
}

func testPrincipal() auth.Principal {
	return auth.Principal{
		ID:    "1",
		Name:  "Detective Sarah Johnson",
		Email: "admin@cyvox.gov",
		Role:  "admin",
	}
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

// sessionCookies replays Set-Cookie headers from a response onto a request.
func sessionCookies(t *testing.T, rec *httptest.ResponseRecorder, r *http.Request) {
	t.Helper()
	res := rec.Result()
	for _, c := range res.Cookies() {
		r.AddCookie(c)
	}
}

func TestSession_EstablishAndLoadRoundTrip(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := m.Establish(rec, req, testPrincipal()); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	next := httptest.NewRequest("GET", "/dashboard", nil)
	sessionCookies(t, rec, next)

	var got *auth.Principal
	handler := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), next)

	if got == nil {
		t.Fatal("principal not loaded from session")
	}
	if got.ID != "1" || got.Name != "Detective Sarah Johnson" || got.Role != "admin" {
		t.Errorf("principal: got %+v", got)
	}
}

func TestSession_TamperedCookieIsSilentlyUnauthenticated(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "cyvox-session", Value: "garbage-not-a-session"})

	called := false
	var found bool
	handler := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, found = auth.CurrentUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatal("request did not proceed past middleware")
	}
	if found {
		t.Error("tampered cookie yielded a principal")
	}
}

func TestSession_ClearThenLoad(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := m.Establish(rec, req, testPrincipal()); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	clearReq := httptest.NewRequest("GET", "/logout", nil)
	sessionCookies(t, rec, clearReq)
	clearRec := httptest.NewRecorder()
	if err := m.Clear(clearRec, clearReq); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	// The deletion cookie must expire the session.
	res := clearRec.Result()
	var maxAge int = 1
	for _, c := range res.Cookies() {
		if c.Name == "cyvox-session" {
			maxAge = c.MaxAge
		}
	}
	if maxAge != -1 {
		t.Errorf("deletion cookie MaxAge: got %d, want -1", maxAge)
	}
}

func TestSession_ClearWithoutSessionIsIdempotent(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	if err := m.Clear(httptest.NewRecorder(), req); err != nil {
		t.Fatalf("Clear on absent session: %v", err)
	}
}

func TestRequireSignedIn_PassesAuthenticated(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	p := testPrincipal()
	req = auth.WithTestUser(req, &p)

	called := false
	handler := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("authenticated request was blocked")
	}
}

func TestRequireSignedIn_HTMXGetsHXRedirect(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without auth")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d", rec.Code)
	}
	redirect := rec.Header().Get("HX-Redirect")
	if !strings.HasPrefix(redirect, "/login?return=") {
		t.Errorf("HX-Redirect: got %q", redirect)
	}
}

func TestRequireSignedIn_BrowserGetsRedirect(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/complaints", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()

	m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without auth")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("Location: got %q", loc)
	}
}

func TestRequireSignedIn_APIGets401(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without auth")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Error("plain request should not be redirected")
	}
}
