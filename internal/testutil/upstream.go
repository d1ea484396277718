package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// UpstreamStub starts a stand-in for the CyVox backend API. Each key in
// responses is a request path (e.g. "/api/complaint/get-all") mapped to the JSON
// body to return. Unknown paths get a 404. The server is shut down when the
// test finishes.
func UpstreamStub(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// FailingUpstream starts a backend stand-in that answers every request with
// the given status code.
func FailingUpstream(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}
