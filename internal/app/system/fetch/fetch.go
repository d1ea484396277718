// Package fetch provides a minimal single-attempt GET fetcher with explicit
// load state.
//
// Each Fetcher is bound to one endpoint and tracks the familiar
// data/loading/error triple. There is deliberately no retry, backoff, or
// caching: a failed request surfaces immediately as an error and stays
// visible until the next explicit Load. Concurrent loads against the same
// fetcher are tagged with a monotonic sequence number so a slow response can
// never overwrite the result of a request issued after it.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// genericFailure is shown when a transport error carries no message text.
const genericFailure = "An error occurred."

// State is the three-way representation of one GET: loading, success with
// data, or failure with an error. Exactly one of the three shapes holds at
// any time.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// Message returns the user-facing text for a failed state, or "" when the
// state carries no error.
func (s State[T]) Message() string {
	if s.Err == nil {
		return ""
	}
	if msg := s.Err.Error(); msg != "" {
		return msg
	}
	return genericFailure
}

// Fetcher loads and decodes one JSON endpoint into T.
type Fetcher[T any] struct {
	client *http.Client
	url    string
	log    *zap.Logger

	mu    sync.Mutex
	seq   uint64 // sequence number of the most recently issued request
	state State[T]
}

// New binds a fetcher to an endpoint URL. A nil client falls back to
// http.DefaultClient; request lifetimes are bounded by the caller's context,
// not a client timeout.
func New[T any](client *http.Client, url string, logger *zap.Logger) *Fetcher[T] {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher[T]{client: client, url: url, log: logger}
}

// URL returns the endpoint this fetcher is bound to.
func (f *Fetcher[T]) URL() string { return f.url }

// State returns the current load state.
func (f *Fetcher[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Load issues a single GET and returns the resulting state. It first resets
// the shared state to loading (clearing prior data and error), so no stale
// result is ever observable once a fresh load has begun. If another Load is
// issued while this one is in flight, whichever finishes out of order is
// discarded — only the latest issued request may settle the state.
func (f *Fetcher[T]) Load(ctx context.Context) State[T] {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.state = State[T]{Loading: true}
	f.mu.Unlock()

	requestID := uuid.NewString()
	data, err := f.get(ctx, requestID)

	result := State[T]{}
	if err != nil {
		result.Err = err
		f.log.Debug("fetch failed",
			zap.String("url", f.url),
			zap.String("request_id", requestID),
			zap.Error(err))
	} else {
		result.Data = data
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		// A newer request was issued while this one was in flight; its
		// outcome wins regardless of arrival order.
		f.log.Debug("discarding stale response",
			zap.String("url", f.url),
			zap.String("request_id", requestID),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", f.seq))
		return f.state
	}
	f.state = result
	return result
}

func (f *Fetcher[T]) get(ctx context.Context, requestID string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	f.log.Debug("fetched data",
		zap.String("url", f.url),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return &out, nil
}
