// Package cyvox is the console's read-only client for the CyVox backend API.
//
// Every endpoint is wrapped in a fetch.Fetcher so the standard
// data/loading/error state and stale-response discipline apply uniformly.
// The client never caches across loads: each page render triggers fresh
// fetches and shows exactly what the backend returned.
package cyvox

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cyvox/console/internal/app/system/fetch"
	"github.com/cyvox/console/internal/app/system/metrics"
	"go.uber.org/zap"
)

// Client fetches complaint and user data from the CyVox backend.
type Client struct {
	base string
	hc   *http.Client
	log  *zap.Logger

	allComplaints *fetch.Fetcher[AllComplaintsResponse]
	allUsers      *fetch.Fetcher[AllUsersResponse]

	mu      sync.Mutex
	perUser map[string]*fetch.Fetcher[UserComplaintsResponse]
}

// New builds a client rooted at baseURL (e.g. "http://localhost:8080").
// A nil httpClient falls back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := strings.TrimRight(baseURL, "/")
	return &Client{
		base:          base,
		hc:            httpClient,
		log:           logger,
		allComplaints: fetch.New[AllComplaintsResponse](httpClient, base+"/api/complaint/get-all", logger),
		allUsers:      fetch.New[AllUsersResponse](httpClient, base+"/api/user/all", logger),
		perUser:       make(map[string]*fetch.Fetcher[UserComplaintsResponse]),
	}
}

// BaseURL returns the backend root the client is bound to.
func (c *Client) BaseURL() string { return c.base }

// AllComplaints fetches every complaint in the system.
func (c *Client) AllComplaints(ctx context.Context) fetch.State[AllComplaintsResponse] {
	return instrument("complaints_all", func() fetch.State[AllComplaintsResponse] {
		return c.allComplaints.Load(ctx)
	})
}

// AllUsers fetches every registered user.
func (c *Client) AllUsers(ctx context.Context) fetch.State[AllUsersResponse] {
	return instrument("users_all", func() fetch.State[AllUsersResponse] {
		return c.allUsers.Load(ctx)
	})
}

// UserComplaints fetches the complaints filed by one user. Each user ID gets
// its own fetcher so repeated loads for the same user keep the
// latest-request-wins ordering.
func (c *Client) UserComplaints(ctx context.Context, userID string) fetch.State[UserComplaintsResponse] {
	f := c.userFetcher(userID)
	return instrument("complaints_user", func() fetch.State[UserComplaintsResponse] {
		return f.Load(ctx)
	})
}

func (c *Client) userFetcher(userID string) *fetch.Fetcher[UserComplaintsResponse] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.perUser[userID]; ok {
		return f
	}
	u := c.base + "/api/complaint/user/" + url.PathEscape(userID)
	f := fetch.New[UserComplaintsResponse](c.hc, u, c.log)
	c.perUser[userID] = f
	return f
}

// instrument records request count and latency for one logical endpoint.
func instrument[T any](endpoint string, load func() fetch.State[T]) fetch.State[T] {
	start := time.Now()
	st := load()
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	result := "ok"
	if st.Err != nil {
		result = "error"
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, result).Inc()
	return st
}
