// Package loginstore records operator sign-in and sign-out events.
//
// Auditing is optional: when the console runs without Mongo the store is nil
// and every method is a no-op, so handlers never branch on whether auditing
// is configured.
package loginstore

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Event values for LoginRecord.
const (
	EventLogin  = "login"
	EventLogout = "logout"
)

// LoginRecord is one audit entry in the login_records collection.
type LoginRecord struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Email     string    `bson:"email"`
	Event     string    `bson:"event"`
	IP        string    `bson:"ip,omitempty"`
	UserAgent string    `bson:"user_agent,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

type Store struct {
	c *mongo.Collection
}

// New returns a store over db's login_records collection, or nil when db is
// nil (auditing disabled).
func New(db *mongo.Database) *Store {
	if db == nil {
		return nil
	}
	return &Store{c: db.Collection("login_records")}
}

// Create inserts a LoginRecord. Missing ID and CreatedAt are filled in.
// A nil store drops the record silently.
func (s *Store) Create(ctx context.Context, rec LoginRecord) error {
	if s == nil {
		return nil
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// CreateFrom builds a LoginRecord from the HTTP request and inserts it.
// It extracts client IP (X-Forwarded-For → X-Real-IP → RemoteAddr) and user agent.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, userID, email, event string) error {
	if s == nil {
		return nil
	}
	return s.Create(ctx, LoginRecord{
		UserID:    userID,
		Email:     email,
		Event:     event,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
}

func clientIP(r *http.Request) string {
	// Respect common proxy headers first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF may contain a list; first is original client
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		return strings.TrimSpace(xr)
	}
	// Fallback: parse RemoteAddr "ip:port"
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
