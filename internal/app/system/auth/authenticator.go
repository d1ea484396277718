package auth

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator validates operator credentials against the one configured
// pair. This is a deliberate placeholder for a real identity provider: the
// console's job is complaint triage, not account management, so exactly one
// demo identity exists.
type Authenticator struct {
	email        string
	passwordHash []byte
	principal    Principal
	log          *zap.Logger
}

// NewAuthenticator hashes the configured password and fixes the demo
// identity that successful logins produce.
func NewAuthenticator(email, password string, logger *zap.Logger) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Authenticator{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: hash,
		principal: Principal{
			ID:    "1",
			Name:  "Detective Sarah Johnson",
			Email: strings.ToLower(strings.TrimSpace(email)),
			Role:  "admin",
		},
		log: logger,
	}, nil
}

// Login returns the demo Principal and true when the pair matches, or a zero
// Principal and false otherwise. No principal state is retained here; the
// caller establishes the session on success.
func (a *Authenticator) Login(email, password string) (Principal, bool) {
	if strings.ToLower(strings.TrimSpace(email)) != a.email {
		return Principal{}, false
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return Principal{}, false
	}
	return a.principal, true
}
