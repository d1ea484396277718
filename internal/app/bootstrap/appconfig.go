// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for the CyVox console.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles the
// framework-level settings (HTTP ports, TLS, logging level, CORS, limits);
// AppConfig is everything specific to this console.
type AppConfig struct {
	// Upstream CyVox API
	APIBaseURL string // base URL of the CyVox backend (e.g. http://localhost:8080)

	// Session management
	SessionKey    string // secret key for signing session cookies
	SessionName   string // cookie name (default: cyvox-session)
	SessionDomain string // cookie domain (blank means current host)

	// Operator credentials (simulated login; a placeholder for real auth)
	AdminEmail    string // the one accepted login email
	AdminPassword string // the one accepted password (bcrypt-hashed at startup)

	// Login audit storage (optional; empty URI disables auditing)
	MongoURI      string
	MongoDatabase string
	AuditLogAuth  string // "db", "log", "all", or "off"; only "db" and "all" write to Mongo
}

// AuditEnabled reports whether login auditing should write to MongoDB.
func (c AppConfig) AuditEnabled() bool {
	if c.MongoURI == "" {
		return false
	}
	return c.AuditLogAuth == "db" || c.AuditLogAuth == "all"
}
