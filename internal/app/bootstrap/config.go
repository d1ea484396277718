// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the CyVox console.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: CYVOX_API_BASE_URL, CYVOX_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8080", Desc: "Base URL of the CyVox backend API"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "cyvox-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Demo operator credentials. Real authentication is out of scope for the
	// console; the login surface accepts exactly this one pair.
	{Name: "admin_email", Default: "admin@cyvox.gov", Desc: "Operator login email"},
	{Name: "admin_password", Default: "admin123", Desc: "Operator login password"},

	// Login audit storage. Leave mongo_uri empty to run without MongoDB.
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI for login audit records (blank disables)"},
	{Name: "mongo_database", Default: "cyvox_console", Desc: "MongoDB database name"},
	{Name: "audit_log_auth", Default: "log", Desc: "Auth event logging: 'db', 'log', 'all', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CYVOX", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),
		AuditLogAuth:  appValues.String("audit_log_auth"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It catches configuration mistakes early, before any connections are made:
// the upstream base URL must parse, and the Mongo URI (when set) must be
// well-formed.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: must be an absolute URL", appCfg.APIBaseURL)
	}

	if appCfg.AdminEmail == "" || appCfg.AdminPassword == "" {
		return fmt.Errorf("admin_email and admin_password must not be empty")
	}

	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	return nil
}
