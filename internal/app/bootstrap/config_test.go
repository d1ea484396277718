package bootstrap

import (
	"testing"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		APIBaseURL:    "http://localhost:8080",
		SessionKey:    "0123456789abcdef0123456789abcdef",
		SessionName:   "cyvox-session",
		AdminEmail:    "admin@cyvox.gov",
		AdminPassword: "admin123",
	}
}

func TestValidateConfig_OK(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), testLogger()); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}

func TestValidateConfig_BadBaseURL(t *testing.T) {
	for _, bad := range []string{"", "not a url", "localhost:8080", "/relative/path"} {
		cfg := validAppConfig()
		cfg.APIBaseURL = bad
		if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
			t.Errorf("ValidateConfig accepted api_base_url %q", bad)
		}
	}
}

func TestValidateConfig_MissingCredentials(t *testing.T) {
	cfg := validAppConfig()
	cfg.AdminEmail = ""
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("ValidateConfig accepted empty admin_email")
	}

	cfg = validAppConfig()
	cfg.AdminPassword = ""
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("ValidateConfig accepted empty admin_password")
	}
}

func TestAuditEnabled(t *testing.T) {
	tests := []struct {
		uri  string
		mode string
		want bool
	}{
		{"", "db", false},
		{"mongodb://localhost:27017", "db", true},
		{"mongodb://localhost:27017", "all", true},
		{"mongodb://localhost:27017", "log", false},
		{"mongodb://localhost:27017", "off", false},
	}

	for _, tt := range tests {
		cfg := AppConfig{MongoURI: tt.uri, AuditLogAuth: tt.mode}
		if got := cfg.AuditEnabled(); got != tt.want {
			t.Errorf("AuditEnabled(uri=%q, mode=%q): got %v, want %v", tt.uri, tt.mode, got, tt.want)
		}
	}
}
