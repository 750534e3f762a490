package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "LOG_LEVEL", "DATABASE_PATH", "SMTP_USER", "SMTP_PASS",
		"REDIS_ADDR", "CONTACT_RATE_LIMIT", "CONTACT_RATE_WINDOW",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DatabasePath != "messages.db" {
		t.Errorf("DatabasePath = %q, want messages.db", cfg.DatabasePath)
	}
	if cfg.ContactRateWindow != 10*time.Minute {
		t.Errorf("ContactRateWindow = %v, want 10m", cfg.ContactRateWindow)
	}
	if cfg.Production() {
		t.Error("default environment should not be production")
	}
	if cfg.NotificationsEnabled() {
		t.Error("notifications should be disabled without SMTP credentials")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_PATH", "/var/lib/portfolio/messages.db")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("CONTACT_RATE_LIMIT", "3")
	t.Setenv("CONTACT_RATE_WINDOW", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.DatabasePath != "/var/lib/portfolio/messages.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.Production() {
		t.Error("expected production")
	}
	if !cfg.NotificationsEnabled() {
		t.Error("expected notifications enabled")
	}
	if cfg.ContactRateLimit != 3 || cfg.ContactRateWindow != time.Hour {
		t.Errorf("rate limit = %d per %v", cfg.ContactRateLimit, cfg.ContactRateWindow)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CONTACT_RATE_WINDOW", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error for invalid duration")
	}
}
