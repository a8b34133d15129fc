package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Errorf("expected default backend %q, got %q", StoreMemory, cfg.StoreBackend)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.TokenExpiry != 24*time.Hour {
		t.Errorf("expected default expiry 24h, got %v", cfg.TokenExpiry)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_BACKEND", "cassandra")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown store backend")
	}
}

func TestLoadParsesDurations(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_EXPIRY", "90m")
	t.Setenv("CACHE_TTL", "bogus")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenExpiry != 90*time.Minute {
		t.Errorf("expected 90m expiry, got %v", cfg.TokenExpiry)
	}
	// Unparsable values fall back to the default.
	if cfg.CacheTTL != time.Minute {
		t.Errorf("expected default ttl, got %v", cfg.CacheTTL)
	}
}
