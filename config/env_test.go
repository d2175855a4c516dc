package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("RATE_LIMIT", "")

	cfg := LoadConfig()

	if cfg.Server.Port != "5000" {
		t.Errorf("expected default port 5000, got %q", cfg.Server.Port)
	}
	if cfg.DB.DSN == "" {
		t.Error("expected a default database DSN")
	}
	if cfg.Redis.Enabled() {
		t.Error("expected Redis disabled when REDIS_HOST is unset")
	}
	if cfg.RateLimit.Rate != "100-M" {
		t.Errorf("expected default rate limit 100-M, got %q", cfg.RateLimit.Rate)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT", "10-S")

	cfg := LoadConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled() {
		t.Error("expected Redis enabled when REDIS_HOST is set")
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.RateLimit.Rate != "10-S" {
		t.Errorf("expected rate limit 10-S, got %q", cfg.RateLimit.Rate)
	}
}
