package config

import "testing"

func Test_Load_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("default port: %q", cfg.Port)
	}
	if cfg.SweepIntervalMS != 15000 || cfg.StaleAfterMS != 10000 {
		t.Fatalf("sweep defaults: %d / %d", cfg.SweepIntervalMS, cfg.StaleAfterMS)
	}
	if cfg.Prod() {
		t.Fatal("dev by default")
	}
}

func Test_Load_Env(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("STALE_AFTER_MS", "2500")
	t.Setenv("APP_ENV", "prod")

	cfg := Load()
	if cfg.Port != "9999" || cfg.StaleAfterMS != 2500 || !cfg.Prod() {
		t.Fatalf("env override not applied: %+v", cfg)
	}
}

func Test_Atoi_Fallback(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MIN", "not-a-number")
	if cfg := Load(); cfg.RateLimitPerMin != 0 {
		t.Fatalf("malformed int must fall back to 0, got %d", cfg.RateLimitPerMin)
	}
}
