package config_test

import (
	"testing"

	"geoanalyzer/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "PORT", "UPLOAD_DIR", "MAX_UPLOAD_MB",
		"JWT_SECRET", "AUTH_REQUIRED", "ADMIN_USER", "ADMIN_PASSWORD",
		"API_DEFAULT_LIMIT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.UploadDir != "uploads" || cfg.MaxUploadMB != 16 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AdminUser != "admin" || cfg.DefaultLimit != 200 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AuthRequired {
		t.Fatal("auth should be optional by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_DIR", "/tmp/surveys")
	t.Setenv("MAX_UPLOAD_MB", "32")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("ADMIN_USER", "geo")
	t.Setenv("API_DEFAULT_LIMIT", "50")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.UploadDir != "/tmp/surveys" || cfg.MaxUploadMB != 32 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !cfg.AuthRequired || cfg.AdminUser != "geo" || cfg.DefaultLimit != 50 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if _, err := config.Load(); err == nil {
		t.Fatal("invalid PORT should fail")
	}
}

func TestLoadAuthRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("JWT_SECRET", "")
	if _, err := config.Load(); err == nil {
		t.Fatal("AUTH_REQUIRED without JWT_SECRET should fail")
	}
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := config.Config{MaxUploadMB: 2}
	if cfg.MaxUploadBytes() != 2<<20 {
		t.Fatalf("2 MB should be %d bytes, got %d", 2<<20, cfg.MaxUploadBytes())
	}
}

func TestListenAddr(t *testing.T) {
	cfg := config.Config{Port: 8080}
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.ListenAddr())
	}
}
