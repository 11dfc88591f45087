package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/auth")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day jwt ttl, got %v", cfg.JWTTTL)
	}
	if cfg.CookieName != "token" {
		t.Fatalf("expected cookie name token, got %s", cfg.CookieName)
	}
	if cfg.MailTimeout != 10*time.Second {
		t.Fatalf("expected mail timeout 10s, got %v", cfg.MailTimeout)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development by default")
	}
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/auth")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{AppEnv: " Production "}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
}
