package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.HTTP.Port)
	}
	if cfg.Forms.SessionTTL != 30*time.Minute {
		t.Errorf("expected default session ttl 30m, got %s", cfg.Forms.SessionTTL)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected default cors origins: %v", cfg.HTTP.CORSOrigins)
	}
	if !cfg.S3.UseSSL {
		t.Error("expected S3 SSL to default to true")
	}
}

func TestNewConfig_InvalidDuration(t *testing.T) {
	t.Setenv("FORM_SESSION_TTL", "soon")

	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestNewConfig_ListAndBool(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("S3_USE_SSL", "false")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.HTTP.CORSOrigins[1] != "https://b.example" {
		t.Errorf("expected trimmed origin, got %q", cfg.HTTP.CORSOrigins[1])
	}
	if cfg.S3.UseSSL {
		t.Error("expected S3_USE_SSL=false to be honoured")
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "development",
			Admin:       AdminConfig{Passkey: "111111", SigningKey: "your_secret_key"},
			Forms:       FormsConfig{SessionTTL: time.Minute},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	c := base()
	c.Admin.Passkey = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error for empty passkey")
	}

	c = base()
	c.Admin.Passkey = "12a456"
	if err := c.Validate(); err == nil {
		t.Error("expected error for non numeric passkey")
	}

	c = base()
	c.Environment = "production"
	if err := c.Validate(); err == nil {
		t.Error("expected error for default signing key in production")
	}
}
