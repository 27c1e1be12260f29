package config

import (
	"errors"
	"testing"
)

func TestValidate_RequiresSecrets(t *testing.T) {
	c := &Config{}
	if err := c.Validate(); !errors.Is(err, ErrMissingDSN) {
		t.Fatalf("expected ErrMissingDSN, got %v", err)
	}

	c.DB.DSN = "postgres://localhost/agritradehub"
	if err := c.Validate(); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}

	c.Session.Secret = "s3cr3t"
	if err := c.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("APP_DB_DSN", "postgres://localhost/agritradehub")
	t.Setenv("APP_SESSION_SECRET", "s3cr3t")

	c, err := load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.App.HTTP.Port != 3000 {
		t.Fatalf("default port = %d, want 3000", c.App.HTTP.Port)
	}
	if c.Session.TTLDays != 30 {
		t.Fatalf("default ttl = %d, want 30", c.Session.TTLDays)
	}
	if c.DB.DSN != "postgres://localhost/agritradehub" {
		t.Fatalf("dsn not taken from env: %q", c.DB.DSN)
	}
}
