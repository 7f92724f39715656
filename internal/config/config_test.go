package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()
	if cfg.StoreDriver != DriverPostgres || cfg.JWTTTL != 24*time.Hour || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
}

func TestUsesDefaultSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if cfg := Load(); !cfg.UsesDefaultSecret() {
		t.Fatal("unset JWT_SECRET should fall back to the default")
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	if cfg := Load(); cfg.UsesDefaultSecret() {
		t.Fatal("explicit JWT_SECRET reported as default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("SLOT_LOCK_TTL", "2s")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	if cfg.StoreDriver != DriverMongo || cfg.SlotLockTTL != 2*time.Second || cfg.RateLimitBurst != 3 {
		t.Fatalf("overrides not applied: %#v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			StoreDriver:     DriverMemory,
			JWTSecret:       "s",
			JWTTTL:          time.Hour,
			DefaultTimezone: "UTC",
			AuditQueueSize:  1,
			RateLimitRPS:    1,
			RateLimitBurst:  1,
			SlotLockTTL:     time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.StoreDriver = "sqlite" }, true},
		{"postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }, true},
		{"bad timezone", func(c *Config) { c.DefaultTimezone = "Mars/Olympus" }, true},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero lock ttl", func(c *Config) { c.SlotLockTTL = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
