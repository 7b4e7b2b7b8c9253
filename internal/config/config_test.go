package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	for _, k := range []string{"CACHE_ENABLED", "CACHE_METHODS", "CACHE_TTL", "CACHE_PREFIX", "CACHE_MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache should default to enabled")
	}
	if !cfg.Methods["GET"] || cfg.Methods["POST"] {
		t.Fatalf("default methods = %v, want GET only", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("default TTL = %v", cfg.TTL)
	}
	if cfg.Prefix != "cache" {
		t.Fatalf("default prefix = %q", cfg.Prefix)
	}
	if cfg.MaxBodyBytes != 1048576 {
		t.Fatalf("default max body = %d", cfg.MaxBodyBytes)
	}
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")
	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Fatal("CACHE_ENABLED=false ignored")
	}
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Fatalf("methods = %v, want GET and HEAD", cfg.Methods)
	}
	if cfg.TTL != 2*time.Minute {
		t.Fatalf("TTL = %v", cfg.TTL)
	}
}

func TestLoadCacheConfigBadTTLFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	if cfg := LoadCacheConfig(); cfg.TTL != time.Second {
		t.Fatalf("unparseable TTL = %v, want 1s fallback", cfg.TTL)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-3")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s") // below 5 intervals
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Fatalf("refill tokens = %d, want clamp to 1", cfg.RefillTokens)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("TTL = %v, want 5x the refill interval", cfg.TTL)
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
		"RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_KEY_STRATEGY",
	} {
		t.Setenv(k, "")
	}
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled || cfg.Capacity != 60 || cfg.RefillTokens != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.KeyStrategy != "ip_user_route" {
		t.Fatalf("default key strategy = %q", cfg.KeyStrategy)
	}
}

func TestEnvBoolParsing(t *testing.T) {
	t.Setenv("SOME_FLAG", "on")
	if !envBool("SOME_FLAG", false) {
		t.Fatal("'on' should read as true")
	}
	t.Setenv("SOME_FLAG", "OFF")
	if envBool("SOME_FLAG", true) {
		t.Fatal("'OFF' should read as false")
	}
	t.Setenv("SOME_FLAG", "maybe")
	if !envBool("SOME_FLAG", true) {
		t.Fatal("unparseable value should fall back to the default")
	}
}
