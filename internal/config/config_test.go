package config

import (
	"testing"
	"time"

	"github.com/labstack/gommon/log"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "bogus")

	c := LoadCacheConfig()
	if !c.Enabled || !c.Methods["GET"] || !c.Methods["HEAD"] || c.Methods["POST"] {
		t.Fatalf("unexpected cache config %+v", c)
	}
	if c.TTL != 30*time.Second {
		t.Fatalf("TTL = %s, want fallback 30s", c.TTL)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_ENABLED", "off")

	c := LoadRateLimitConfig()
	if c.Enabled {
		t.Fatal("expected rate limit disabled")
	}
	if c.Capacity != 1 {
		t.Fatalf("Capacity = %d, want 1", c.Capacity)
	}
	if c.TTL != 2*time.Minute {
		t.Fatalf("TTL = %s, want 2m", c.TTL)
	}
}

func TestLoadRedisConfigHostPort(t *testing.T) {
	t.Setenv("REDIS_ADDR", "ignored:1")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	if got := LoadRedisConfig().Addr; got != "cache:6380" {
		t.Fatalf("Addr = %q", got)
	}
}

func TestLoadGeocoderConfig(t *testing.T) {
	t.Setenv("GEOCODER_API_KEY", "k")
	t.Setenv("GEOCODER_CACHE_TTL", "1h")
	g := LoadGeocoderConfig()
	if g.APIKey != "k" || g.CacheTTL != time.Hour || g.Timeout != 10*time.Second || g.CachePrefix != "geo" {
		t.Fatalf("unexpected geocoder config %+v", g)
	}
}

func TestParseLogLevel(t *testing.T) {
	if ParseLogLevel("debug") != log.DEBUG || ParseLogLevel("nonsense") != log.INFO {
		t.Fatal("unexpected log level mapping")
	}
}
