package config

import "time"

// GeocoderConfig configures the MapQuest client and its Redis result cache.
type GeocoderConfig struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	CacheTTL    time.Duration
	CachePrefix string
}

// LoadGeocoderConfig reads GEOCODER_* variables.  An empty BaseURL selects the
// public MapQuest endpoint.
func LoadGeocoderConfig() GeocoderConfig {
	return GeocoderConfig{
		APIKey:      envStr("GEOCODER_API_KEY", ""),
		BaseURL:     envStr("GEOCODER_BASE_URL", ""),
		Timeout:     envDur("GEOCODER_TIMEOUT", 10*time.Second),
		CacheTTL:    envDur("GEOCODER_CACHE_TTL", 24*time.Hour),
		CachePrefix: envStr("GEOCODER_CACHE_PREFIX", "geo"),
	}
}
