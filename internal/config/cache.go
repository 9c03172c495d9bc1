package config

import "time"

// CacheConfig controls the response cache applied to the public deal browse
// endpoints.  Caching is disabled when Enabled is false or when no Redis
// client could be constructed.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults keep the browse endpoints fresh enough for a countdown UI.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envBool("CACHE_ENABLED", true),
        TTL:     envDur("CACHE_TTL", 15*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "cache"),
    }
}
