package config

import "time"

// CacheConfig defines settings for the GET response cache middleware.
// Caching is disabled when Enabled is false or no Redis client could
// be created. Entries are keyed by route plus query string under the
// given prefix; bodies larger than MaxBodyBytes are not cached.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig builds a CacheConfig from the environment with
// defaults suitable for the browse endpoints (movie and showtime
// reads change rarely between scheduler runs).
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
