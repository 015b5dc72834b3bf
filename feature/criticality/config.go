package criticality

import "time"

// Config holds configuration for the criticality engine.
type Config struct {
	// TierCritical is the catalog key (rank number or tier name) bound to CRITICAL.
	TierCritical string `mapstructure:"tier_critical" default:"1"`
	// TierHigh is the catalog key bound to HIGH. It shares rank 1 with CRITICAL by default.
	TierHigh string `mapstructure:"tier_high" default:"1"`
	// TierMedium is the catalog key bound to MEDIUM.
	TierMedium string `mapstructure:"tier_medium" default:"2"`
	// ResolvedKeepsFlag keeps the critical flag on assets whose resolved record still qualifies.
	ResolvedKeepsFlag bool `mapstructure:"resolved_keeps_flag" default:"true"`
	// CatalogCacheSeconds is how long catalog lookups are cached. Zero disables caching.
	CatalogCacheSeconds int `mapstructure:"catalog_cache_seconds" default:"60"`
}

// DefaultConfig returns the configuration used when none is loaded.
func DefaultConfig() Config {
	return Config{
		TierCritical:        "1",
		TierHigh:            "1",
		TierMedium:          "2",
		ResolvedKeepsFlag:   true,
		CatalogCacheSeconds: 60,
	}
}

// TierKeys returns the catalog key configured for every tier.
func (c Config) TierKeys() map[Tier]string {
	return map[Tier]string{
		TierCritical: c.TierCritical,
		TierHigh:     c.TierHigh,
		TierMedium:   c.TierMedium,
	}
}

// CatalogTTL returns the catalog cache TTL.
func (c Config) CatalogTTL() time.Duration {
	if c.CatalogCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CatalogCacheSeconds) * time.Second
}
