package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"tablewatch"`
	Password string `env:"PASSWORD"                envDefault:"tablewatch"`
	Name     string `env:"NAME"                    envDefault:"tablewatch"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}

// CacheConfig controls the last-sent snapshot cache.
type CacheConfig struct {
	// Enabled toggles the Redis read-through cache for last-sent snapshots.
	// When disabled every monitor pass reads the snapshot from the store.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// LastSentTTL bounds snapshot staleness when invalidation is missed,
	// for example when another writer updates the store directly.
	LastSentTTL time.Duration `env:"CACHE_LAST_SENT_TTL" envDefault:"10m"`
}

// Sanitize enforces safe cache defaults.
func (c *CacheConfig) Sanitize() {
	if c.LastSentTTL <= 0 {
		c.LastSentTTL = 10 * time.Minute
	}
}
