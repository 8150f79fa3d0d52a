package config

// Config holds runtime configuration for the sync worker.
type Config struct {
	DatabaseURL string
	Redis       RedisConfig
	BallDontLie BallDontLieConfig
	SportsBlaze SportsBlazeConfig
	NBAStats    NBAStatsConfig
	LLM         LLMConfig
	Sync        SyncConfig
	Metrics     MetricsConfig
}

// RedisConfig controls the shared cache and rate-limit window store. An empty
// Addr keeps everything in process memory (single-worker deployments only:
// the upstream quota is shared, so concurrent workers need Redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SyncConfig controls job scheduling and retry behavior.
type SyncConfig struct {
	ScheduleCron string
	PlayersCron  string
	ScheduleDays int
	MaxAttempts  int
	RetryBackoff Duration
	APITimeout   Duration
	LLMTimeout   Duration
	CacheTTL     Duration
	CronTimezone string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DatabaseURL: envOrDefault(envDatabaseURL, ""),
		Redis: RedisConfig{
			Addr:     envOrDefault(envRedisAddr, ""),
			Password: envOrDefault(envRedisPass, ""),
			DB:       intEnvOrDefault(envRedisDB, 0),
		},
		BallDontLie: loadBallDontLie(),
		SportsBlaze: loadSportsBlaze(),
		NBAStats:    loadNBAStats(),
		LLM:         loadLLM(),
		Sync: SyncConfig{
			ScheduleCron: envOrDefault(envScheduleCron, defaultScheduleCron),
			PlayersCron:  envOrDefault(envPlayersCron, defaultPlayersCron),
			ScheduleDays: intEnvOrDefault(envScheduleDays, defaultScheduleDays),
			MaxAttempts:  intEnvOrDefault(envJobAttempts, defaultJobAttempts),
			RetryBackoff: durationEnvOrDefault(envJobBackoff, defaultJobBackoff),
			APITimeout:   durationEnvOrDefault(envShortTimeout, defaultShortTimeout),
			LLMTimeout:   durationEnvOrDefault(envLongTimeout, defaultLongTimeout),
			CacheTTL:     durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
			CronTimezone: envOrDefault(envCronTimezone, defaultCronTZ),
		},
		Metrics: loadMetrics(),
	}
}
