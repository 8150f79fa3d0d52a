package config

import "time"

const (
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envDatabaseURL = "DATABASE_URL"
	envRedisAddr   = "REDIS_ADDR"
	envRedisDB     = "REDIS_DB"
	envRedisPass   = "REDIS_PASSWORD"

	envScheduleCron = "SCHEDULE_SYNC_CRON"
	envPlayersCron  = "PLAYERS_SYNC_CRON"
	envScheduleDays = "SCHEDULE_SYNC_DAYS"
	envJobAttempts  = "JOB_MAX_ATTEMPTS"
	envJobBackoff   = "JOB_RETRY_BACKOFF"
	envShortTimeout = "JOB_TIMEOUT_API"
	envLongTimeout  = "JOB_TIMEOUT_LLM"
	envCacheTTL     = "SCHEDULE_CACHE_TTL"
	envCronTimezone = "SYNC_CRON_TZ"

	defaultMetricsPort = "9090"
	// Mon/Thu 6 AM in the configured cron timezone, matching the schedule
	// feed's publish cadence.
	defaultScheduleCron = "0 6 * * 1,4"
	defaultPlayersCron  = "0 5 * * *"
	defaultScheduleDays = 7
	defaultJobAttempts  = 3
	defaultJobBackoff   = 2 * time.Minute
	// API-only sync paths finish quickly; the generative fallback can poll an
	// asynchronous upstream job for minutes.
	defaultShortTimeout = 5 * time.Minute
	defaultLongTimeout  = 30 * time.Minute
	defaultCacheTTL     = time.Hour
	defaultCronTZ       = "America/New_York"
)
