package balldontlie

import "time"

const (
	sourceName         = "balldontlie"
	defaultBaseURL     = "https://api.balldontlie.io/v1"
	defaultPerPage     = 100
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxPages    = 5
	// Cap on cursor pages when walking the full player list.
	maxPlayerPages = 100
	// The free tier answers 429 without a Retry-After header; the quota
	// window is a minute, so one full window is always enough.
	rateLimitCooldown = 60 * time.Second
)
