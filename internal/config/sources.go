package config

const (
	envBdlBaseURL = "BALLDONTLIE_BASE_URL"
	envBdlAPIKey  = "BALLDONTLIE_API_KEY"
	envBdlPages   = "BALLDONTLIE_MAX_PAGES"
	envBdlQuota   = "BALLDONTLIE_RATE_LIMIT"

	envSbBaseURL = "SPORTSBLAZE_BASE_URL"
	envSbAPIKey  = "SPORTSBLAZE_API_KEY"

	envStatsBaseURL = "NBA_STATS_BASE_URL"

	defaultBdlBaseURL = "https://api.balldontlie.io/v1"
	// Free-tier quota on the primary API: 5 requests per minute.
	defaultBdlQuota  = 5
	defaultBdlPages  = 5
	defaultSbBaseURL = "https://api.sportsblaze.com"
	defaultStatsBase = "https://stats.nba.com"
)

// BallDontLieConfig controls how we talk to the primary roster API.
type BallDontLieConfig struct {
	BaseURL   string
	APIKey    string
	MaxPages  int
	RateLimit int
}

// SportsBlazeConfig controls the alternate schedule endpoint.
type SportsBlazeConfig struct {
	BaseURL string
	APIKey  string
}

// NBAStatsConfig controls the legacy stats API used for active-status
// cross-referencing.
type NBAStatsConfig struct {
	BaseURL string
}

func loadBallDontLie() BallDontLieConfig {
	return BallDontLieConfig{
		BaseURL:   envOrDefault(envBdlBaseURL, defaultBdlBaseURL),
		APIKey:    envOrDefault(envBdlAPIKey, ""),
		MaxPages:  intEnvOrDefault(envBdlPages, defaultBdlPages),
		RateLimit: intEnvOrDefault(envBdlQuota, defaultBdlQuota),
	}
}

func loadSportsBlaze() SportsBlazeConfig {
	return SportsBlazeConfig{
		BaseURL: envOrDefault(envSbBaseURL, defaultSbBaseURL),
		APIKey:  envOrDefault(envSbAPIKey, ""),
	}
}

func loadNBAStats() NBAStatsConfig {
	return NBAStatsConfig{
		BaseURL: envOrDefault(envStatsBaseURL, defaultStatsBase),
	}
}
