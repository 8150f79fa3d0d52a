package config

import "time"

const (
	envAnthropicKey = "ANTHROPIC_API_KEY"
	envLLMModel     = "LLM_MODEL"
	envLLMMaxTokens = "LLM_MAX_TOKENS"
	envLLMPollBase  = "LLM_POLL_BASE_URL"
	envLLMPollEvery = "LLM_POLL_INTERVAL"
	envLLMPollMax   = "LLM_POLL_MAX"

	defaultLLMModel     = "claude-sonnet-4-20250514"
	defaultLLMMaxTokens = 2000
	defaultPollInterval = 5 * time.Second
	defaultPollMax      = 60
)

// LLMConfig controls the generative schedule-extraction fallback.
type LLMConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	// PollBaseURL switches the backend to asynchronous start-then-poll mode
	// when set.
	PollBaseURL  string
	PollInterval Duration
	PollMax      int
}

func loadLLM() LLMConfig {
	return LLMConfig{
		APIKey:       envOrDefault(envAnthropicKey, ""),
		Model:        envOrDefault(envLLMModel, defaultLLMModel),
		MaxTokens:    intEnvOrDefault(envLLMMaxTokens, defaultLLMMaxTokens),
		PollBaseURL:  envOrDefault(envLLMPollBase, ""),
		PollInterval: durationEnvOrDefault(envLLMPollEvery, defaultPollInterval),
		PollMax:      intEnvOrDefault(envLLMPollMax, defaultPollMax),
	}
}
