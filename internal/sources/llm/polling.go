package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultPollMax      = 60
)

// PollingBackend completes prompts through an asynchronous gateway: it
// submits a job and polls until the job settles or the poll budget runs out.
type PollingBackend struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	interval  time.Duration
	maxPolls  int
	doer      *http.Client
	sleep     func(ctx context.Context, d time.Duration) error
}

// PollingConfig controls the asynchronous backend.
type PollingConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	Interval   time.Duration
	MaxPolls   int
	HTTPClient *http.Client
}

// NewPollingBackend constructs a start-then-poll backend.
func NewPollingBackend(cfg PollingConfig) *PollingBackend {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = defaultPollMax
	}
	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &PollingBackend{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		interval:  interval,
		maxPolls:  maxPolls,
		doer:      doer,
		sleep:     sleepCtx,
	}
}

type jobRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Prompt    string `json:"prompt"`
}

type jobState struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output string `json:"output"`
	Error  string `json:"error"`
}

func (b *PollingBackend) Complete(ctx context.Context, prompt string) (string, error) {
	jobID, err := b.startJob(ctx, prompt)
	if err != nil {
		return "", err
	}

	for poll := 0; poll < b.maxPolls; poll++ {
		if err := b.sleep(ctx, b.interval); err != nil {
			return "", err
		}

		state, err := b.pollJob(ctx, jobID)
		if err != nil {
			return "", err
		}

		switch state.Status {
		case "completed":
			return state.Output, nil
		case "failed", "cancelled":
			msg := state.Error
			if msg == "" {
				msg = state.Status
			}
			return "", fmt.Errorf("llm: job %s %s: %s", jobID, state.Status, msg)
		}
	}

	return "", fmt.Errorf("llm: job %s did not settle within %d polls", jobID, b.maxPolls)
}

func (b *PollingBackend) startJob(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(jobRequest{
		Model:     b.model,
		MaxTokens: b.maxTokens,
		Prompt:    prompt,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/jobs", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	var state jobState
	if err := b.doJSON(req, &state); err != nil {
		return "", fmt.Errorf("llm: start job: %w", err)
	}
	if state.ID == "" {
		return "", fmt.Errorf("llm: start job: empty job id")
	}
	return state.ID, nil
}

func (b *PollingBackend) pollJob(ctx context.Context, jobID string) (*jobState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/v1/jobs/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	var state jobState
	if err := b.doJSON(req, &state); err != nil {
		return nil, fmt.Errorf("llm: poll job %s: %w", jobID, err)
	}
	return &state, nil
}

func (b *PollingBackend) doJSON(req *http.Request, out interface{}) error {
	resp, err := b.doer.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
