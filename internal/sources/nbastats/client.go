package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scout-data-service/internal/domain"
)

const (
	sourceName         = "nbastats"
	defaultBaseURL     = "https://stats.nba.com"
	defaultHTTPTimeout = 15 * time.Second
	headshotURLPattern = "https://cdn.nba.com/headshots/nba/latest/1040x760/%d.png"
)

// The stats endpoint rejects requests without browser-looking headers.
var requiredHeaders = map[string]string{
	"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"Referer":            "https://www.nba.com/",
	"Origin":             "https://www.nba.com",
	"Accept":             "application/json",
	"x-nba-stats-origin": "stats",
	"x-nba-stats-token":  "true",
}

// Config controls how the client reaches the stats API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client fetches the league-wide player index from the stats API. Names here
// carry correct diacritics, so records are flagged as canonical for spelling.
type Client struct {
	baseURL string
	doer    *http.Client
	now     func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: defaultHTTPTimeout}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		doer:    doer,
		now:     now,
	}
}

func (c *Client) Name() string { return sourceName }

// FetchPlayers retrieves the current-season player index.
func (c *Client) FetchPlayers(ctx context.Context) ([]domain.PlayerRecord, error) {
	url := c.baseURL + "/stats/commonallplayers"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("IsOnlyCurrentSeason", "1")
	q.Set("LeagueID", "00")
	q.Set("Season", Season(c.now()))
	req.URL.RawQuery = q.Encode()

	for key, value := range requiredHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", sourceName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", sourceName, err)
	}

	return mapPlayers(payload)
}

// Season formats the season string the stats API expects, e.g. "2025-26".
// Seasons roll over in October.
func Season(now time.Time) string {
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}
