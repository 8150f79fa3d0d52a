package sportsblaze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scout-data-service/internal/domain"
	"scout-data-service/internal/sources"
)

const (
	sourceName         = "sportsblaze"
	defaultBaseURL     = "https://api.sportsblaze.com"
	defaultHTTPTimeout = 10 * time.Second
)

// Config controls how the client reaches the daily schedule endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches the daily schedule feed. It is the second link in the
// schedule fallback chain and needs no rate limiting; the feed is a static
// per-day document.
type Client struct {
	baseURL string
	apiKey  string
	doer    *http.Client
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
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  cfg.APIKey,
		doer:    doer,
	}
}

func (c *Client) Name() string { return sourceName }

// FetchGames retrieves the schedule document for a date.
func (c *Client) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: missing api key: %w", sourceName, sources.ErrNotConfigured)
	}

	url := fmt.Sprintf("%s/nba/v1/schedule/daily/%s.json", c.baseURL, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No schedule document exists for off days.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", sourceName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", sourceName, err)
	}

	records := make([]domain.GameRecord, 0, len(payload.Games))
	for _, g := range payload.Games {
		record, ok := mapGame(g, date)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func mapGame(g gameJSON, date string) (domain.GameRecord, bool) {
	home := teamAbbr(g.Teams.Home)
	away := teamAbbr(g.Teams.Away)
	if home == "" || away == "" {
		return domain.GameRecord{}, false
	}

	record := domain.GameRecord{
		HomeAbbr: home,
		AwayAbbr: away,
		Date:     date,
		Status:   domain.MapStatus(g.Status),
		Arena:    g.Venue.Name,
		Source:   sourceName,
	}
	if g.ID != "" {
		record.ExternalID = sourceName + "-" + g.ID
	}

	if start := parseStart(g.Date.StartTime); start != nil {
		record.StartTime = start
	} else {
		record.TimeText = strings.TrimSpace(g.Date.Time)
	}
	return record, true
}

// teamAbbr prefers the short alias and falls back to the longer abbreviation
// field; the feed has carried either depending on vintage.
func teamAbbr(t teamJSON) string {
	if t.Alias != "" {
		return strings.ToUpper(t.Alias)
	}
	return strings.ToUpper(t.Abbreviation)
}

func parseStart(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		utc := ts.UTC()
		return &utc
	}
	return nil
}
