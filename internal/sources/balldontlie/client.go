package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"scout-data-service/internal/domain"
	"scout-data-service/internal/metrics"
	"scout-data-service/internal/ratelimit"
	"scout-data-service/internal/sources"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	MaxPages   int
	HTTPClient *http.Client
	Limiter    *ratelimit.Limiter
	Recorder   *metrics.Recorder
	Logger     *slog.Logger
}

// Client fetches games, teams, and players from the balldontlie API and maps
// them to normalized records. All requests pass through the shared rate limit
// window.
type Client struct {
	baseURL  string
	apiKey   string
	maxPages int
	doer     httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Client{
		baseURL:  normalizeBaseURL(cfg.BaseURL),
		apiKey:   cfg.APIKey,
		maxPages: maxPages,
		doer:     newLimitedTransport(resolveHTTPClient(cfg.HTTPClient), cfg.Limiter, cfg.Recorder, cfg.Logger),
	}
}

func (c *Client) Name() string { return sourceName }

// FetchGames retrieves the schedule for a date, walking result pages up to
// the configured cap.
func (c *Client) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: missing api key: %w", sourceName, sources.ErrNotConfigured)
	}

	var records []domain.GameRecord
	page := 1

	for {
		var payload gamesResponse
		params := map[string]string{
			"dates[]":  date,
			"per_page": strconv.Itoa(defaultPerPage),
			"page":     strconv.Itoa(page),
		}
		if err := c.get(ctx, "/games", params, &payload); err != nil {
			return nil, err
		}

		for _, g := range payload.Data {
			records = append(records, mapGame(g))
		}

		if payload.Meta.TotalPages > 0 {
			if page >= payload.Meta.TotalPages {
				break
			}
		} else if len(payload.Data) < defaultPerPage {
			break
		}
		if page >= c.maxPages {
			break
		}
		page++
	}

	return records, nil
}

// FetchTeams retrieves the team catalog.
func (c *Client) FetchTeams(ctx context.Context) ([]domain.TeamRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: missing api key: %w", sourceName, sources.ErrNotConfigured)
	}

	var payload teamsResponse
	if err := c.get(ctx, "/teams", nil, &payload); err != nil {
		return nil, err
	}

	records := make([]domain.TeamRecord, 0, len(payload.Data))
	for _, t := range payload.Data {
		records = append(records, mapTeam(t))
	}
	return records, nil
}

// FetchPlayers walks the full player list with cursor pagination.
func (c *Client) FetchPlayers(ctx context.Context) ([]domain.PlayerRecord, error) {
	return c.fetchPlayerPath(ctx, "/players", nil)
}

// FetchActivePlayers walks the active player list. Records carry Active=true
// so the reconciler can mark everyone else inactive.
func (c *Client) FetchActivePlayers(ctx context.Context) ([]domain.PlayerRecord, error) {
	active := true
	return c.fetchPlayerPath(ctx, "/players/active", &active)
}

func (c *Client) fetchPlayerPath(ctx context.Context, path string, active *bool) ([]domain.PlayerRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: missing api key: %w", sourceName, sources.ErrNotConfigured)
	}

	var records []domain.PlayerRecord
	cursor := 0

	for page := 0; page < maxPlayerPages; page++ {
		params := map[string]string{"per_page": strconv.Itoa(defaultPerPage)}
		if cursor > 0 {
			params["cursor"] = strconv.Itoa(cursor)
		}

		var payload playersResponse
		if err := c.get(ctx, path, params, &payload); err != nil {
			return nil, err
		}

		for _, p := range payload.Data {
			records = append(records, mapPlayer(p, active))
		}

		if payload.Meta.NextCursor == 0 || len(payload.Data) == 0 {
			break
		}
		cursor = payload.Meta.NextCursor
	}

	return records, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.doer.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", sourceName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
