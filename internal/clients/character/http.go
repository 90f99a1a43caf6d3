package character

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/stats"
)

const (
	// DefaultTimeout bounds every call to the character service
	DefaultTimeout = 5 * time.Second

	internalTokenHeader = "X-Internal-Token"
)

// Config holds configuration for the HTTP character client
type Config struct {
	// BaseURL of the character service, e.g. http://character-service:3002
	BaseURL string

	// InternalToken is sent on every request as X-Internal-Token
	InternalToken string

	// HTTPClient overrides the default client. Its timeout is used as is.
	HTTPClient *http.Client
}

type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTP creates a character client that talks to the internal HTTP API
func NewHTTP(cfg *Config) (*httpClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if cfg.InternalToken == "" {
		return nil, errors.New("internal token cannot be empty")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.InternalToken,
		client:  client,
	}, nil
}

// Snapshot fetches GET /internal/characters/{id}/snapshot
func (c *httpClient) Snapshot(ctx context.Context, characterID string) (*models.CharacterSnapshot, error) {
	if characterID == "" {
		return nil, errors.New("character ID cannot be empty")
	}

	var snapshot models.CharacterSnapshot
	path := "/internal/characters/" + url.PathEscape(characterID) + "/snapshot"
	if err := c.do(ctx, http.MethodGet, path, nil, &snapshot); err != nil {
		return nil, err
	}

	// Older character services only send base stats and item bonuses
	if snapshot.CalculatedStats == (models.Stats{}) {
		bonuses := make([]models.Stats, 0, len(snapshot.ItemInstances))
		for _, item := range snapshot.ItemInstances {
			bonuses = append(bonuses, item.Bonus)
		}
		snapshot.CalculatedStats = stats.Aggregate(snapshot.BaseStats, bonuses...)
	}

	return &snapshot, nil
}

// ResolveDuelLoot posts POST /internal/duels/resolve
func (c *httpClient) ResolveDuelLoot(ctx context.Context, input *ResolveDuelLootInput) (*models.LootResult, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.WinnerCharacterID == "" || input.LoserCharacterID == "" {
		return nil, errors.New("winner and loser character IDs cannot be empty")
	}

	var result models.LootResult
	if err := c.do(ctx, http.MethodPost, "/internal/duels/resolve", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *httpClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(internalTokenHeader, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrCharacterNotFound, path)
		}
		return &StatusError{StatusCode: resp.StatusCode, Code: eb.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}
	return nil
}
