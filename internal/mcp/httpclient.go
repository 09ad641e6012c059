package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/liftmarks/internal/badges"
	"github.com/meltforce/liftmarks/internal/storage"
)

// HTTPClient implements DataSource by calling the Liftmarks REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, userID int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if userID > 0 {
		req.Header.Set("X-User-ID", strconv.Itoa(userID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) BadgeProgress(ctx context.Context, userID int) ([]badges.BadgeProgress, error) {
	body, err := c.get(ctx, "/api/v1/badges", userID)
	if err != nil {
		return nil, err
	}

	var progress []badges.BadgeProgress
	if err := json.Unmarshal(body, &progress); err != nil {
		return nil, fmt.Errorf("httpclient: decode badge progress: %w", err)
	}
	return progress, nil
}

// NewlyUnlockable derives the unlockable set from the progress endpoint.
// Persisted unlocks carry their stored timestamp; a badge reported unlocked
// without one has newly qualified and is waiting for a check call.
func (c *HTTPClient) NewlyUnlockable(ctx context.Context, userID int) ([]string, error) {
	progress, err := c.BadgeProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, p := range progress {
		if p.Unlocked && p.UnlockedAt == nil {
			ids = append(ids, p.Badge.ID)
		}
	}
	return ids, nil
}

func (c *HTTPClient) TrainingStats(ctx context.Context, userID int) (*badges.Stats, error) {
	body, err := c.get(ctx, "/api/v1/stats", userID)
	if err != nil {
		return nil, err
	}

	var stats badges.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}

func (c *HTTPClient) RecentUnlocks(ctx context.Context, userID int) ([]storage.UnlockedBadge, error) {
	body, err := c.get(ctx, "/api/v1/badges/unlocked", userID)
	if err != nil {
		return nil, err
	}

	var unlocks []storage.UnlockedBadge
	if err := json.Unmarshal(body, &unlocks); err != nil {
		return nil, fmt.Errorf("httpclient: decode unlocks: %w", err)
	}
	return unlocks, nil
}

// BadgeCatalog extracts badge definitions from the progress endpoint. The
// REST API has no standalone catalog route since progress always carries the
// full catalog.
func (c *HTTPClient) BadgeCatalog(ctx context.Context) ([]badges.Badge, error) {
	progress, err := c.BadgeProgress(ctx, 0)
	if err != nil {
		return nil, err
	}

	catalog := make([]badges.Badge, 0, len(progress))
	for _, p := range progress {
		catalog = append(catalog, p.Badge)
	}
	return catalog, nil
}
