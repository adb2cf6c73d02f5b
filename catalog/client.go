package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mutuel/models"
	"mutuel/service"
)

// Client is an HTTP implementation of the race/entry catalog boundary.
// Every request runs under the client timeout so a slow catalog can never
// stall a settlement run indefinitely.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ service.RaceCatalog = (*Client)(nil)

// NewClient creates a catalog client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetEntries returns the entry list for a race
func (c *Client) GetEntries(ctx context.Context, raceID string) ([]models.RaceEntry, error) {
	var entries []models.RaceEntry
	if err := c.getJSON(ctx, fmt.Sprintf("/races/%s/entries", url.PathEscape(raceID)), &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch entries for race %s: %w", raceID, err)
	}
	return entries, nil
}

// GetRaceResult returns the race result; Finalized is false while the race
// has not been made official
func (c *Client) GetRaceResult(ctx context.Context, raceID string) (*models.RaceResult, error) {
	var result models.RaceResult
	if err := c.getJSON(ctx, fmt.Sprintf("/races/%s/result", url.PathEscape(raceID)), &result); err != nil {
		return nil, fmt.Errorf("failed to fetch result for race %s: %w", raceID, err)
	}
	if result.RaceID == "" {
		result.RaceID = raceID
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}
