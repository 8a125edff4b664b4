// Package fifaapi fetches the group-stage calendar from the FIFA public API.
package fifaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Dosada05/prono-scoreboard/models"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{httpClient: httpClient, url: url}
}

// Fetch downloads the calendar, bypassing intermediate caches.
func (c *Client) Fetch(ctx context.Context) (*models.FifaCalendarResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar request: %w", err)
	}
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}
	return decode(resp.Body)
}

// LoadFile decodes a calendar payload saved on disk.
func LoadFile(path string) (*models.FifaCalendarResponse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar payload %s: %w", path, err)
	}
	defer file.Close()
	return decode(file)
}

// FileSource serves a saved payload wherever a live client is expected.
type FileSource struct {
	Path string
}

func (f FileSource) Fetch(ctx context.Context) (*models.FifaCalendarResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(f.Path)
}

func decode(r io.Reader) (*models.FifaCalendarResponse, error) {
	var payload models.FifaCalendarResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode calendar payload: %w", err)
	}
	return &payload, nil
}
