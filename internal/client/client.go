// Package client is the harness side of the replay cache server API. Its
// LoadCache and PersistCache methods satisfy the interceptor's collaborator
// contracts directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-replay-cache/internal/models"
)

// bypassHeader marks client traffic as internal so the installed
// interceptor never records or replays its own persistence calls.
const bypassHeader = "X-E2E-Server-Request"

// Client talks to a replay cache server for one test run.
type Client struct {
	baseURL    string
	runID      string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client for the given server. An empty runID gets a
// generated one.
func New(baseURL, runID string, logger *zap.Logger) *Client {
	if runID == "" {
		runID = uuid.NewString()
	}

	return &Client{
		baseURL:    baseURL,
		runID:      runID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// RunID returns the test-run identifier recordings are stored under.
func (c *Client) RunID() string {
	return c.runID
}

// LoadCache downloads the recorded cache map for this run.
func (c *Client) LoadCache(ctx context.Context) (models.CacheMap, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recordingURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	req.Header.Set(bypassHeader, "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download recording: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download recording: server returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	var m models.CacheMap
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}

	c.logger.Info("Downloaded recording",
		zap.String("run_id", c.runID),
		zap.Int("entries", len(m)))
	return m, nil
}

// PersistCache uploads the full cache map for this run, replacing any
// previous recording.
func (c *Client) PersistCache(ctx context.Context, m models.CacheMap) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode recording: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.recordingURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set(bypassHeader, "true")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload recording: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to upload recording: server returned %s", resp.Status)
	}

	c.logger.Debug("Uploaded recording",
		zap.String("run_id", c.runID),
		zap.Int("entries", len(m)))
	return nil
}

func (c *Client) recordingURL() string {
	return fmt.Sprintf("%s/cache/%s", c.baseURL, c.runID)
}
