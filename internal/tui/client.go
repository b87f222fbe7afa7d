package tui

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

// APIClient talks to the streaming API from the terminal client.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the API at baseURL
// (e.g. "http://localhost:8080").
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SelectResult is the API's answer to a /select call.
type SelectResult struct {
	SessionID string     `json:"session_id"`
	Choices   [][]string `json:"choices"`
}

// Select submits the raw title lines and returns the session with its
// choice previews.
func (c *APIClient) Select(ctx context.Context, titles, queryType string) (*SelectResult, error) {
	body, err := c.post(ctx, "/select", map[string]any{
		"titles": titles,
		"type":   queryType,
	})
	if err != nil {
		return nil, err
	}

	var result SelectResult
	if err := json.Unmarshal(body, &result); err != nil {
		// The API answers some failures with a plain string.
		var message string
		if json.Unmarshal(body, &message) == nil {
			return nil, fmt.Errorf("%s", message)
		}
		return nil, err
	}
	return &result, nil
}

// Download submits the chosen index per group. The API acknowledges
// immediately; downloads run server side.
func (c *APIClient) Download(ctx context.Context, sessionID string, indices []int) error {
	body, err := c.post(ctx, "/download", map[string]any{
		"session_id": sessionID,
		"indices":    indices,
	})
	if err != nil {
		return err
	}

	var message string
	if json.Unmarshal(body, &message) == nil && message != "" {
		return fmt.Errorf("%s", message)
	}
	return nil
}

func (c *APIClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
