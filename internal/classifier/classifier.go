// Package classifier turns an image buffer into a single food label.
package classifier

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

// Classifier returns the top label for an image.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (string, error)
}

// Func adapts a plain function to Classifier.
type Func func(ctx context.Context, image []byte) (string, error)

func (f Func) Classify(ctx context.Context, image []byte) (string, error) { return f(ctx, image) }

// HTTPClient posts the raw image to a model-serving endpoint that answers
// {"label": "..."}.
type HTTPClient struct {
	URL    string
	client *http.Client
}

// NewHTTPClient builds a client with a per-request timeout.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{URL: url, client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) Classify(ctx context.Context, image []byte) (string, error) {
	if c.URL == "" {
		return "", fmt.Errorf("classifier url not set")
	}
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.URL, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", http.DetectContentType(image))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if strings.TrimSpace(result.Label) == "" {
		return "", fmt.Errorf("no label in response")
	}
	return result.Label, nil
}
