package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxAPIBody = 64 << 20

// APIClient fetches patent records from an HTTP endpoint returning JSON.
type APIClient struct {
	http *http.Client
}

func NewAPIClient(timeout time.Duration) *APIClient {
	return &APIClient{http: &http.Client{Timeout: timeout}}
}

// Fetch issues a GET with the given headers. Any non-2xx status is an error.
func (c *APIClient) Fetch(ctx context.Context, url string, headers map[string]string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return DecodeRecords(body)
}
