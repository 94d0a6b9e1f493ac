package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultFetchTimeout = 30 * time.Second

// HTTP is a dataset served over http:// or https://.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP returns a Source fetching url with GET. A nil client gets a
// default client with a 30s timeout.
func NewHTTP(url string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &HTTP{url: url, client: client}
}

func (h *HTTP) Name() string { return h.url }

func (h *HTTP) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("http get %s: unexpected status %d", h.url, resp.StatusCode)
	}
	return resp.Body, nil
}
