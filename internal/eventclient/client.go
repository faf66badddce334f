package eventclient

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wpras/golfku/config"
)

// Client is a thin HTTP client for the events service. Every call
// carries the configured timeout so a dead service cannot stall the
// main API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(appConfig *config.Config) *Client {
	timeout := time.Duration(appConfig.Events.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(appConfig.Events.ServiceURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Forward replays a request against the events service and returns the
// raw response. The caller owns the response body.
func (c *Client) Forward(ctx context.Context, method, path, rawQuery string, body io.Reader, contentType string) (*http.Response, error) {
	target := c.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.httpClient.Do(req)
}
