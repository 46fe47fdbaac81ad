// internal/common/http/client.go
// Package http provides the shared outbound HTTP client used by the oracle
// and the data providers. Callers build requests with
// http.NewRequestWithContext, so cancellation rides on the request itself.
package http

import (
	"net/http"
	"time"
)

// Client wraps a single http.Client so every upstream call shares one
// connection pool and one hard timeout ceiling.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
