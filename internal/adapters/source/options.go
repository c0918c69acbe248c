package source

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the HTTPSource.
type Option func(*HTTPSource)

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}
