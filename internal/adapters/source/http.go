package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/matchday/internal/domain/model"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxBodyBytes       = 8 << 20
)

// HTTPSource fetches the bundle from a static URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTPSource for url.
func NewHTTP(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch performs a GET and decodes the body. YAML is used when the response
// content type or the URL suffix says so.
func (s *HTTPSource) Fetch(ctx context.Context) (model.Bundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return model.Bundle{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.Bundle{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.Bundle{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.Bundle{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	format := formatFor(req.URL.Path)
	switch resp.Header.Get("Content-Type") {
	case "application/yaml", "application/x-yaml", "text/yaml":
		format = FormatYAML
	}
	return Decode(data, format)
}

// String returns the URL.
func (s *HTTPSource) String() string { return s.url }
