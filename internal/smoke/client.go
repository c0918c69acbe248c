package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/matchday/pkg/logger"
)

// maxErrorBody bounds how much of an error response is kept for reporting.
const maxErrorBody = 512

// client issues JSON requests against the service.
type client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
	verbose bool
}

func newClient(cfg *Config, log logger.Logger) *client {
	return &client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
		verbose: cfg.Verbose,
	}
}

// do sends body (if non-nil) as JSON, requires the response status to equal
// want, and decodes the response into out when out is non-nil.
func (c *client) do(ctx context.Context, method, path string, body, out any, want int) error {
	var rd io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if c.verbose {
		c.log.Debug(ctx, "request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.String("requestId", reqID),
			logger.Duration("took", time.Since(start)),
		)
	}

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s: got %d want %d: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, want, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
