// Package probe evaluates the liveness and responsiveness of candidate
// sample sources under a bounded concurrency budget. Probe failures never
// escape the package: they are folded into the endpoint descriptors being
// probed.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client issues a single liveness check against an endpoint address.
// Implementations must honour the context deadline.
type Client interface {
	// Check performs one bounded-time request and returns the measured
	// latency. A non-nil error means the endpoint is unreachable or
	// unhealthy.
	Check(ctx context.Context, address string) (time.Duration, error)
}

// HTTPClient probes endpoints with an HTTP GET.
type HTTPClient struct {
	httpClient *http.Client
}

// NewHTTPClient creates an HTTP probe client. Per-probe deadlines come from
// the context passed to Check, so no client-level timeout is set here.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{},
	}
}

// Check issues a GET against the address and measures wall-clock latency.
// Responses with status >= 400 count as failures.
func (c *HTTPClient) Check(ctx context.Context, address string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return 0, fmt.Errorf("invalid probe address: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	latency := time.Since(start)

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("probe returned status %d", resp.StatusCode)
	}

	return latency, nil
}
