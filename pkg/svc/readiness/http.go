package readiness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Probe describes an HTTP endpoint polled until it answers with a 2xx status.
type Probe struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
}

// HTTPDoer is the subset of *http.Client used by WaitForHTTP.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// WaitForHTTP polls probe.URL until it answers with a 2xx status or probe.Timeout elapses.
// Connection errors and other statuses keep polling.
func WaitForHTTP(ctx context.Context, client HTTPDoer, probe Probe) error {
	if probe.URL == "" {
		return ErrInvalidProbe
	}

	if client == nil {
		client = http.DefaultClient
	}

	err := PollForReadiness(ctx, probe.Timeout, probe.Interval, func(ctx context.Context) (bool, error) {
		return checkHTTP(ctx, client, probe.URL)
	})
	if err != nil {
		return fmt.Errorf("%s is not ready: %w", probe.URL, err)
	}

	return nil
}

func checkHTTP(ctx context.Context, client HTTPDoer, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build probe request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, nil //nolint:nilerr // returning nil to continue polling
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices, nil
}
