// Package healthcheck probes a deployed service's health endpoint with a
// read-only GET. It serves two roles: a warning-severity readiness check
// (is the current deployment responding?) and a post-release verification.
package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/greenlight-dev/greenlight/pkg/check"
)

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealHTTPClient uses the real net/http package.
type RealHTTPClient struct {
	Timeout time.Duration
}

// Do executes an HTTP request.
func (c *RealHTTPClient) Do(req *http.Request) (*http.Response, error) {
	client := &http.Client{Timeout: c.Timeout}
	return client.Do(req)
}

// Check verifies that a service URL responds with the expected status.
type Check struct {
	URL            string        // target URL (required)
	ExpectedStatus int           // expected HTTP status (default: 200)
	Timeout        time.Duration // request timeout (default: 5s)
	Client         HTTPClient    // injected for testing
}

// Run executes the health check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "health: " + c.URL,
	}

	parsedURL, err := url.Parse(c.URL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return result.Failf("invalid URL: %s", c.URL)
	}

	expected := c.ExpectedStatus
	if expected == 0 {
		expected = http.StatusOK
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return result.Failf("failed to build request: %v", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return result.Failf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	result.AddDetailf("status: %d", resp.StatusCode)

	if resp.StatusCode != expected {
		err := fmt.Errorf("status %d != expected %d", resp.StatusCode, expected)
		return result.Fail(fmt.Sprintf("status %d != expected %d", resp.StatusCode, expected), err)
	}

	result.Status = check.StatusOK
	return result
}
