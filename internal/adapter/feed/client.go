package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// client wraps outbound HTTP for one upstream: per-request timeout plus a
// token-bucket limiter so passthrough traffic cannot hammer the feed.
type client struct {
	http    *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

func newClient(timeout time.Duration, requestsPerSecond float64, burst int) *client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	if burst <= 0 {
		burst = 1
	}
	return &client{
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		timeout: timeout,
	}
}

// get fetches url and returns the body. A non-2xx status is an error; the
// passthrough path uses getRaw instead.
func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	status, _, body, err := c.do(ctx, url, c.timeout)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("fetch failed %d for %s", status, url)
	}
	return body, nil
}

// getRaw fetches url for verbatim forwarding. The raw endpoints allow a
// little more headroom than the pipeline fetch.
func (c *client) getRaw(ctx context.Context, url string) (int, string, []byte, error) {
	timeout := c.timeout
	if timeout < time.Second {
		timeout = time.Second
	}
	return c.do(ctx, url, timeout)
}

func (c *client) do(ctx context.Context, url string, timeout time.Duration) (int, string, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, "", nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, "", nil, fmt.Errorf("read body from %s: %w", url, err)
	}

	return res.StatusCode, res.Header.Get("Content-Type"), body, nil
}
