package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/chinmay1088/tokentally/logging"
	"github.com/hashicorp/go-retryablehttp"
)

// Options configures a Client
type Options struct {
	Endpoint      string
	MaxAttempts   int           // total attempts, including the first one
	BackoffFactor time.Duration // wait before the first retry, doubled afterwards
	MaxBackoff    time.Duration
	Timeout       time.Duration
	Logger        *slog.Logger
}

// DefaultOptions returns the options used against the public Hyperion node
func DefaultOptions() Options {
	return Options{
		Endpoint:      DefaultTokensEndpoint,
		MaxAttempts:   DefaultMaxAttempts,
		BackoffFactor: DefaultBackoffFactor,
		MaxBackoff:    DefaultMaxBackoff,
		Timeout:       DefaultTimeout,
	}
}

// Client handles API calls to the token balance service
type Client struct {
	httpClient *retryablehttp.Client
	endpoint   string
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(opts Options) *Client {
	defaults := DefaultOptions()
	if opts.Endpoint == "" {
		opts.Endpoint = defaults.Endpoint
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = defaults.MaxAttempts
	}
	if opts.BackoffFactor < 0 {
		opts.BackoffFactor = defaults.BackoffFactor
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaults.MaxBackoff
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Timeout: opts.Timeout,
	}
	rc.Logger = opts.Logger
	rc.RetryMax = opts.MaxAttempts - 1
	rc.RetryWaitMin = opts.BackoffFactor
	rc.RetryWaitMax = opts.MaxBackoff
	rc.CheckRetry = retryServerErrors
	rc.Backoff = exponentialBackoff
	rc.ErrorHandler = giveUp

	return &Client{
		httpClient: rc,
		endpoint:   opts.Endpoint,
		logger:     opts.Logger,
	}
}

// retryServerErrors retries 5xx responses only. Transport errors are
// returned to the caller on the first occurrence.
func retryServerErrors(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil || resp == nil {
		return false, nil
	}
	return isServerError(resp.StatusCode), nil
}

// exponentialBackoff waits factor * 2^n before retry n, without looking
// at Retry-After headers
func exponentialBackoff(factor, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
	wait := float64(factor) * math.Pow(2, float64(attemptNum))
	if wait > float64(max) {
		return max
	}
	return time.Duration(wait)
}

// giveUp maps the final failure of a request to the package errors
func giveUp(resp *http.Response, err error, numTries int) (*http.Response, error) {
	if resp != nil {
		defer resp.Body.Close()
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		if isServerError(resp.StatusCode) {
			return nil, &RetryExhaustedError{
				URL:        resp.Request.URL.String(),
				Attempts:   numTries,
				StatusCode: resp.StatusCode,
			}
		}
	}

	if err == nil {
		err = fmt.Errorf("no response after %d attempt(s)", numTries)
	}
	return nil, fmt.Errorf("%w: %w", ErrTransport, err)
}

func isServerError(code int) bool {
	return code >= 500 && code <= 599
}

// getJSON sends a GET request and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to parse response: %w", ErrParse, err)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
