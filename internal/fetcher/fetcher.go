package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"code/internal/limiter"
)

const (
	// DefaultTimeout bounds a single request, connect and read included.
	DefaultTimeout = 10 * time.Second

	baseRetryDelay = 100 * time.Millisecond
	maxRetryDelay  = 2 * time.Second
)

var errInvalidRequest = errors.New("invalid request")

// Result contains the HTTP response data.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher performs GET requests with a per-request timeout, a bot user agent,
// per-host rate limiting and bounded retries for temporary failures.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgent  string
	limiters   *limiter.Hosts
	retries    int
	retryDelay time.Duration
	clock      limiter.Timer
}

// New creates a Fetcher with the provided configuration. A zero timeout falls
// back to DefaultTimeout.
func New(
	client *http.Client,
	timeout time.Duration,
	userAgent string,
	limiters *limiter.Hosts,
	retries int,
	clock limiter.Timer,
) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if clock == nil {
		clock = limiter.Clock{}
	}

	return &Fetcher{
		client:     client,
		timeout:    timeout,
		userAgent:  userAgent,
		limiters:   limiters,
		retries:    retries,
		retryDelay: baseRetryDelay,
		clock:      clock,
	}
}

// Fetch performs a GET request, retrying network errors, 429 and 5xx responses.
// It returns the result from the last attempt. Transport failures come back as
// an ordinary error for the caller to record; Fetch never panics.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Result, error) {
	attempts := f.retries + 1

	var (
		lastResult Result
		lastErr    error
	)

	for attempt := range attempts {
		result, err := f.fetchOnce(ctx, rawURL)
		lastResult = result
		lastErr = err

		if err == nil && result.StatusCode < http.StatusBadRequest {
			return result, ctx.Err()
		}

		if ctx.Err() != nil {
			return result, coalesceError(err, ctx.Err())
		}

		if !isRetryable(result.StatusCode, err) || attempt == attempts-1 {
			return result, errorForStatus(err, result.StatusCode)
		}

		if sleepErr := f.clock.Sleep(ctx, f.retryDelayFor(attempt+1)); sleepErr != nil {
			return result, sleepErr
		}
	}

	return lastResult, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (Result, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}

	if parsedURL.Path == "" {
		parsedURL.Path = "/"
	}

	if err := f.limiters.Wait(ctx, parsedURL.Host); err != nil {
		return Result{}, err
	}

	return f.doRequest(ctx, parsedURL.String())
}

func (f *Fetcher) doRequest(ctx context.Context, fullURL string) (Result, error) {
	requestCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(requestCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}

	if f.userAgent != "" {
		request.Header.Set("User-Agent", f.userAgent)
	}

	response, err := f.client.Do(request)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Result{StatusCode: response.StatusCode, Header: response.Header}, fmt.Errorf("read body: %w", err)
	}

	return Result{StatusCode: response.StatusCode, Header: response.Header, Body: body}, nil
}

func isRetryable(statusCode int, err error) bool {
	if err != nil {
		return isRetryableError(err)
	}

	if statusCode == http.StatusTooManyRequests {
		return true
	}

	return statusCode >= http.StatusInternalServerError
}

func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, errInvalidRequest) {
		return false
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

func errorForStatus(err error, statusCode int) error {
	if err != nil {
		return err
	}

	if statusCode >= http.StatusBadRequest {
		return errors.New(statusText(statusCode))
	}

	return nil
}

func statusText(statusCode int) string {
	text := http.StatusText(statusCode)
	if text == "" {
		return fmt.Sprintf("http status %d", statusCode)
	}

	return text
}

func coalesceError(primary, fallback error) error {
	if primary != nil {
		return primary
	}

	return fallback
}

func (f *Fetcher) retryDelayFor(attempt int) time.Duration {
	delay := f.retryDelay
	for i := 1; i < attempt; i++ {
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}

		delay *= 2
	}

	if delay > maxRetryDelay {
		return maxRetryDelay
	}

	return delay
}
