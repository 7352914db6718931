package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultUserAgent      = "Mozilla/5.0 (compatible; WikipediaFetcher/1.0; +https://example.com)"
	DefaultAcceptLanguage = "pt-BR,pt;q=0.9,en;q=0.8"
	DefaultTimeout        = 15 * time.Second
	DefaultMaxRedirects   = 10
)

type FetcherConfig struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
	MaxRedirects   int
	// MaxRetries is the number of retries after the first attempt for transient failures.
	MaxRetries uint
	RetryDelay time.Duration
}

// HTTPFetcher implements Fetcher over resty.
type HTTPFetcher struct {
	httpClient *resty.Client
	maxRetries uint
	retryDelay time.Duration
}

// NewHTTPFetcher creates a new HTTPFetcher. Zero values in config fall back to the defaults.
func NewHTTPFetcher(config FetcherConfig) *HTTPFetcher {
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.AcceptLanguage == "" {
		config.AcceptLanguage = DefaultAcceptLanguage
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRedirects <= 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 200 * time.Millisecond
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(config.MaxRedirects)).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept-Language", config.AcceptLanguage)

	return &HTTPFetcher{
		httpClient: client,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}
}

// Fetch returns the page body. A 404 yields ErrNotFound, everything else that fails a *TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			b, err := f.fetchOnce(ctx, url)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.maxRetries+1),
		retry.Delay(f.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying wikipedia fetch",
				"attempt", n+1,
				"url", url,
				"lastError", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	res, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("client.R.Get > %w", err)}
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if !res.IsSuccess() {
		return nil, &TransportError{
			URL:        url,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("unexpected response %s", res.Status()),
		}
	}
	return res.Body(), nil
}

func isRetryableError(err error) bool {
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return transportErr.Temporary()
}
