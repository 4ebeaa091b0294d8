/*
Package exchange issues the single outbound request behind each announcement lookup.
*/
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTimeout   = 10 * time.Second

	maxBodyBytes = 8 << 20
)

// TransportError reports a connection failure, timeout or non-2xx response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("received non-OK status code %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("failed to fetch URL %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
	// RatePerSecond paces consecutive requests; zero disables pacing.
	RatePerSecond float64
	// Client overrides the HTTP client. Its Timeout is replaced by Timeout.
	Client *http.Client
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	logger    *zap.Logger
}

func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := &http.Client{}
	if cfg.Client != nil {
		c := *cfg.Client
		client = &c
	}
	client.Timeout = cfg.Timeout

	f := &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
	if cfg.RatePerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return f
}

// Fetch retrieves the raw announcement payload for one security code.
// Exactly one request is issued; there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, src Source, code string) ([]byte, error) {
	return f.do(ctx, src.URL(code), src.accept(), src.AttachmentBaseURL)
}

// Get issues a single GET with the browser identification headers.
func (f *Fetcher) Get(ctx context.Context, url, accept string) ([]byte, error) {
	return f.do(ctx, url, accept, "")
}

func (f *Fetcher) do(ctx context.Context, url, accept, referer string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	if referer != "" {
		req.Header.Set("Referer", referer+"/")
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("failed to close response body", zap.String("url", url), zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, &TransportError{URL: url, Err: errors.New("response body exceeds size limit")}
	}

	f.logger.Debug("fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}
