package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hpetersen/cityevents/internal/logger"
)

const (
	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxAttempts bounds retries across all strategies.
	DefaultMaxAttempts = 3

	plainUserAgent   = "cityevents/1.0 (github.com/hpetersen/cityevents)"
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	maxBodySize = 10 << 20
)

// Method records which client strategy retrieved a page.
type Method string

const (
	MethodPlain    Method = "plain"
	MethodBrowser  Method = "browser"
	MethodInsecure Method = "insecure"
)

// RawPage is a fetched HTML document plus retrieval metadata. It is
// consumed by the extractor and never persisted.
type RawPage struct {
	URL        string
	Body       string
	StatusCode int
	Method     Method
	Insecure   bool
	FetchedAt  time.Time
}

// Fetcher retrieves venue pages with an escalating strategy ladder.
type Fetcher struct {
	timeout     time.Duration
	maxAttempts int

	plain    *http.Client
	browser  *http.Client
	insecure *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithMaxAttempts overrides the total attempt budget.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) { f.maxAttempts = n }
}

// New creates a Fetcher with default timeout and attempt budget.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.plain = &http.Client{Timeout: f.timeout}
	f.browser = &http.Client{
		Timeout: f.timeout,
		Transport: &http.Transport{
			ForceAttemptHTTP2:   true,
			MaxIdleConnsPerHost: 4,
			TLSHandshakeTimeout: f.timeout,
		},
	}
	f.insecure = &http.Client{
		Timeout: f.timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	return f
}

// Fetch retrieves url, escalating from the plain client to the
// browser-emulating client on 403/429 or TLS failure, and finally to
// the insecure client when certificate verification keeps failing.
// Retries are bounded; the last error is wrapped in ErrExhausted when
// the budget runs out.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*RawPage, error) {
	method := MethodPlain
	var page *RawPage

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(), uint64(f.maxAttempts-1)), ctx)

	attempt := 0
	op := func() error {
		attempt++
		p, err := f.attempt(ctx, url, method)
		if err == nil {
			page = p
			return nil
		}

		logger.Debug("fetch attempt failed", logger.Fields{
			"url":     url,
			"method":  string(method),
			"attempt": attempt,
			"error":   err.Error(),
		})

		var httpErr *HTTPError
		switch {
		case errors.As(err, &httpErr) && isBlocked(httpErr.Status):
			method = escalate(method)
			return err
		case isCertError(err):
			method = escalate(method)
			return err
		case errors.As(err, &httpErr) && !isRetryableStatus(httpErr.Status):
			return backoff.Permanent(err)
		case errors.Is(err, context.Canceled):
			return backoff.Permanent(err)
		default:
			// Timeouts, connection failures and 5xx retry on the
			// same strategy.
			return err
		}
	}

	err := backoff.Retry(op, policy)
	if err == nil {
		return page, nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && !isBlocked(httpErr.Status) && !isRetryableStatus(httpErr.Status) {
		return nil, httpErr
	}
	if attempt >= f.maxAttempts {
		return nil, fmt.Errorf("%w: %w", ErrExhausted, err)
	}
	return nil, err
}

// attempt performs a single GET with the client for the given method.
func (f *Fetcher) attempt(ctx context.Context, url string, method Method) (*RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	f.setHeaders(req, method)

	resp, err := f.client(method).Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		if isCertError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Status: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: reading body: %v", ErrConnection, err)
	}

	return &RawPage{
		URL:        url,
		Body:       string(body),
		StatusCode: resp.StatusCode,
		Method:     method,
		Insecure:   method == MethodInsecure,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

func (f *Fetcher) client(method Method) *http.Client {
	switch method {
	case MethodBrowser:
		return f.browser
	case MethodInsecure:
		return f.insecure
	default:
		return f.plain
	}
}

// setHeaders applies the header profile for the strategy. The browser
// and insecure clients send the full header set a real browser would.
func (f *Fetcher) setHeaders(req *http.Request, method Method) {
	if method == MethodPlain {
		req.Header.Set("User-Agent", plainUserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		return
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
}

// escalate advances one rung on the strategy ladder.
func escalate(method Method) Method {
	switch method {
	case MethodPlain:
		return MethodBrowser
	default:
		return MethodInsecure
	}
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0
	return b
}
