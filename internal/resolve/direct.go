package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

const (
	// DefaultFetchTimeout bounds one public-page fetch. Voice calls cannot
	// wait longer than this before the catalog answers instead.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultUserAgent identifies the fetcher to the vendor site.
	DefaultUserAgent = "storevoice/1.0 (+https://github.com/koopa0/storevoice)"

	// defaultRequestsPerSecond keeps the fetcher polite toward the vendor.
	defaultRequestsPerSecond = 2
)

// ErrEmptyPage indicates the vendor page fetched but carried no body.
var ErrEmptyPage = errors.New("vendor page returned no content")

// DirectConfig assembles a DirectFetcher.
type DirectConfig struct {
	// SearchURL renders the vendor's public search URL for a query.
	// Required.
	SearchURL func(query string) string

	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Logger            *slog.Logger
}

// DirectFetcher retrieves the vendor's public search page over plain
// HTTP. It rate-limits its own requests; the vendor site is shared
// infrastructure, not ours.
type DirectFetcher struct {
	searchURL func(string) string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewDirectFetcher creates a fetcher. Zero-valued config fields take the
// package defaults.
func NewDirectFetcher(cfg DirectConfig) (*DirectFetcher, error) {
	if cfg.SearchURL == nil {
		return nil, errors.New("search URL builder is required")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectFetcher{
		searchURL: cfg.SearchURL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:    logger,
	}, nil
}

// FetchSearchPage retrieves the raw markup of the vendor's search page
// for query. The limiter wait respects ctx; the fetch itself is bounded
// by the configured timeout.
func (f *DirectFetcher) FetchSearchPage(ctx context.Context, query string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	target := f.searchURL(query)

	collector := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(f.timeout)

	var body []byte
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	f.logger.Debug("fetching vendor search page", "url", target)
	if err := collector.Visit(target); err != nil {
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}
	collector.Wait()

	if len(body) == 0 {
		return "", ErrEmptyPage
	}
	return string(body), nil
}
