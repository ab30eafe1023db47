// Package audit orchestrates a full site audit: crawl, per-page checks and
// analysis, site-level aggregation and recommendations.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"code/checks"
	"code/crawler"
	"code/internal/fetcher"
	"code/internal/limiter"
)

// Options configures an audit run. URL is required; everything else has a
// working default.
type Options struct {
	URL        string
	Depth      int
	MaxPages   int
	Delay      time.Duration
	Timeout    time.Duration
	Retries    int
	Workers    int
	UserAgent  string
	HTTPClient *http.Client
	Clock      limiter.Timer
	Logger     *slog.Logger
	NewID      func() string
}

// Run crawls the site and scores every crawled page. The returned SiteResult
// carries a fresh audit id and timestamp; the raw page records are returned
// alongside it for callers that want the crawl detail.
func Run(ctx context.Context, opts Options) (SiteResult, []crawler.PageRecord, error) {
	clock := opts.Clock
	if clock == nil {
		clock = limiter.Clock{}
	}

	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// One limiter pool covers the crawl and the robots.txt fetches, so every
	// request to a host honors the same pacing.
	limiters := limiter.NewHosts(opts.Delay, clock)

	records, err := crawler.Crawl(ctx, crawler.Options{
		URL:        opts.URL,
		Depth:      opts.Depth,
		MaxPages:   opts.MaxPages,
		Delay:      opts.Delay,
		Timeout:    opts.Timeout,
		Retries:    opts.Retries,
		UserAgent:  opts.UserAgent,
		Workers:    opts.Workers,
		HTTPClient: opts.HTTPClient,
		Clock:      clock,
		Logger:     logger,
		Limiters:   limiters,
	})
	if err != nil {
		return SiteResult{}, nil, fmt.Errorf("crawl %s: %w", opts.URL, err)
	}

	scorer := NewScorer(robotsFetch(opts, clock, limiters))

	pages := make([]PageScore, 0, len(records))
	for _, record := range records {
		page := scorer.ScorePage(ctx, record)
		pages = append(pages, page)
		logger.Info("scored page", "url", page.URL, "score", page.Score)
	}

	result := Summarize(opts.URL, pages)
	result.AuditID = newID()
	result.GeneratedAt = clock.Now().UTC().Format(time.RFC3339)

	logger.Info("audit complete", "pages", len(pages), "site_score", result.SiteScore)

	return result, records, nil
}

// robotsFetch adapts the fetcher to the check suite's fetch contract. A
// response with any status code is reported as-is; only pure transport
// failures surface as errors.
func robotsFetch(opts Options, clock limiter.Timer, limiters *limiter.Hosts) checks.FetchFunc {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = crawler.DefaultUserAgent
	}

	fetch := fetcher.New(opts.HTTPClient, opts.Timeout, userAgent, limiters, 0, clock)

	return func(ctx context.Context, url string) (int, []byte, error) {
		result, err := fetch.Fetch(ctx, url)
		if result.StatusCode != 0 {
			return result.StatusCode, result.Body, nil
		}

		return 0, nil, err
	}
}

// EncodeJSON writes the result as an indented JSON document with a trailing
// newline.
func EncodeJSON(w io.Writer, result SiteResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal audit result: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit result: %w", err)
	}

	return nil
}
