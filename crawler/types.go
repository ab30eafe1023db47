package crawler

import (
	"log/slog"
	"net/http"
	"time"

	"code/internal/limiter"
)

// DefaultMaxPages caps one crawl regardless of the link graph size.
const DefaultMaxPages = 50

// Options configures a crawl.
// Depth is the maximum link depth from the seed (0 crawls the seed only).
// Delay is the minimum pause between fetches to one host.
// Retries is the number of retries after the first attempt.
// Limiters, when set, is the per-host rate limiter pool to draw from, so
// callers issuing their own requests can pace them against the crawl.
type Options struct {
	URL        string
	Depth      int
	MaxPages   int
	Delay      time.Duration
	Timeout    time.Duration
	Retries    int
	UserAgent  string
	Workers    int
	HTTPClient *http.Client
	Clock      limiter.Timer
	Logger     *slog.Logger
	Limiters   *limiter.Hosts
}

// PageRecord is one crawled page, successful or not. A failed fetch leaves
// HTML empty and Error set; the page still appears in the crawl output.
// Records are immutable once produced.
type PageRecord struct {
	URL        string `json:"url"`
	HTML       string `json:"-"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
	Depth      int    `json:"depth"`
}

// Fetched reports whether the fetch itself succeeded. The body may still be
// empty; what the markup contains is the checks' concern.
func (p PageRecord) Fetched() bool {
	return p.Error == ""
}
