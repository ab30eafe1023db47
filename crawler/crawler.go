// Package crawler performs a bounded breadth-first crawl of a single site,
// producing one PageRecord per visited URL in BFS order.
package crawler

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"code/internal/fetcher"
	"code/internal/htmldoc"
	"code/internal/limiter"
	"code/internal/urlutil"
)

// DefaultUserAgent identifies the audit bot when no user agent is configured.
const DefaultUserAgent = "llm-seo-audit/1.0 (+https://example.com/bot)"

var errClientRequired = errors.New("http client is required")

type crawlJob struct {
	url   string
	depth int
	seq   uint64
}

type pageResult struct {
	job    crawlJob
	record PageRecord
	links  []string
}

// Crawl walks the site breadth-first from the seed URL up to opts.Depth,
// visiting at most opts.MaxPages pages on the seed's host. Fetch failures
// produce records with Error set and do not abort the crawl. The returned
// slice preserves BFS visitation order even though fetches run concurrently.
func Crawl(ctx context.Context, opts Options) ([]PageRecord, error) {
	seed, err := urlutil.NormalizeSeed(opts.URL)
	if err != nil {
		return []PageRecord{}, err
	}

	if opts.HTTPClient == nil {
		return []PageRecord{}, errClientRequired
	}

	c := newCrawl(opts, seed)

	return c.run(ctx), nil
}

type crawl struct {
	opts     Options
	seed     *url.URL
	fetch    *fetcher.Fetcher
	log      *slog.Logger
	maxDepth int
	maxPages int
}

func newCrawl(opts Options, seed *url.URL) *crawl {
	clock := opts.Clock
	if clock == nil {
		clock = limiter.NewClock()
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	maxDepth := opts.Depth
	if maxDepth < 0 {
		maxDepth = 0
	}

	limiters := opts.Limiters
	if limiters == nil {
		limiters = limiter.NewHosts(opts.Delay, clock)
	}

	fetch := fetcher.New(opts.HTTPClient, opts.Timeout, userAgent, limiters, opts.Retries, clock)

	return &crawl{
		opts:     opts,
		seed:     seed,
		fetch:    fetch,
		log:      log,
		maxDepth: maxDepth,
		maxPages: maxPages,
	}
}

func (c *crawl) run(ctx context.Context) []PageRecord {
	workerCount := c.opts.Workers
	if workerCount < 1 {
		workerCount = 1
	}

	// Buffer sized to the page cap so the aggregator can always enqueue
	// without blocking against busy workers.
	jobs := make(chan crawlJob, c.maxPages)
	results := make(chan pageResult, workerCount)

	var workers errgroup.Group
	for range workerCount {
		workers.Go(func() error {
			c.worker(ctx, jobs, results)

			return nil
		})
	}

	go func() {
		_ = workers.Wait()
		close(results)
	}()

	agg := &aggregator{
		seed:     c.seed,
		jobs:     jobs,
		maxDepth: c.maxDepth,
		maxPages: c.maxPages,
		seen:     map[string]bool{},
		buffered: map[uint64]pageResult{},
		records:  []PageRecord{},
	}

	agg.enqueue(c.seed.String(), 0)
	agg.closeJobsIfNeeded()

	canceled := false
	for {
		if canceled {
			result, ok := <-results
			if !ok {
				return agg.records
			}

			agg.onResult(result)

			continue
		}

		select {
		case result, ok := <-results:
			if !ok {
				return agg.records
			}

			agg.onResult(result)
		case <-ctx.Done():
			canceled = true
			agg.stopEnqueuing()
		}
	}
}

func (c *crawl) worker(ctx context.Context, jobs <-chan crawlJob, results chan<- pageResult) {
	for job := range jobs {
		results <- c.processJob(ctx, job)
	}
}

func (c *crawl) processJob(ctx context.Context, job crawlJob) pageResult {
	c.log.Info("crawling page", "url", job.url, "depth", job.depth)

	record := PageRecord{URL: job.url, Depth: job.depth}

	result, err := c.fetch.Fetch(ctx, job.url)
	record.StatusCode = result.StatusCode

	if err != nil {
		record.Error = err.Error()
		c.log.Warn("fetch failed", "url", job.url, "error", record.Error)

		return pageResult{job: job, record: record}
	}

	record.HTML = string(result.Body)

	if job.depth >= c.maxDepth {
		return pageResult{job: job, record: record}
	}

	return pageResult{job: job, record: record, links: c.discoverLinks(record)}
}

func (c *crawl) discoverLinks(record PageRecord) []string {
	doc, err := htmldoc.Parse(record.HTML)
	if err != nil {
		c.log.Debug("skipping link discovery", "url", record.URL, "error", err)

		return nil
	}

	base, err := url.Parse(record.URL)
	if err != nil {
		return nil
	}

	resolved := []string{}
	seen := map[string]bool{}

	for _, href := range doc.Links() {
		absolute, ok := urlutil.Resolve(base, href)
		if !ok || seen[absolute] {
			continue
		}

		seen[absolute] = true
		resolved = append(resolved, absolute)
	}

	return resolved
}

// aggregator owns the visited set and the output ordering. Results may arrive
// out of order from the worker pool; they are buffered and committed strictly
// by enqueue sequence, so link discovery and the visited set evolve exactly as
// they would in a synchronous BFS loop.
type aggregator struct {
	seed       *url.URL
	jobs       chan crawlJob
	maxDepth   int
	maxPages   int
	seen       map[string]bool
	buffered   map[uint64]pageResult
	records    []PageRecord
	nextSeq    uint64
	nextCommit uint64
	pending    int
	jobsClosed bool
	stopped    bool
}

func (a *aggregator) enqueue(pageURL string, depth int) {
	if a.stopped || a.seen[pageURL] || int(a.nextSeq) >= a.maxPages {
		return
	}

	// Mark visited before the fetch happens so the same URL is never
	// in flight twice.
	a.seen[pageURL] = true
	a.jobs <- crawlJob{url: pageURL, depth: depth, seq: a.nextSeq}
	a.nextSeq++
	a.pending++
}

func (a *aggregator) onResult(result pageResult) {
	a.pending--
	a.buffered[result.job.seq] = result
	a.flushCommitted()
	a.closeJobsIfNeeded()
}

func (a *aggregator) flushCommitted() {
	for {
		result, ok := a.buffered[a.nextCommit]
		if !ok {
			return
		}

		delete(a.buffered, a.nextCommit)
		a.nextCommit++

		a.records = append(a.records, result.record)

		nextDepth := result.job.depth + 1
		if nextDepth > a.maxDepth {
			continue
		}

		for _, link := range result.links {
			if !urlutil.SameHost(a.seed, link) {
				continue
			}

			a.enqueue(link, nextDepth)
		}
	}
}

func (a *aggregator) stopEnqueuing() {
	a.stopped = true
	a.closeJobsIfNeeded()
}

func (a *aggregator) closeJobsIfNeeded() {
	if a.jobsClosed || a.pending != 0 {
		return
	}

	close(a.jobs)
	a.jobsClosed = true
}
