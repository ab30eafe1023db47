package crawler_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"code/crawler"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return fn(req) }

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }

func (fixedClock) Sleep(ctx context.Context, _ time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func htmlResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func notFoundResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("not found")),
	}
}

// siteClient serves an in-memory site keyed by path.
func siteClient(pages map[string]string) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			path := req.URL.Path
			if path == "" {
				path = "/"
			}

			body, ok := pages[req.URL.Host+path]
			if !ok {
				return notFoundResponse(), nil
			}

			return htmlResponse(body), nil
		}),
	}
}

func testOptions(client *http.Client, seedURL string, depth int) crawler.Options {
	return crawler.Options{
		URL:        seedURL,
		Depth:      depth,
		Workers:    3,
		Retries:    0,
		Timeout:    time.Second,
		HTTPClient: client,
		Clock:      fixedClock{},
		Logger:     slog.New(slog.DiscardHandler),
	}
}

func TestCrawlSinglePageNoLinks(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/": "<html><body><p>Hello</p></body></html>",
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "https://example.com", 1))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "https://example.com", records[0].URL)
	require.Equal(t, 0, records[0].Depth)
	require.True(t, records[0].Fetched())
}

func TestPageRecordFetched(t *testing.T) {
	t.Parallel()

	require.True(t, crawler.PageRecord{StatusCode: 200, HTML: "<html></html>"}.Fetched())
	// A successful response with an empty body is still a fetched page.
	require.True(t, crawler.PageRecord{StatusCode: 200}.Fetched())
	require.False(t, crawler.PageRecord{Error: "connection refused"}.Fetched())
}

func TestCrawlSeedSchemePrefixed(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/": "<html><body></body></html>",
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "example.com", 0))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "https://example.com", records[0].URL)
}

func TestCrawlFollowsSameHostLinksInBFSOrder(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/": `<html><body>
			<a href="/a">A</a>
			<a href="/b">B</a>
			<a href="https://other.com/x">External</a>
		</body></html>`,
		"example.com/a": `<html><body><a href="/c">C</a></body></html>`,
		"example.com/b": `<html><body></body></html>`,
		"example.com/c": `<html><body></body></html>`,
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "https://example.com", 2))
	require.NoError(t, err)

	urls := make([]string, 0, len(records))
	for _, record := range records {
		urls = append(urls, record.URL)
	}

	require.Equal(t, []string{
		"https://example.com",
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, urls)

	require.Equal(t, []int{0, 1, 1, 2}, []int{
		records[0].Depth, records[1].Depth, records[2].Depth, records[3].Depth,
	})
}

func TestCrawlNeverLeavesSeedHost(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/": `<html><body>
			<a href="https://evil.com/">external</a>
			<a href="https://www.example.com/sub">subdomain</a>
			<a href="/ok">internal</a>
		</body></html>`,
		"example.com/ok": "<html><body></body></html>",
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "https://example.com", 3))
	require.NoError(t, err)

	for _, record := range records {
		require.Contains(t, record.URL, "https://example.com")
	}

	require.Len(t, records, 2)
}

func TestCrawlDepthBound(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/":  `<html><body><a href="/1">1</a></body></html>`,
		"example.com/1": `<html><body><a href="/2">2</a></body></html>`,
		"example.com/2": `<html><body><a href="/3">3</a></body></html>`,
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "https://example.com", 1))
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestCrawlDeduplicatesFragmentVariants(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/": `<html><body>
			<a href="/page#section">with fragment</a>
			<a href="/page">without</a>
			<a href="/page#other">another fragment</a>
		</body></html>`,
		"example.com/page": "<html><body></body></html>",
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "https://example.com", 1))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "https://example.com/page", records[1].URL)
}

func TestCrawlDeduplicatesRootLinkAgainstSeed(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/": `<html><body>
			<a href="/">home</a>
			<a href="https://example.com/">home again</a>
			<a href="/about">about</a>
		</body></html>`,
		"example.com/about": `<html><body><a href="/">back home</a></body></html>`,
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "https://example.com", 2))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "https://example.com", records[0].URL)
	require.Equal(t, "https://example.com/about", records[1].URL)
}

func TestCrawlPageCap(t *testing.T) {
	t.Parallel()

	// Root links to 80 children; the crawl must stop at the cap.
	var links strings.Builder
	pages := map[string]string{}
	for i := range 80 {
		path := fmt.Sprintf("/page-%d", i)
		fmt.Fprintf(&links, `<a href="%s">p</a>`, path)
		pages["example.com"+path] = "<html><body></body></html>"
	}
	pages["example.com/"] = "<html><body>" + links.String() + "</body></html>"

	records, err := crawler.Crawl(context.Background(), testOptions(siteClient(pages), "https://example.com", 1))
	require.NoError(t, err)
	require.Len(t, records, crawler.DefaultMaxPages)
}

func TestCrawlRecordsFetchFailure(t *testing.T) {
	t.Parallel()

	client := siteClient(map[string]string{
		"example.com/": `<html><body><a href="/missing">gone</a><a href="/ok">ok</a></body></html>`,
		"example.com/ok": "<html><body></body></html>",
	})

	records, err := crawler.Crawl(context.Background(), testOptions(client, "https://example.com", 1))
	require.NoError(t, err)
	require.Len(t, records, 3)

	missing := records[1]
	require.Equal(t, "https://example.com/missing", missing.URL)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
	require.NotEmpty(t, missing.Error)
	require.False(t, missing.Fetched())

	// The crawl continued past the failure.
	require.True(t, records[2].Fetched())
}

func TestCrawlInvalidSeed(t *testing.T) {
	t.Parallel()

	_, err := crawler.Crawl(context.Background(), testOptions(&http.Client{}, "http://[::1", 1))
	require.Error(t, err)
}

func TestCrawlRequiresClient(t *testing.T) {
	t.Parallel()

	opts := testOptions(nil, "https://example.com", 1)

	_, err := crawler.Crawl(context.Background(), opts)
	require.Error(t, err)
}
