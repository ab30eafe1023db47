package audit

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"code/analysis"
	"code/checks"
	"code/crawler"
	"code/internal/htmldoc"
)

const (
	llmCheckPoints   = 25
	otherCheckPoints = 15
	maxPageScore     = 100

	highAccessibility   = 80
	mediumAccessibility = 50
)

// Scorer turns crawled pages into scored audit entries.
type Scorer struct {
	suite *checks.Suite
}

// NewScorer creates a Scorer. The fetch function is handed to the check suite
// for robots.txt lookups.
func NewScorer(fetch checks.FetchFunc) *Scorer {
	return &Scorer{suite: checks.NewSuite(fetch)}
}

// ScorePage runs every check and the content analyzer over one page. Passed
// checks with an llm_ prefixed name weigh 25 points, the rest 15 points, with
// the total capped at 100. An unfetched page scores 0 with every check failed.
func (s *Scorer) ScorePage(ctx context.Context, page crawler.PageRecord) PageScore {
	results := s.suite.Run(ctx, page)

	score := 0
	for name, result := range results {
		if !result.Passed {
			continue
		}

		if strings.HasPrefix(name, "llm_") {
			score += llmCheckPoints
		} else {
			score += otherCheckPoints
		}
	}

	return PageScore{
		URL:             page.URL,
		Score:           min(maxPageScore, score),
		Checks:          results,
		ContentAnalysis: analyzePage(page),
	}
}

func analyzePage(page crawler.PageRecord) ContentAnalysis {
	if !page.Fetched() {
		return ContentAnalysis{}
	}

	doc, err := htmldoc.Parse(page.HTML)
	if err != nil {
		return ContentAnalysis{}
	}

	structured := analysis.StructuredData(doc)
	content := analysis.ExtractContent(doc)

	return ContentAnalysis{
		ReadabilityScore:       analysis.ReadabilityScore(doc),
		StructuredDataRichness: structured.RichnessScore,
		StructuredSchemasCount: structured.SchemaCount,
		ContentSummary: ContentSummary{
			Title:             content.Title,
			HeadingsCount:     len(content.Headings),
			MainContentWords:  len(strings.Fields(content.MainContent)),
			ImagesWithAlt:     len(content.Images),
			StructuredSchemas: len(content.StructuredData),
			RichnessScore:     content.RichnessScore,
		},
	}
}

// Aggregate returns the site score: the rounded arithmetic mean of the page
// scores, 0 for an empty crawl.
func Aggregate(pages []PageScore) int {
	if len(pages) == 0 {
		return 0
	}

	total := 0
	for _, page := range pages {
		total += page.Score
	}

	return int(math.Round(float64(total) / float64(len(pages))))
}

// Summarize rolls per-page results up into a SiteResult: site score,
// accessibility buckets, averaged content metrics and recommendations. The
// audit envelope fields (id, timestamp) are left for the caller.
func Summarize(rootURL string, pages []PageScore) SiteResult {
	result := SiteResult{
		RootURL:   rootURL,
		SiteScore: Aggregate(pages),
		Pages:     pages,
	}

	totalReadability := 0
	totalRichness := 0

	for _, page := range pages {
		switch {
		case page.Score >= highAccessibility:
			result.ReadinessSummary.AccessibilityBreakdown.High++
		case page.Score >= mediumAccessibility:
			result.ReadinessSummary.AccessibilityBreakdown.Medium++
		default:
			result.ReadinessSummary.AccessibilityBreakdown.Low++
		}

		totalReadability += page.ContentAnalysis.ReadabilityScore
		totalRichness += page.ContentAnalysis.StructuredDataRichness
		result.ReadinessSummary.ContentAnalysis.TotalStructuredSchemas += page.ContentAnalysis.StructuredSchemasCount
	}

	if len(pages) > 0 {
		count := float64(len(pages))
		result.ReadinessSummary.ContentAnalysis.AvgReadabilityScore = int(math.Round(float64(totalReadability) / count))
		result.ReadinessSummary.ContentAnalysis.AvgStructuredDataRichness = int(math.Round(float64(totalRichness) / count))
	}

	result.Recommendations = recommend(rootURL, result)

	return result
}

// recommend maps common failure patterns onto severity tiers. The rules are
// deterministic so two audits of the same pages always give the same advice.
func recommend(rootURL string, result SiteResult) Recommendations {
	recs := Recommendations{
		Critical:  []string{},
		Important: []string{},
		Suggested: []string{},
	}

	domain := domainOf(rootURL)

	if len(result.Pages) == 0 {
		recs.Critical = append(recs.Critical,
			fmt.Sprintf("URGENT: no pages could be crawled from %s - verify the URL is reachable and not blocking the audit bot", domain))

		return recs
	}

	totalPages := len(result.Pages)
	failed := func(name string) int {
		count := 0
		for _, page := range result.Pages {
			if check, ok := page.Checks[name]; ok && !check.Passed {
				count++
			}
		}

		return count
	}

	if robotsIssues := failed(checks.NameRobots); robotsIssues > 0 {
		recs.Critical = append(recs.Critical,
			fmt.Sprintf("URGENT: fix robots.txt blocking on %d pages - AI assistants can't access these pages at all. Check %s/robots.txt and remove 'Disallow: /' rules.", robotsIssues, domain))
	}

	if noindexIssues := failed(checks.NameMetaRobots); noindexIssues > 0 {
		recs.Critical = append(recs.Critical,
			fmt.Sprintf("URGENT: remove 'noindex' tags from %d pages - these tags tell AI 'don't read this page.' Remove <meta name='robots' content='noindex'> from pages you want AI to see.", noindexIssues))
	}

	if h1Issues := failed(checks.NameH1); float64(h1Issues) > float64(totalPages)*0.5 {
		recs.Critical = append(recs.Critical,
			fmt.Sprintf("URGENT: add clear main headings to %d pages on %s - AI needs these to understand what each page is about.", h1Issues, domain))
	}

	if descIssues := failed(checks.NameMetaDescription); descIssues > 0 {
		recs.Important = append(recs.Important,
			fmt.Sprintf("Add page descriptions to %d pages - write 1-2 sentences (120-160 characters) explaining what visitors will find on each page.", descIssues))
	}

	if altIssues := failed(checks.NameAltText); altIssues > 0 {
		recs.Important = append(recs.Important,
			fmt.Sprintf("Add descriptions to images on %d pages of %s - AI can't see pictures, only text descriptions.", altIssues, domain))
	}

	if result.ReadinessSummary.ContentAnalysis.AvgReadabilityScore < 70 {
		recs.Suggested = append(recs.Suggested,
			"Simplify your writing for better AI understanding - use shorter sentences (15-20 words), replace jargon with simple terms, and add more headings.")
	}

	if result.ReadinessSummary.ContentAnalysis.TotalStructuredSchemas == 0 {
		recs.Suggested = append(recs.Suggested,
			"Add structured data to help AI understand what type of content you have - mark articles as 'Article', products as 'Product', and FAQs as 'FAQPage'.")
	}

	return recs
}

func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}

	return parsed.Host
}
