package audit

import (
	"code/checks"
)

// ContentSummary condenses what a text-only reader got out of one page.
type ContentSummary struct {
	Title             string `json:"title"`
	HeadingsCount     int    `json:"headings_count"`
	MainContentWords  int    `json:"main_content_words"`
	ImagesWithAlt     int    `json:"images_with_alt"`
	StructuredSchemas int    `json:"structured_schemas"`
	RichnessScore     int    `json:"richness_score"`
}

// ContentAnalysis carries the per-page analyzer metrics alongside the checks.
type ContentAnalysis struct {
	ReadabilityScore       int            `json:"readability_score"`
	StructuredDataRichness int            `json:"structured_data_richness"`
	StructuredSchemasCount int            `json:"structured_schemas_count"`
	ContentSummary         ContentSummary `json:"llm_content_summary"`
}

// PageScore is the audit outcome for a single page.
type PageScore struct {
	URL             string                   `json:"url"`
	Score           int                      `json:"score"`
	Checks          map[string]checks.Result `json:"checks"`
	ContentAnalysis ContentAnalysis          `json:"content_analysis"`
}

// Recommendations groups the site-wide advice by severity.
type Recommendations struct {
	Critical  []string `json:"critical"`
	Important []string `json:"important"`
	Suggested []string `json:"suggested"`
}

// AccessibilityBreakdown counts pages per score bucket.
type AccessibilityBreakdown struct {
	High   int `json:"high_accessibility"`
	Medium int `json:"medium_accessibility"`
	Low    int `json:"low_accessibility"`
}

// ContentTotals averages the analyzer metrics across the crawl.
type ContentTotals struct {
	AvgReadabilityScore       int `json:"avg_readability_score"`
	AvgStructuredDataRichness int `json:"avg_structured_data_richness"`
	TotalStructuredSchemas    int `json:"total_structured_schemas"`
}

// ReadinessSummary is the site-level rollup of per-page results.
type ReadinessSummary struct {
	AccessibilityBreakdown AccessibilityBreakdown `json:"accessibility_breakdown"`
	ContentAnalysis        ContentTotals          `json:"content_analysis"`
}

// SiteResult is the complete audit outcome, the unit that gets persisted as
// JSON or rendered as a report.
type SiteResult struct {
	AuditID          string           `json:"audit_id"`
	RootURL          string           `json:"root_url"`
	GeneratedAt      string           `json:"generated_at"`
	SiteScore        int              `json:"site_score"`
	Pages            []PageScore      `json:"pages"`
	ReadinessSummary ReadinessSummary `json:"llm_readiness_summary"`
	Recommendations  Recommendations  `json:"recommendations"`
	AIReport         string           `json:"ai_report,omitempty"`
}
