// Package report renders an audit result into the plain-text report format.
package report

import (
	"fmt"
	"strings"

	"code/audit"
	"code/checks"
)

const (
	lineWidth   = 80
	ruleWidth   = 40
	headerTitle = "LLM READINESS AUDIT REPORT"
)

// Render produces the full plain-text report for an audit run.
func Render(result audit.SiteResult) string {
	var b strings.Builder

	writeHeader(&b, result)
	writeExecutiveSummary(&b, result)
	writeAccessibilityBreakdown(&b, result)
	writeContentAnalysis(&b, result)
	writePages(&b, result)
	writeRecommendations(&b, result)
	writeAIReport(&b, result)

	rule(&b, "=", lineWidth)
	line(&b, "End of Report")
	rule(&b, "=", lineWidth)

	return b.String()
}

func writeHeader(b *strings.Builder, result audit.SiteResult) {
	rule(b, "=", lineWidth)
	line(b, headerTitle)
	rule(b, "=", lineWidth)
	line(b, "Audit ID: "+result.AuditID)
	line(b, "Site: "+result.RootURL)
	line(b, "Generated: "+result.GeneratedAt)
	line(b, fmt.Sprintf("Pages Analyzed: %d", len(result.Pages)))
	line(b, fmt.Sprintf("Overall Score: %d/100", result.SiteScore))
	line(b, "")
}

func writeExecutiveSummary(b *strings.Builder, result audit.SiteResult) {
	section(b, "EXECUTIVE SUMMARY")
	line(b, fmt.Sprintf("- Site Score: %d/100", result.SiteScore))
	line(b, fmt.Sprintf("- Critical Issues: %d", len(result.Recommendations.Critical)))
	line(b, fmt.Sprintf("- Important Issues: %d", len(result.Recommendations.Important)))
	line(b, fmt.Sprintf("- Suggested Improvements: %d", len(result.Recommendations.Suggested)))
	line(b, "")
}

func writeAccessibilityBreakdown(b *strings.Builder, result audit.SiteResult) {
	breakdown := result.ReadinessSummary.AccessibilityBreakdown

	section(b, "LLM ACCESSIBILITY BREAKDOWN")
	line(b, fmt.Sprintf("- High Accessibility Pages: %d", breakdown.High))
	line(b, fmt.Sprintf("- Medium Accessibility Pages: %d", breakdown.Medium))
	line(b, fmt.Sprintf("- Low Accessibility Pages: %d", breakdown.Low))
	line(b, "")
}

func writeContentAnalysis(b *strings.Builder, result audit.SiteResult) {
	content := result.ReadinessSummary.ContentAnalysis

	section(b, "CONTENT ANALYSIS")
	line(b, fmt.Sprintf("- Average Readability Score: %d/100", content.AvgReadabilityScore))
	line(b, fmt.Sprintf("- Average Structured Data Richness: %d/100", content.AvgStructuredDataRichness))
	line(b, fmt.Sprintf("- Total Structured Schemas: %d", content.TotalStructuredSchemas))
	line(b, "")
}

func writePages(b *strings.Builder, result audit.SiteResult) {
	section(b, "PAGE-BY-PAGE ANALYSIS")

	for _, page := range result.Pages {
		line(b, "PAGE: "+page.URL)
		line(b, fmt.Sprintf("   Score: %d/100", page.Score))

		writeVisibility(b, page)
		writeIssues(b, page)
		line(b, "")
	}
}

// writeVisibility prints the accessibility-tier counts when the page carried
// a content-analysis verdict.
func writeVisibility(b *strings.Builder, page audit.PageScore) {
	check, ok := page.Checks[checks.NameLLMContent]
	if !ok {
		return
	}

	data, ok := check.Data.(checks.LLMContentData)
	if !ok {
		return
	}

	line(b, "   LLM CONTENT VISIBILITY:")
	line(b, "     EASILY ACCESSIBLE:")
	line(b, fmt.Sprintf("       - Headings: %d", data.EasilyReadable.Headings))
	line(b, fmt.Sprintf("       - Paragraphs: %d", data.EasilyReadable.Paragraphs))
	line(b, fmt.Sprintf("       - Lists: %d", data.EasilyReadable.Lists))
	line(b, fmt.Sprintf("       - Images with alt text: %d", data.EasilyReadable.AltTextImages))
	line(b, fmt.Sprintf("       - Structured data schemas: %d", data.EasilyReadable.StructuredData))
	line(b, fmt.Sprintf("       - Text content length: %d characters", data.EasilyReadable.TextContentLength))
	line(b, "     CHALLENGING FOR LLMs:")
	line(b, fmt.Sprintf("       - Tables: %d", data.Challenging.Tables))
	line(b, fmt.Sprintf("       - Forms: %d", data.Challenging.Forms))
	line(b, fmt.Sprintf("       - iFrames: %d", data.Challenging.Iframes))
	line(b, fmt.Sprintf("       - Images without alt text: %d", data.Challenging.ImagesWithoutAlt))
	line(b, "     INACCESSIBLE TO LLMs:")
	line(b, fmt.Sprintf("       - Canvas elements: %d", data.Inaccessible.CanvasElements))
	line(b, fmt.Sprintf("       - SVG elements: %d", data.Inaccessible.SVGElements))
	line(b, fmt.Sprintf("       - Audio/Video elements: %d", data.Inaccessible.MediaElements))
	line(b, fmt.Sprintf("       - JavaScript-dependent content: %d", data.Inaccessible.JavascriptDependent))
}

func writeIssues(b *strings.Builder, page audit.PageScore) {
	failed := []string{}
	for _, name := range checks.Names {
		check, ok := page.Checks[name]
		if ok && !check.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", name, check.Message))
		}
	}

	if len(failed) == 0 {
		line(b, "   STATUS: All checks passed")

		return
	}

	line(b, "   ISSUES:")
	for _, issue := range failed {
		line(b, "   - "+issue)
	}
}

func writeRecommendations(b *strings.Builder, result audit.SiteResult) {
	tiers := []struct {
		title string
		items []string
	}{
		{"CRITICAL ISSUES (Fix Immediately)", result.Recommendations.Critical},
		{"IMPORTANT IMPROVEMENTS", result.Recommendations.Important},
		{"SUGGESTED ENHANCEMENTS", result.Recommendations.Suggested},
	}

	for _, tier := range tiers {
		if len(tier.items) == 0 {
			continue
		}

		section(b, tier.title)
		for _, item := range tier.items {
			line(b, "- "+item)
		}
		line(b, "")
	}
}

func writeAIReport(b *strings.Builder, result audit.SiteResult) {
	if result.AIReport == "" {
		return
	}

	rule(b, "=", lineWidth)
	line(b, "AI-POWERED ANALYSIS & RECOMMENDATIONS")
	rule(b, "=", lineWidth)
	line(b, "")
	line(b, result.AIReport)
	line(b, "")
}

func section(b *strings.Builder, title string) {
	line(b, title)
	rule(b, "-", ruleWidth)
}

func rule(b *strings.Builder, mark string, width int) {
	line(b, strings.Repeat(mark, width))
}

func line(b *strings.Builder, text string) {
	b.WriteString(text)
	b.WriteString("\n")
}
