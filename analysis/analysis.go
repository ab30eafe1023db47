// Package analysis derives page-level content metrics beyond the pass/fail
// checks: a readability bucket, structured-data richness, and an extraction of
// the content a text-only reader actually sees.
package analysis

import (
	"encoding/json"
	"strings"

	"code/internal/htmldoc"
	"code/internal/textstat"
)

const minAnalyzableLength = 100

// ReadabilityScore buckets the page's Flesch reading ease into a 0-100 scale
// where higher means easier to process. Pages with less than 100 characters
// of visible text score 0.
func ReadabilityScore(doc *htmldoc.Document) int {
	text := doc.VisibleText()
	if len(text) < minAnalyzableLength {
		return 0
	}

	stats := textstat.Analyze(text)
	if stats.Sentences == 0 {
		return 0
	}

	ease := stats.FleschReadingEase()
	switch {
	case ease >= 90:
		return 100
	case ease >= 80:
		return 90
	case ease >= 70:
		return 80
	case ease >= 60:
		return 70
	case ease >= 50:
		return 60
	case ease >= 30:
		return 50
	default:
		return 30
	}
}

// StructuredDataSummary counts a page's machine-readable markup and scores
// its richness.
type StructuredDataSummary struct {
	SchemaCount   int `json:"schema_count"`
	RichnessScore int `json:"richness_score"`
}

// StructuredData scores every structured-markup vocabulary on the page:
// valid JSON-LD blocks are worth 20 each, microdata and RDFa items 10 each,
// Open Graph tags 2 each up to 20, Twitter Card tags 2 each up to 10. The
// richness score is capped at 100.
func StructuredData(doc *htmldoc.Document) StructuredDataSummary {
	jsonLD := 0
	for _, body := range doc.JSONLD() {
		if json.Valid([]byte(body)) {
			jsonLD++
		}
	}

	microdata := doc.CountWithAttr("itemtype")
	rdfa := doc.CountWithAttr("typeof")
	openGraph := doc.MetaPropertyPrefixCount("og:")
	twitter := doc.MetaNamePrefixCount("twitter:")

	richness := jsonLD*20 +
		microdata*10 +
		rdfa*10 +
		min(openGraph*2, 20) +
		min(twitter*2, 10)

	return StructuredDataSummary{
		SchemaCount:   jsonLD + microdata + rdfa,
		RichnessScore: min(richness, 100),
	}
}

// ImageContext is an alt-texted image, the only kind a text-only reader can
// use.
type ImageContext struct {
	AltText string `json:"alt_text"`
	Src     string `json:"src"`
}

// PageContent is the portion of a page a text-only reader can consume,
// together with a 0-100 richness score for it.
type PageContent struct {
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Headings       []htmldoc.Heading `json:"headings"`
	MainContent    string            `json:"main_content"`
	StructuredData []any             `json:"structured_data"`
	Images         []ImageContext    `json:"images_with_context"`
	Lists          [][]string        `json:"lists_content"`
	Tables         [][][]string      `json:"tables_content"`
	RichnessScore  int               `json:"llm_richness_score"`
}

// minParagraphLength filters out stub paragraphs (button labels, captions)
// from the main content.
const minParagraphLength = 20

// ExtractContent pulls out what a text-only reader sees: title, headings,
// substantial paragraphs outside the page chrome, parsed JSON-LD payloads,
// alt-texted images, lists and tables. The result carries a richness score
// rating how much of the page survives the extraction.
func ExtractContent(doc *htmldoc.Document) PageContent {
	content := PageContent{
		Headings:       doc.Headings(),
		Lists:          doc.Lists(),
		Tables:         doc.Tables(),
		StructuredData: []any{},
		Images:         []ImageContext{},
	}

	if title, ok := doc.Title(); ok {
		content.Title = title
	}

	if description, ok := doc.MetaContent("description"); ok {
		content.Description = strings.TrimSpace(description)
	}

	paragraphs := []string{}
	for _, paragraph := range doc.MainParagraphs() {
		if len(paragraph) > minParagraphLength {
			paragraphs = append(paragraphs, paragraph)
		}
	}
	content.MainContent = strings.Join(paragraphs, "\n\n")

	for _, body := range doc.JSONLD() {
		var payload any
		if err := json.Unmarshal([]byte(body), &payload); err != nil {
			continue
		}

		content.StructuredData = append(content.StructuredData, payload)
	}

	for _, image := range doc.Images() {
		if image.HasAlt && image.Alt != "" {
			content.Images = append(content.Images, ImageContext{AltText: image.Alt, Src: image.Src})
		}
	}

	content.RichnessScore = contentRichness(content)

	return content
}

func contentRichness(content PageContent) int {
	score := 0

	if content.Title != "" {
		score += 10
		if len(content.Title) > 10 {
			score += 5
		}
	}

	if len(content.Headings) > 0 {
		score += len(content.Headings) * 3

		h1Count := 0
		for _, heading := range content.Headings {
			if heading.Level == 1 {
				h1Count++
			}
		}

		if h1Count == 1 {
			score += 10
		}
	}

	words := len(strings.Fields(content.MainContent))
	if words > 100 {
		score += 15
	}
	if words > 500 {
		score += 10
	}
	if words > 1000 {
		score += 5
	}

	score += len(content.StructuredData) * 15
	score += len(content.Images) * 2
	score += len(content.Lists) * 3

	if content.Description != "" {
		score += 8
	}

	return min(100, score)
}
