package analysis

import (
	"strings"
	"testing"

	"code/internal/htmldoc"
)

func parseDoc(t *testing.T, html string) *htmldoc.Document {
	t.Helper()

	doc, err := htmldoc.Parse(html)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	return doc
}

func TestReadabilityScoreShortContentIsZero(t *testing.T) {
	t.Parallel()

	if got := ReadabilityScore(parseDoc(t, "<p>short</p>")); got != 0 {
		t.Fatalf("score = %d; want 0 for short content", got)
	}
}

func TestReadabilityScoreIgnoresScripts(t *testing.T) {
	t.Parallel()

	html := "<script>" + strings.Repeat("var x = 1;", 50) + "</script><p>tiny</p>"
	if got := ReadabilityScore(parseDoc(t, html)); got != 0 {
		t.Fatalf("score = %d; script text must not count as content", got)
	}
}

func TestReadabilityScoreSimpleProse(t *testing.T) {
	t.Parallel()

	sentence := "The cat sat on the mat and looked at the sun. "
	html := "<p>" + strings.Repeat(sentence, 10) + "</p>"

	got := ReadabilityScore(parseDoc(t, html))
	if got < 50 {
		t.Fatalf("score = %d; simple prose should land in an upper bucket", got)
	}
}

func TestStructuredData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantCount    int
		wantRichness int
	}{
		{name: "bare page", html: "<p>plain</p>", wantCount: 0, wantRichness: 0},
		{
			name:         "single json-ld",
			html:         `<script type="application/ld+json">{"@type":"Article"}</script>`,
			wantCount:    1,
			wantRichness: 20,
		},
		{
			name:         "invalid json-ld not counted",
			html:         `<script type="application/ld+json">{broken</script>`,
			wantCount:    0,
			wantRichness: 0,
		},
		{
			name:         "microdata and rdfa",
			html:         `<div itemtype="https://schema.org/Person"></div><span typeof="Person"></span>`,
			wantCount:    2,
			wantRichness: 20,
		},
		{
			name:         "open graph capped at twenty",
			html:         strings.Repeat(`<meta property="og:x" content="y">`, 15),
			wantCount:    0,
			wantRichness: 20,
		},
		{
			name:         "twitter capped at ten",
			html:         strings.Repeat(`<meta name="twitter:x" content="y">`, 9),
			wantCount:    0,
			wantRichness: 10,
		},
		{
			name: "richness capped at hundred",
			html: strings.Repeat(`<script type="application/ld+json">{"@type":"Article"}</script>`, 7),
			// 7 schemas at 20 points each exceed the cap.
			wantCount:    7,
			wantRichness: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StructuredData(parseDoc(t, tt.html))
			if got.SchemaCount != tt.wantCount {
				t.Fatalf("schema count = %d; want %d", got.SchemaCount, tt.wantCount)
			}

			if got.RichnessScore != tt.wantRichness {
				t.Fatalf("richness = %d; want %d", got.RichnessScore, tt.wantRichness)
			}
		})
	}
}

func TestExtractContent(t *testing.T) {
	t.Parallel()

	longParagraph := "This paragraph is comfortably longer than the stub threshold."
	html := `<html><head>
		<title>Understanding Garden Birds</title>
		<meta name="description" content="A field guide to common garden birds.">
		</head><body>
		<nav><p>` + longParagraph + `</p></nav>
		<h1>Garden Birds</h1><h2>Feeding</h2>
		<p>` + longParagraph + `</p>
		<p>short</p>
		<img src="robin.jpg" alt="A robin on a branch">
		<img src="decoration.png">
		<ul><li>Sparrow</li><li>Robin</li></ul>
		<table><tr><th>Name</th><th>Season</th></tr><tr><td>Robin</td><td>All year</td></tr></table>
		<script type="application/ld+json">{"@type":"Article","headline":"Birds"}</script>
		</body></html>`

	content := ExtractContent(parseDoc(t, html))

	if content.Title != "Understanding Garden Birds" {
		t.Fatalf("title = %q", content.Title)
	}

	if content.Description != "A field guide to common garden birds." {
		t.Fatalf("description = %q", content.Description)
	}

	if len(content.Headings) != 2 || content.Headings[0].Level != 1 {
		t.Fatalf("headings = %+v", content.Headings)
	}

	// The nav paragraph and the short one are both excluded.
	if content.MainContent != longParagraph {
		t.Fatalf("main content = %q", content.MainContent)
	}

	if len(content.StructuredData) != 1 {
		t.Fatalf("structured data = %+v", content.StructuredData)
	}

	if len(content.Images) != 1 || content.Images[0].AltText != "A robin on a branch" {
		t.Fatalf("images = %+v", content.Images)
	}

	if len(content.Lists) != 1 || len(content.Lists[0]) != 2 {
		t.Fatalf("lists = %+v", content.Lists)
	}

	if len(content.Tables) != 1 || len(content.Tables[0]) != 2 {
		t.Fatalf("tables = %+v", content.Tables)
	}
}

func TestContentRichness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content PageContent
		want    int
	}{
		{name: "empty page", content: PageContent{}, want: 0},
		{name: "short title", content: PageContent{Title: "Home"}, want: 10},
		{name: "long title", content: PageContent{Title: "A Descriptive Title"}, want: 15},
		{
			name: "single h1 bonus",
			content: PageContent{
				Headings: []htmldoc.Heading{{Level: 1, Text: "Main"}, {Level: 2, Text: "Sub"}},
			},
			// Two headings at 3 each plus the lone-H1 bonus of 10.
			want: 16,
		},
		{
			name: "two h1 no bonus",
			content: PageContent{
				Headings: []htmldoc.Heading{{Level: 1, Text: "A"}, {Level: 1, Text: "B"}},
			},
			want: 6,
		},
		{
			name:    "word tiers stack",
			content: PageContent{MainContent: strings.Repeat("word ", 600)},
			want:    25,
		},
		{
			name: "capped at hundred",
			content: PageContent{
				Title:          "A Descriptive Title",
				StructuredData: []any{1, 2, 3, 4, 5, 6, 7},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := contentRichness(tt.content); got != tt.want {
				t.Fatalf("richness = %d; want %d", got, tt.want)
			}
		})
	}
}
