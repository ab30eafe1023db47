package checks

import (
	"fmt"
	"strings"

	"code/internal/htmldoc"
)

const (
	metaDescriptionMin = 120
	metaDescriptionMax = 160
)

// CheckMetaRobots fails only when a meta robots tag explicitly asks not to be
// indexed. Absence of the tag allows indexing.
func CheckMetaRobots(doc *htmldoc.Document) Result {
	content, found := doc.MetaContent("robots")
	if !found {
		return Result{Passed: true, Message: "no meta robots tag (allows indexing)"}
	}

	if strings.Contains(strings.ToLower(content), "noindex") {
		return Result{Passed: false, Message: "meta robots contains noindex"}
	}

	return Result{Passed: true, Message: "meta robots allows indexing"}
}

// CheckH1 wants exactly one non-empty h1. With none, it looks for an h2 that
// plausibly serves as the main heading (common with site builders) and
// suggests promoting it.
func CheckH1(doc *htmldoc.Document) Result {
	h1s := doc.TagTexts("h1")

	if len(h1s) > 1 {
		return Result{Passed: false, Message: fmt.Sprintf("multiple H1 tags found (%d), should have exactly one", len(h1s))}
	}

	if len(h1s) == 1 {
		if h1s[0] == "" {
			return Result{Passed: false, Message: "H1 tag is empty"}
		}

		return Result{Passed: true, Message: fmt.Sprintf("H1 tag found: %q", truncate(h1s[0], 50))}
	}

	for _, h2 := range doc.TagTexts("h2") {
		if len(h2) > 10 && !looksLikeNavigation(h2) {
			return Result{
				Passed:  false,
				Message: fmt.Sprintf("no H1 found, but H2 could be main heading: %q - consider changing to H1", truncate(h2, 50)),
			}
		}
	}

	return Result{Passed: false, Message: "no H1 tag found - add a clear main heading for better AI understanding"}
}

func looksLikeNavigation(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range []string{"menu", "navigation", "skip to"} {
		if strings.Contains(lower, word) {
			return true
		}
	}

	return false
}

// CheckMetaDescription requires a meta description of 120-160 characters.
func CheckMetaDescription(doc *htmldoc.Document) Result {
	content, found := doc.MetaContent("description")
	if !found {
		return Result{Passed: false, Message: "no meta description found"}
	}

	if content == "" {
		return Result{Passed: false, Message: "meta description is empty"}
	}

	length := len([]rune(content))
	if length < metaDescriptionMin {
		return Result{Passed: false, Message: fmt.Sprintf("meta description too short (%d chars, recommend 120-160)", length)}
	}

	if length > metaDescriptionMax {
		return Result{Passed: false, Message: fmt.Sprintf("meta description too long (%d chars, recommend 120-160)", length)}
	}

	return Result{Passed: true, Message: fmt.Sprintf("good meta description (%d chars)", length)}
}

// AltTextData breaks down the image alt-text inventory of a page.
type AltTextData struct {
	TotalImages int `json:"total_images"`
	MissingAlt  int `json:"missing_alt"`
	EmptyAlt    int `json:"empty_alt"`
}

// CheckImagesAltText counts images whose alt attribute is absent or blank.
// A page without images passes trivially.
func CheckImagesAltText(doc *htmldoc.Document) Result {
	images := doc.Images()
	if len(images) == 0 {
		return Result{Passed: true, Message: "no images found"}
	}

	data := AltTextData{TotalImages: len(images)}
	for _, image := range images {
		switch {
		case !image.HasAlt:
			data.MissingAlt++
		case image.Alt == "":
			data.EmptyAlt++
		}
	}

	issues := data.MissingAlt + data.EmptyAlt
	if issues == 0 {
		return Result{
			Passed:  true,
			Message: fmt.Sprintf("all %d images have alt text", len(images)),
			Data:    data,
		}
	}

	if issues == len(images) {
		return Result{
			Passed:  false,
			Message: fmt.Sprintf("all %d images missing alt text", len(images)),
			Data:    data,
		}
	}

	return Result{
		Passed:  false,
		Message: fmt.Sprintf("%d/%d images missing/empty alt text", issues, len(images)),
		Data:    data,
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit]) + "..."
}
