// Package checks implements the per-page audit checks. Each check inspects a
// crawled page and returns a pass/fail Result with a human-readable
// justification and optional structured data.
package checks

import (
	"context"
	"fmt"

	"code/crawler"
	"code/internal/htmldoc"
)

// Check names, as they appear in reports and JSON output.
const (
	NameRobots          = "robots_txt_allows_crawling"
	NameMetaRobots      = "meta_robots_allows_indexing"
	NameH1              = "has_h1_tag"
	NameMetaDescription = "has_meta_description"
	NameAltText         = "images_have_alt_text"
	NameStructuredData  = "structured_data_richness"
	NameReadability     = "content_readability"
	NameLLMContent      = "llm_content_analysis"
)

// Names lists every check in a stable order.
var Names = []string{
	NameRobots,
	NameMetaRobots,
	NameH1,
	NameMetaDescription,
	NameAltText,
	NameStructuredData,
	NameReadability,
	NameLLMContent,
}

// Result is one check's verdict. Message always justifies Passed in plain
// language; Data optionally carries the structured detail behind it.
type Result struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Suite runs every check over a page. The robots check is the only one that
// touches the network; its per-origin verdicts are cached for the run.
type Suite struct {
	robots *robotsChecker
}

// NewSuite creates a Suite. The fetch function is used only for robots.txt
// lookups.
func NewSuite(fetch FetchFunc) *Suite {
	return &Suite{
		robots: newRobotsChecker(fetch),
	}
}

// Run evaluates every check against the page. A page that could not be
// fetched gets every check failed rather than being skipped, so it still
// shows up in the report. A fault inside any single check degrades to a
// failed Result instead of aborting the batch.
func (s *Suite) Run(ctx context.Context, page crawler.PageRecord) map[string]Result {
	if !page.Fetched() {
		return allFailed(page)
	}

	doc, err := htmldoc.Parse(page.HTML)
	if err != nil {
		results := allFailed(page)
		for name := range results {
			results[name] = Result{Passed: false, Message: fmt.Sprintf("page markup could not be parsed: %v", err)}
		}

		return results
	}

	return map[string]Result{
		NameRobots:          safeCheck(NameRobots, func() Result { return s.robots.Check(ctx, page.URL) }),
		NameMetaRobots:      safeCheck(NameMetaRobots, func() Result { return CheckMetaRobots(doc) }),
		NameH1:              safeCheck(NameH1, func() Result { return CheckH1(doc) }),
		NameMetaDescription: safeCheck(NameMetaDescription, func() Result { return CheckMetaDescription(doc) }),
		NameAltText:         safeCheck(NameAltText, func() Result { return CheckImagesAltText(doc) }),
		NameStructuredData:  safeCheck(NameStructuredData, func() Result { return CheckStructuredData(doc) }),
		NameReadability:     safeCheck(NameReadability, func() Result { return CheckReadability(doc) }),
		NameLLMContent:      safeCheck(NameLLMContent, func() Result { return CheckLLMContent(doc) }),
	}
}

func allFailed(page crawler.PageRecord) map[string]Result {
	message := "page could not be fetched"
	if page.Error != "" {
		message = fmt.Sprintf("page could not be fetched: %s", page.Error)
	}

	results := make(map[string]Result, len(Names))
	for _, name := range Names {
		results[name] = Result{Passed: false, Message: message}
	}

	return results
}

// safeCheck converts a panic inside a check into a failed Result so one bad
// page cannot crash the whole scoring pass.
func safeCheck(name string, fn func() Result) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Passed: false, Message: fmt.Sprintf("check %s failed: %v", name, r)}
		}
	}()

	return fn()
}
