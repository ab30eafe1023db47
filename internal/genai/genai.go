// Package genai generates the optional free-text analysis section of a
// report via an external text-generation service.
package genai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"code/audit"
)

// ErrNoAPIKey is returned by New when no credential is configured. The audit
// proceeds without the generated section in that case.
var ErrNoAPIKey = errors.New("no API key configured")

const (
	// DefaultModel is used when the configuration names none.
	DefaultModel = openai.GPT4o

	maxTokens      = 2000
	temperature    = 0.3
	maxPromptPages = 5

	systemInstruction = "You are an expert SEO and LLM optimization consultant. " +
		"Provide detailed, actionable analysis of how well the audited website " +
		"serves AI assistants and text-only crawlers."
)

// completer is the slice of the service client the reporter needs.
type completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client produces AI-written report sections from audit results.
type Client struct {
	api   completer
	model string
}

// New creates a Client from an explicit API key. A missing key is a
// construction error, not a deferred runtime failure.
func New(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	if model == "" {
		model = DefaultModel
	}

	return &Client{api: openai.NewClient(apiKey), model: model}, nil
}

// Report asks the generation service for a narrative analysis of the audit.
func (c *Client) Report(ctx context.Context, result audit.SiteResult) (string, error) {
	response, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(result)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate report: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", errors.New("generate report: empty response")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// buildPrompt condenses the audit into a prompt: the site-level numbers plus
// a short per-page digest for the first few pages.
func buildPrompt(result audit.SiteResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the LLM readiness of the website %s.\n\n", result.RootURL)
	fmt.Fprintf(&b, "TECHNICAL AUDIT CONTEXT:\n")
	fmt.Fprintf(&b, "- Overall Score: %d/100\n", result.SiteScore)
	fmt.Fprintf(&b, "- Pages Analyzed: %d\n", len(result.Pages))
	fmt.Fprintf(&b, "- Critical Issues: %d\n", len(result.Recommendations.Critical))
	fmt.Fprintf(&b, "- Important Issues: %d\n", len(result.Recommendations.Important))
	fmt.Fprintf(&b, "- Average Readability: %d/100\n", result.ReadinessSummary.ContentAnalysis.AvgReadabilityScore)
	fmt.Fprintf(&b, "- Structured Schemas Found: %d\n\n", result.ReadinessSummary.ContentAnalysis.TotalStructuredSchemas)

	b.WriteString("PAGE DIGEST:\n")
	for i, page := range result.Pages {
		if i == maxPromptPages {
			fmt.Fprintf(&b, "... and %d more pages\n", len(result.Pages)-maxPromptPages)

			break
		}

		summary := page.ContentAnalysis.ContentSummary
		fmt.Fprintf(&b, "- %s (score %d/100): title %q, %d headings, %d words of main content\n",
			page.URL, page.Score, summary.Title, summary.HeadingsCount, summary.MainContentWords)

		for _, name := range failedCheckNames(page) {
			fmt.Fprintf(&b, "  failed: %s\n", name)
		}
	}

	b.WriteString("\nDescribe what AI assistants can and cannot see on this site, ")
	b.WriteString("and give concrete, prioritized recommendations to improve its readiness.\n")

	return b.String()
}

func failedCheckNames(page audit.PageScore) []string {
	names := []string{}
	for name, check := range page.Checks {
		if !check.Passed {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
