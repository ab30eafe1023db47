package checks

import (
	"encoding/json"
	"fmt"
	"sort"

	"code/internal/htmldoc"
)

// schemaTypeWeights scores schema.org @type values by how much they help an
// AI system summarize the page.
var schemaTypeWeights = map[string]int{
	"Article":             10,
	"NewsArticle":         10,
	"BlogPosting":         9,
	"FAQPage":             10,
	"QAPage":              10,
	"HowTo":               9,
	"Recipe":              8,
	"Product":             8,
	"Service":             7,
	"Organization":        6,
	"Person":              6,
	"Event":               7,
	"Place":               6,
	"Review":              8,
	"VideoObject":         7,
	"ImageObject":         6,
	"Dataset":             9,
	"SoftwareApplication": 7,
}

// richness is normalized against this denominator; a weighted type total of
// 50 maps to a full score.
const schemaScoreDenominator = 50

// StructuredDataData details the JSON-LD inventory behind the verdict.
type StructuredDataData struct {
	TypesFound       []string `json:"types_found"`
	LLMFriendlyTypes []string `json:"llm_friendly_types"`
	TotalSchemas     int      `json:"total_schemas"`
	RichnessScore    int      `json:"richness_score"`
}

// CheckStructuredData parses every application/ld+json script, scores the
// recognized @type values, and passes when at least one LLM-friendly type is
// present. Script bodies that fail to parse are skipped, not fatal.
func CheckStructuredData(doc *htmldoc.Document) Result {
	data := StructuredDataData{
		TypesFound:       []string{},
		LLMFriendlyTypes: []string{},
	}

	seenTypes := map[string]bool{}
	seenFriendly := map[string]bool{}
	totalScore := 0

	for _, body := range doc.JSONLD() {
		for _, item := range flattenSchemaItems(body) {
			schemaType, ok := item["@type"].(string)
			if !ok || schemaType == "" {
				continue
			}

			data.TotalSchemas++
			if !seenTypes[schemaType] {
				seenTypes[schemaType] = true
				data.TypesFound = append(data.TypesFound, schemaType)
			}

			weight, friendly := schemaTypeWeights[schemaType]
			if !friendly {
				continue
			}

			if !seenFriendly[schemaType] {
				seenFriendly[schemaType] = true
				data.LLMFriendlyTypes = append(data.LLMFriendlyTypes, schemaType)
			}

			totalScore += weight
			totalScore += richFieldBonus(schemaType, item)
		}
	}

	sort.Strings(data.TypesFound)
	sort.Strings(data.LLMFriendlyTypes)

	data.RichnessScore = min(100, totalScore*100/schemaScoreDenominator)

	if len(data.LLMFriendlyTypes) > 0 {
		return Result{
			Passed:  true,
			Message: fmt.Sprintf("found %d LLM-friendly schema types", len(data.LLMFriendlyTypes)),
			Data:    data,
		}
	}

	return Result{
		Passed:  false,
		Message: fmt.Sprintf("found %d schemas but none are LLM-optimized", data.TotalSchemas),
		Data:    data,
	}
}

// flattenSchemaItems parses a JSON-LD body into individual schema objects.
// A body may hold one object or a list of objects; anything unparsable is
// skipped.
func flattenSchemaItems(body string) []map[string]any {
	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil
	}

	switch value := parsed.(type) {
	case map[string]any:
		return []map[string]any{value}
	case []any:
		items := make([]map[string]any, 0, len(value))
		for _, element := range value {
			if item, ok := element.(map[string]any); ok {
				items = append(items, item)
			}
		}

		return items
	default:
		return nil
	}
}

// richFieldBonus rewards schemas carrying the substantive field for their
// type, not just the type marker.
func richFieldBonus(schemaType string, item map[string]any) int {
	switch schemaType {
	case "FAQPage":
		if hasField(item, "mainEntity") {
			return 5
		}
	case "Article":
		if hasField(item, "articleBody") {
			return 3
		}
	case "HowTo":
		if hasField(item, "step") {
			return 4
		}
	}

	return 0
}

func hasField(item map[string]any, field string) bool {
	value, ok := item[field]

	return ok && value != nil
}
