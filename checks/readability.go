package checks

import (
	"fmt"
	"math"

	"code/internal/htmldoc"
	"code/internal/textstat"
)

const minContentLength = 100

// ReadabilityData carries the metrics behind the readability verdict.
type ReadabilityData struct {
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	GunningFogIndex    float64 `json:"gunning_fog_index"`
	WordCount          int     `json:"word_count"`
	SentenceCount      int     `json:"sentence_count"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	ReadabilityScore   int     `json:"readability_score"`
}

// CheckReadability scores the page's main text (chrome stripped) against the
// bands an AI summarizer handles best: plain-English reading ease, an 8-12
// grade level, and 15-20 word sentences, with a length bonus. Composite
// scores of 50 and above pass.
func CheckReadability(doc *htmldoc.Document) Result {
	text := doc.MainText()
	if len(text) < minContentLength {
		return Result{
			Passed:  false,
			Message: "insufficient content for readability analysis",
			Data:    ReadabilityData{WordCount: textstat.WordCount(text)},
		}
	}

	stats := textstat.Analyze(text)
	if stats.Words == 0 || stats.Sentences == 0 {
		return Result{
			Passed:  false,
			Message: "insufficient content for readability analysis",
			Data:    ReadabilityData{},
		}
	}

	data := ReadabilityData{
		FleschKincaidGrade: round1(stats.FleschKincaidGrade()),
		FleschReadingEase:  round1(stats.FleschReadingEase()),
		GunningFogIndex:    round1(stats.GunningFog()),
		WordCount:          stats.Words,
		SentenceCount:      stats.Sentences,
		AvgSentenceLength:  round1(stats.AvgSentenceLength()),
	}

	// Band the unrounded metrics; the rounded copies in Data are for display
	// only and can cross a band edge.
	data.ReadabilityScore = compositeReadability(
		stats.FleschReadingEase(),
		stats.FleschKincaidGrade(),
		stats.AvgSentenceLength(),
		stats.Words,
	)

	switch {
	case data.ReadabilityScore >= 70:
		return Result{
			Passed:  true,
			Message: fmt.Sprintf("excellent readability for LLMs (score: %d)", data.ReadabilityScore),
			Data:    data,
		}
	case data.ReadabilityScore >= 50:
		return Result{
			Passed:  true,
			Message: fmt.Sprintf("good readability for LLMs (score: %d)", data.ReadabilityScore),
			Data:    data,
		}
	default:
		return Result{
			Passed:  false,
			Message: fmt.Sprintf("poor readability for LLMs (score: %d)", data.ReadabilityScore),
			Data:    data,
		}
	}
}

func compositeReadability(ease, grade, sentenceLength float64, words int) int {
	score := 0

	switch {
	case ease >= 60 && ease <= 70:
		score += 30
	case (ease >= 50 && ease < 60) || (ease > 70 && ease <= 80):
		score += 25
	case ease >= 40:
		score += 15
	}

	switch {
	case grade >= 8 && grade <= 12:
		score += 25
	case (grade >= 6 && grade < 8) || (grade > 12 && grade <= 15):
		score += 20
	case grade <= 18:
		score += 10
	}

	switch {
	case sentenceLength >= 15 && sentenceLength <= 20:
		score += 25
	case (sentenceLength >= 10 && sentenceLength < 15) || (sentenceLength > 20 && sentenceLength <= 25):
		score += 20
	case sentenceLength <= 30:
		score += 10
	}

	switch {
	case words >= 300:
		score += 20
	case words >= 150:
		score += 10
	}

	return min(100, score)
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
