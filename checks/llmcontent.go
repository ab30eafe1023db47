package checks

import (
	"fmt"

	"code/internal/htmldoc"
)

// Accessibility tier thresholds and caps for the readiness score.
const (
	readableCap     = 50
	challengingCap  = 20
	inaccessibleCap = 30

	readinessModerate = 20
	readinessHigh     = 35
)

// ReadableCounts are elements an AI text-extraction process consumes easily.
type ReadableCounts struct {
	Headings          int `json:"headings"`
	Paragraphs        int `json:"paragraphs"`
	Lists             int `json:"lists"`
	TextContentLength int `json:"text_content_length"`
	AltTextImages     int `json:"alt_text_images"`
	StructuredData    int `json:"structured_data"`
}

// ChallengingCounts are elements an AI can access but may misread.
type ChallengingCounts struct {
	Tables           int `json:"tables"`
	Forms            int `json:"forms"`
	Iframes          int `json:"iframes"`
	ImagesWithoutAlt int `json:"images_without_alt"`
}

// InaccessibleCounts are elements a text-only reader cannot use at all.
type InaccessibleCounts struct {
	CanvasElements      int `json:"canvas_elements"`
	SVGElements         int `json:"svg_elements"`
	MediaElements       int `json:"media_elements"`
	JavascriptDependent int `json:"javascript_dependent"`
}

// LLMContentData classifies a page's elements into accessibility tiers and
// carries the resulting readiness score.
type LLMContentData struct {
	EasilyReadable ReadableCounts     `json:"easily_readable"`
	Challenging    ChallengingCounts  `json:"challenging"`
	Inaccessible   InaccessibleCounts `json:"inaccessible"`
	ReadinessScore int                `json:"llm_readiness_score"`
}

// CheckLLMContent triages the page's DOM into easily-readable, challenging
// and inaccessible tiers and derives a readiness score: capped credit for the
// readable tier minus capped penalties for the other two, floored at zero.
// Scores of 20 and above pass.
func CheckLLMContent(doc *htmldoc.Document) Result {
	data := triagePage(doc)

	switch {
	case data.ReadinessScore >= readinessHigh:
		return Result{
			Passed:  true,
			Message: fmt.Sprintf("high LLM content accessibility (score: %d)", data.ReadinessScore),
			Data:    data,
		}
	case data.ReadinessScore >= readinessModerate:
		return Result{
			Passed:  true,
			Message: fmt.Sprintf("moderate LLM content accessibility (score: %d)", data.ReadinessScore),
			Data:    data,
		}
	default:
		return Result{
			Passed:  false,
			Message: fmt.Sprintf("low LLM content accessibility (score: %d)", data.ReadinessScore),
			Data:    data,
		}
	}
}

func triagePage(doc *htmldoc.Document) LLMContentData {
	imagesWithAlt := 0
	imagesWithoutAlt := 0
	for _, image := range doc.Images() {
		if image.HasAlt && image.Alt != "" {
			imagesWithAlt++
		} else {
			imagesWithoutAlt++
		}
	}

	data := LLMContentData{
		EasilyReadable: ReadableCounts{
			Headings:          doc.Count("h1,h2,h3,h4,h5,h6"),
			Paragraphs:        doc.Count("p"),
			Lists:             doc.Count("ul,ol"),
			TextContentLength: len(doc.VisibleText()),
			AltTextImages:     imagesWithAlt,
			StructuredData:    len(doc.JSONLD()),
		},
		Challenging: ChallengingCounts{
			Tables:           doc.Count("table"),
			Forms:            doc.Count("form"),
			Iframes:          doc.Count("iframe"),
			ImagesWithoutAlt: imagesWithoutAlt,
		},
		Inaccessible: InaccessibleCounts{
			CanvasElements:      doc.Count("canvas"),
			SVGElements:         doc.Count("svg"),
			MediaElements:       doc.Count("audio,video"),
			JavascriptDependent: doc.CountWithAttr("onclick"),
		},
	}

	readable := min(readableCap,
		data.EasilyReadable.Headings*3+
			data.EasilyReadable.Paragraphs*2+
			data.EasilyReadable.Lists*2+
			data.EasilyReadable.AltTextImages*2+
			data.EasilyReadable.StructuredData*5)

	challenging := min(challengingCap,
		data.Challenging.Tables*2+
			data.Challenging.Forms+
			data.Challenging.ImagesWithoutAlt*3)

	inaccessible := min(inaccessibleCap,
		data.Inaccessible.CanvasElements*5+
			data.Inaccessible.MediaElements*3+
			data.Inaccessible.JavascriptDependent*2)

	data.ReadinessScore = max(0, readable-challenging-inaccessible)

	return data
}
