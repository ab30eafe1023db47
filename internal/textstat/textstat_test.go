package textstat

import "testing"

func TestAnalyzeCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		text          string
		wantWords     int
		wantSentences int
	}{
		{name: "empty", text: "", wantWords: 0, wantSentences: 0},
		{name: "single sentence", text: "The cat sat on the mat.", wantWords: 6, wantSentences: 1},
		{name: "no terminator still one sentence", text: "short fragment", wantWords: 2, wantSentences: 1},
		{name: "multiple sentences", text: "First one. Second one! Third one?", wantWords: 6, wantSentences: 3},
		{name: "ellipsis is one boundary", text: "Wait... done.", wantWords: 2, wantSentences: 2},
		{name: "punctuation trimmed from words", text: `"Hello," she said.`, wantWords: 3, wantSentences: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stats := Analyze(tt.text)
			if stats.Words != tt.wantWords {
				t.Fatalf("words = %d; want %d", stats.Words, tt.wantWords)
			}

			if stats.Sentences != tt.wantSentences {
				t.Fatalf("sentences = %d; want %d", stats.Sentences, tt.wantSentences)
			}
		})
	}
}

func TestSyllables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want int
	}{
		{word: "cat", want: 1},
		{word: "table", want: 2},
		{word: "make", want: 1},
		{word: "beautiful", want: 3},
		{word: "rhythm", want: 1},
		{word: "readability", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()

			if got := syllables(tt.word); got != tt.want {
				t.Fatalf("syllables(%q) = %d; want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestFleschReadingEaseSimpleText(t *testing.T) {
	t.Parallel()

	simple := "The cat sat. The dog ran. We like the sun."
	dense := "Institutional heterogeneity necessitates comprehensive organizational restructuring initiatives."

	easySCore := Analyze(simple).FleschReadingEase()
	hardScore := Analyze(dense).FleschReadingEase()

	if easySCore <= hardScore {
		t.Fatalf("simple text scored %.1f, dense text %.1f; simple should be easier", easySCore, hardScore)
	}

	if easySCore < 80 {
		t.Fatalf("simple text ease = %.1f; want clearly easy (>=80)", easySCore)
	}
}

func TestGradeAndFogTrackDifficulty(t *testing.T) {
	t.Parallel()

	simple := Analyze("The cat sat. The dog ran.")
	dense := Analyze("Multisyllabic terminology overwhelmingly complicates comprehension, particularly for automated summarization.")

	if simple.FleschKincaidGrade() >= dense.FleschKincaidGrade() {
		t.Fatalf("grade: simple %.1f >= dense %.1f", simple.FleschKincaidGrade(), dense.FleschKincaidGrade())
	}

	if simple.GunningFog() >= dense.GunningFog() {
		t.Fatalf("fog: simple %.1f >= dense %.1f", simple.GunningFog(), dense.GunningFog())
	}
}

func TestZeroWordStatsAreZero(t *testing.T) {
	t.Parallel()

	stats := Analyze("   ")
	if stats.FleschReadingEase() != 0 || stats.FleschKincaidGrade() != 0 || stats.GunningFog() != 0 {
		t.Fatalf("empty text should score zero everywhere, got %+v", stats)
	}
}
