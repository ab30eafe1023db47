// Package textstat computes the readability statistics the audit needs:
// Flesch reading ease, Flesch-Kincaid grade, Gunning fog, and the word and
// sentence counts behind them.
package textstat

import (
	"strings"
	"unicode"
)

// Stats holds the token counts a single pass over the text produces.
type Stats struct {
	Words        int
	Sentences    int
	Syllables    int
	ComplexWords int
}

// Analyze tokenizes text once. A text with words but no terminal punctuation
// counts as one sentence.
func Analyze(text string) Stats {
	stats := Stats{}

	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	}) {
		cleaned := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if cleaned == "" {
			continue
		}

		stats.Words++

		count := syllables(cleaned)
		stats.Syllables += count
		if count >= 3 {
			stats.ComplexWords++
		}
	}

	stats.Sentences = sentenceCount(text)
	if stats.Sentences == 0 && stats.Words > 0 {
		stats.Sentences = 1
	}

	return stats
}

// SentenceCount reports the number of sentences in text.
func SentenceCount(text string) int {
	return Analyze(text).Sentences
}

// WordCount reports the number of words in text.
func WordCount(text string) int {
	return Analyze(text).Words
}

// FleschReadingEase is 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Higher is easier; 60-70 reads as plain English.
func (s Stats) FleschReadingEase() float64 {
	if s.Words == 0 || s.Sentences == 0 {
		return 0
	}

	return 206.835 - 1.015*s.wordsPerSentence() - 84.6*(float64(s.Syllables)/float64(s.Words))
}

// FleschKincaidGrade is 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59.
func (s Stats) FleschKincaidGrade() float64 {
	if s.Words == 0 || s.Sentences == 0 {
		return 0
	}

	return 0.39*s.wordsPerSentence() + 11.8*(float64(s.Syllables)/float64(s.Words)) - 15.59
}

// GunningFog is 0.4*((words/sentences) + 100*(complexWords/words)).
func (s Stats) GunningFog() float64 {
	if s.Words == 0 || s.Sentences == 0 {
		return 0
	}

	return 0.4 * (s.wordsPerSentence() + 100*(float64(s.ComplexWords)/float64(s.Words)))
}

// AvgSentenceLength is words per sentence.
func (s Stats) AvgSentenceLength() float64 {
	return s.wordsPerSentence()
}

func (s Stats) wordsPerSentence() float64 {
	if s.Sentences == 0 {
		return 0
	}

	return float64(s.Words) / float64(s.Sentences)
}

func sentenceCount(text string) int {
	count := 0
	inTerminator := false

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				count++
			}
			inTerminator = true
		default:
			if !unicode.IsSpace(r) && r != '"' && r != '\'' && r != ')' {
				inTerminator = false
			}
		}
	}

	return count
}

// syllables estimates a word's syllable count from vowel groups, with the
// usual silent-e adjustment. Every word counts as at least one syllable.
func syllables(word string) int {
	lower := strings.ToLower(word)

	count := 0
	previousVowel := false
	for _, r := range lower {
		vowel := isVowel(r)
		if vowel && !previousVowel {
			count++
		}
		previousVowel = vowel
	}

	if strings.HasSuffix(lower, "e") && !strings.HasSuffix(lower, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}

	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}

	return false
}
