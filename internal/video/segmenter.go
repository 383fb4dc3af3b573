package video

import (
	"strings"

	"reditrend/internal/model"
)

// DefaultWordsPerMinute is the assumed narration speaking rate used for
// section duration estimates.
const DefaultWordsPerMinute = 150

// SegmentScript splits a script into time-bounded sections. Sentences
// are accumulated greedily until adding the next one would exceed
// maxDurationSeconds; a single sentence longer than the budget is still
// emitted whole, never split mid-sentence. The final open section is
// always emitted. Offsets are running sums of the estimates of prior
// sections, not of measured audio.
func SegmentScript(scriptText string, maxDurationSeconds, wordsPerMinute float64) []model.ScriptSection {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}

	sentences := splitSentences(scriptText)
	if len(sentences) == 0 {
		return nil
	}

	var sections []model.ScriptSection
	var current []string
	var currentDuration float64
	var offset float64

	flush := func() {
		if len(current) == 0 {
			return
		}
		sections = append(sections, model.ScriptSection{
			Text:                    strings.Join(current, " "),
			EstimatedDurationSec:    currentDuration,
			CumulativeOffsetSeconds: offset,
		})
		offset += currentDuration
		current = nil
		currentDuration = 0
	}

	for _, sentence := range sentences {
		duration := estimateSentenceDuration(sentence, wordsPerMinute)

		if len(current) > 0 && currentDuration+duration > maxDurationSeconds {
			flush()
		}
		current = append(current, sentence)
		currentDuration += duration
	}
	flush()

	return sections
}

// estimateSentenceDuration estimates speech duration from word count.
func estimateSentenceDuration(sentence string, wordsPerMinute float64) float64 {
	words := len(strings.Fields(sentence))
	return float64(words) / wordsPerMinute * 60
}

// splitSentences breaks text on sentence terminators, keeping the
// terminator with its sentence and discarding empty fragments.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}
