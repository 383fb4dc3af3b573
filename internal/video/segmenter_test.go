package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentScript_ReassemblesToOriginal(t *testing.T) {
	script := "The first fact is simple. The second fact is stranger! Was the third one even true? The fourth closes it out."

	sections := SegmentScript(script, 10, DefaultWordsPerMinute)
	require.NotEmpty(t, sections)

	var rebuilt []string
	for _, s := range sections {
		rebuilt = append(rebuilt, s.Text)
	}
	assert.Equal(t, script, strings.Join(rebuilt, " "))
}

func TestSegmentScript_RespectsDurationBound(t *testing.T) {
	// 20 sentences of 10 words each; at 150 wpm each sentence is 4s.
	sentence := "one two three four five six seven eight nine ten."
	script := strings.Repeat(sentence+" ", 20)

	maxDuration := 10.0
	sections := SegmentScript(script, maxDuration, DefaultWordsPerMinute)
	require.NotEmpty(t, sections)

	for i, s := range sections {
		assert.LessOrEqual(t, s.EstimatedDurationSec, maxDuration,
			"section %d exceeds the duration budget", i)
	}
}

func TestSegmentScript_OversizedSentenceEmittedWhole(t *testing.T) {
	// One 50-word sentence is 20s at 150 wpm, far above the 5s budget.
	long := strings.Repeat("word ", 49) + "word."

	sections := SegmentScript(long, 5, DefaultWordsPerMinute)
	require.Len(t, sections, 1)
	assert.Equal(t, strings.TrimSpace(long), sections[0].Text)
	assert.InDelta(t, 20.0, sections[0].EstimatedDurationSec, 0.01)
}

func TestSegmentScript_OffsetsAreRunningSums(t *testing.T) {
	sentence := "one two three four five six seven eight nine ten."
	script := strings.Repeat(sentence+" ", 6)

	sections := SegmentScript(script, 4, DefaultWordsPerMinute)
	require.Greater(t, len(sections), 1)

	var sum float64
	for i, s := range sections {
		assert.InDelta(t, sum, s.CumulativeOffsetSeconds, 0.001, "section %d offset", i)
		sum += s.EstimatedDurationSec
	}
}

func TestSegmentScript_Empty(t *testing.T) {
	assert.Nil(t, SegmentScript("", 10, DefaultWordsPerMinute))
	assert.Nil(t, SegmentScript("   ", 10, DefaultWordsPerMinute))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "mixed_terminators",
			text: "First. Second! Third?",
			want: []string{"First.", "Second!", "Third?"},
		},
		{
			name: "trailing_fragment_kept",
			text: "Done. And a trailing thought",
			want: []string{"Done.", "And a trailing thought"},
		},
		{
			name: "collapses_whitespace_fragments",
			text: "One.   . Two.",
			want: []string{"One.", ".", "Two."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.text))
		})
	}
}
