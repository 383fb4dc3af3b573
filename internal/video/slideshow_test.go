package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideBudget(t *testing.T) {
	assert.InDelta(t, 8.0, slideBudget(40, "standard"), 0.001)
	assert.InDelta(t, 40.0/3, slideBudget(40, "short"), 0.001)
	assert.InDelta(t, 5.0, slideBudget(40, "long"), 0.001)

	// Unknown or empty duration falls back to the standard slide count.
	assert.InDelta(t, 8.0, slideBudget(40, ""), 0.001)
	assert.InDelta(t, 8.0, slideBudget(40, "epic"), 0.001)
}

// A 40 second voiceover must spread across several slides, not collapse
// into one near-full-length section with the whole script on it.
func TestSlideshowSectioning_SpreadsAcrossSlides(t *testing.T) {
	sentence := "One two three four five six seven eight nine ten."
	script := strings.TrimSpace(strings.Repeat(sentence+" ", 12)) // 120 words

	budget := slideBudget(40, "standard")
	sections := SegmentScript(script, budget, DefaultWordsPerMinute)

	require.GreaterOrEqual(t, len(sections), 5)
	for i, s := range sections {
		assert.LessOrEqualf(t, s.EstimatedDurationSec, budget+0.001,
			"section %d exceeds the per-slide budget", i)
	}

	// No single slide may hold the bulk of the script.
	for i, s := range sections {
		words := len(strings.Fields(s.Text))
		assert.LessOrEqualf(t, words, 60, "section %d carries %d words", i, words)
	}
}
