package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildImagePrompt_Deterministic(t *testing.T) {
	a := BuildImagePrompt("A volcano erupted in Iceland. Locals watched.", "dramatic", "news")
	b := BuildImagePrompt("A volcano erupted in Iceland. Locals watched.", "dramatic", "news")
	assert.Equal(t, a, b)
}

func TestBuildImagePrompt_UsesFirstSentence(t *testing.T) {
	prompt := BuildImagePrompt("A volcano erupted in Iceland. Locals watched in awe.", "minimal", "")
	assert.Contains(t, prompt, "A volcano erupted in Iceland")
	assert.NotContains(t, prompt, "Locals watched")
}

func TestBuildImagePrompt_UnknownThemeFallsBack(t *testing.T) {
	unknown := BuildImagePrompt("Something happened.", "vaporwave", "")
	educational := BuildImagePrompt("Something happened.", "educational", "")
	assert.Equal(t, educational, unknown)
}

func TestBuildImagePrompt_GenreOptional(t *testing.T) {
	with := BuildImagePrompt("Something happened.", "retro", "gaming")
	without := BuildImagePrompt("Something happened.", "retro", "")

	assert.True(t, strings.HasPrefix(with, without))
	assert.Contains(t, with, "Video game inspired")

	unknownGenre := BuildImagePrompt("Something happened.", "retro", "cooking")
	assert.Equal(t, without, unknownGenre)
}
