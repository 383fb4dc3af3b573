package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reditrend/internal/model"
)

func TestBuildSlideshowArgs_XfadeOffsets(t *testing.T) {
	slides := []slideInput{
		{ImagePath: "a.png", DurationSec: 4},
		{ImagePath: "b.png", DurationSec: 6},
		{ImagePath: "c.png", DurationSec: 5},
	}
	dims := model.Dimensions{Width: 1080, Height: 1920}

	args := buildSlideshowArgs(slides, "voice.mp3", "fade", "out.mp4", dims)
	joined := strings.Join(args, " ")

	// Offsets subtract the transition overlap from cumulative durations.
	assert.Contains(t, joined, "xfade=transition=fade:duration=0.50:offset=3.50")
	assert.Contains(t, joined, "xfade=transition=fade:duration=0.50:offset=9.00")

	assert.Contains(t, joined, "-shortest")
	assert.Contains(t, joined, "yuv420p")
	assert.Contains(t, joined, "192k")

	// The audio input follows the image inputs.
	require.Contains(t, args, "voice.mp3")
	assert.Contains(t, args, "3:a")
}

func TestBuildSlideshowArgs_UnknownTransitionFallsBackToFade(t *testing.T) {
	slides := []slideInput{
		{ImagePath: "a.png", DurationSec: 4},
		{ImagePath: "b.png", DurationSec: 4},
	}
	dims := model.Dimensions{Width: 1080, Height: 1920}

	args := buildSlideshowArgs(slides, "voice.mp3", "sparkle", "out.mp4", dims)
	assert.Contains(t, strings.Join(args, " "), "xfade=transition=fade")
}

func TestBuildSlideshowArgs_TransitionMap(t *testing.T) {
	slides := []slideInput{
		{ImagePath: "a.png", DurationSec: 4},
		{ImagePath: "b.png", DurationSec: 4},
	}
	dims := model.Dimensions{Width: 1080, Height: 1920}

	tests := []struct {
		transition string
		wantFilter string
	}{
		{"fade", "xfade=transition=fade"},
		{"slide", "xfade=transition=slideleft"},
		{"dynamic", "xfade=transition=wipeleft"},
	}

	for _, tt := range tests {
		args := buildSlideshowArgs(slides, "voice.mp3", tt.transition, "out.mp4", dims)
		assert.Contains(t, strings.Join(args, " "), tt.wantFilter, tt.transition)
	}
}

func TestBuildSlideshowArgs_SingleSlideHasNoXfade(t *testing.T) {
	slides := []slideInput{{ImagePath: "a.png", DurationSec: 12}}
	dims := model.Dimensions{Width: 1920, Height: 1080}

	args := buildSlideshowArgs(slides, "voice.mp3", "fade", "out.mp4", dims)
	joined := strings.Join(args, " ")
	assert.NotContains(t, joined, "xfade")
	assert.Contains(t, joined, "format=yuv420p")
}

func TestBuildStillArgs(t *testing.T) {
	dims := model.Dimensions{Width: 1080, Height: 1920}
	args := buildStillArgs("bg.png", "voice.mp3", "out.mp4", dims)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-loop 1 -i bg.png")
	assert.Contains(t, joined, "scale=1080:1920")
	assert.Contains(t, joined, "-shortest")
	assert.Contains(t, joined, "aac")
}

func TestBuildCaptionsArgs(t *testing.T) {
	dims := model.Dimensions{Width: 1080, Height: 1920}
	args := buildCaptionsArgs("caps.srt", "voice.mp3", "out.mp4", dims, 42.5)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "color=c=black:s=1080x1920:d=42.50")
	assert.Contains(t, joined, "subtitles=caps.srt")
	assert.Contains(t, joined, "-shortest")
}
