package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSrtTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.25, "00:01:01,250"},
		{3661.001, "01:01:01,001"},
		{-5, "00:00:00,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSrtTime(tt.seconds), "seconds=%v", tt.seconds)
	}
}

func TestBuildSRT_DistributesMeasuredDuration(t *testing.T) {
	sentences := []string{"First line.", "Second line.", "Third line."}
	srt := BuildSRT(sentences, 30)

	cues := strings.Split(strings.TrimSpace(srt), "\n\n")
	require.Len(t, cues, 3)

	assert.Contains(t, cues[0], "00:00:00,000 --> 00:00:10,000")
	assert.Contains(t, cues[1], "00:00:10,000 --> 00:00:20,000")
	assert.Contains(t, cues[2], "00:00:20,000 --> 00:00:30,000")

	assert.Contains(t, cues[0], "1\n")
	assert.Contains(t, cues[0], "First line.")
	assert.Contains(t, cues[2], "Third line.")
}

func TestBuildSRT_Empty(t *testing.T) {
	assert.Equal(t, "", BuildSRT(nil, 30))
}

func TestValidStyle(t *testing.T) {
	for _, s := range []string{StylePodcast, StyleSlideshow, StyleCaptions, StyleReddit} {
		assert.True(t, ValidStyle(s), s)
	}
	assert.False(t, ValidStyle("vlog"))
	assert.False(t, ValidStyle(""))
}
