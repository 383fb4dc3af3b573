package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsFor_Presets(t *testing.T) {
	tests := []struct {
		length       string
		wantSegments int
		wantPause    float64
	}{
		{"short", 3, 0.3},
		{"medium", 5, 0.5},
		{"long", 10, 0.7},
		{"extended", 20, 1.0},
		{"custom", 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			s := SettingsFor(tt.length)
			assert.Equal(t, tt.wantSegments, s.MaxSegments)
			assert.Equal(t, tt.wantPause, s.PauseBetween)
		})
	}
}

func TestSettingsFor_UnknownDefaultsToMedium(t *testing.T) {
	assert.Equal(t, SettingsFor("medium"), SettingsFor("marathon"))
	assert.Equal(t, SettingsFor("medium"), SettingsFor(""))
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, 0.0, EstimateDuration(""))
	assert.InDelta(t, 1.0, EstimateDuration("one two three"), 0.001)
	assert.InDelta(t, 2.0, EstimateDuration("one two three four five six"), 0.001)
}

func TestDefaultVoices(t *testing.T) {
	assert.Equal(t, "onyx", DefaultVoices["host"])
	assert.Equal(t, "nova", DefaultVoices["cohost"])
	assert.Equal(t, "alloy", DefaultVoices["narrator"])
}
