package voice

import "strings"

// Synthesis speaking rate used for duration estimates, in words per
// second. The spoken audio is close to 3 words/second for neural voices.
const wordsPerSecond = 3.0

// LengthSettings bound a podcast synthesis run.
type LengthSettings struct {
	MaxSegments  int     `json:"maxSegments"` // 0 means unlimited
	PauseBetween float64 `json:"pauseBetween"`
}

// Length presets keyed by the request's length field.
var lengthSettings = map[string]LengthSettings{
	"short":    {MaxSegments: 3, PauseBetween: 0.3},
	"medium":   {MaxSegments: 5, PauseBetween: 0.5},
	"long":     {MaxSegments: 10, PauseBetween: 0.7},
	"extended": {MaxSegments: 20, PauseBetween: 1.0},
	"custom":   {MaxSegments: 0, PauseBetween: 0.5},
}

// DefaultVoices maps podcast roles to default voice ids.
var DefaultVoices = map[string]string{
	"host":     "onyx",
	"cohost":   "nova",
	"narrator": "alloy",
}

// SettingsFor returns the preset for a length label, defaulting to medium.
func SettingsFor(length string) LengthSettings {
	if s, ok := lengthSettings[length]; ok {
		return s
	}
	return lengthSettings["medium"]
}

// AllSettings exposes every preset for the /settings endpoint.
func AllSettings() map[string]LengthSettings {
	return lengthSettings
}

// EstimateDuration estimates spoken duration in seconds from word count.
// Deliberately an estimate: audio files are never probed at this stage.
func EstimateDuration(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return float64(words) / wordsPerSecond
}
