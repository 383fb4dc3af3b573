package model

import "time"

// Dimensions is a target width and height in pixels.
type Dimensions struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// ImageAsset is a cached generated image, addressed by the hash of the
// prompt and dimensions that produced it. Never mutated after creation.
type ImageAsset struct {
	CacheKey    string    `json:"cacheKey"`
	LocalPath   string    `json:"localPath"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// VoiceResult is the output of one speech synthesis call. Duration is
// estimated from word count at the provider speaking rate, not measured
// from the audio file.
type VoiceResult struct {
	AudioFile   string  `json:"audioFile"`
	DurationSec float64 `json:"duration"`
	VoiceID     string  `json:"voiceId"`
}

// PodcastSegment is one multi-speaker segment of a podcast voice-over.
type PodcastSegment struct {
	Role        string  `json:"role"`
	AudioFile   string  `json:"audioFile"`
	DurationSec float64 `json:"duration"`
	VoiceID     string  `json:"voiceId"`
	PauseAfter  float64 `json:"pauseAfter"`
}

// VideoResult is the terminal artifact of the video stage. DurationSec
// is always measured from the encoded output with ffprobe, never the
// sum of estimated section durations.
type VideoResult struct {
	VideoFile   string  `json:"videoFile"`
	DurationSec float64 `json:"duration"`
	Style       string  `json:"style"`
	Format      string  `json:"format"`
	StorageURL  string  `json:"storageUrl,omitempty"`
}
