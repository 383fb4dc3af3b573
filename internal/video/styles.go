package video

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Style names accepted by the create endpoint.
const (
	StylePodcast   = "podcast"
	StyleSlideshow = "slideshow"
	StyleCaptions  = "captions"
	StyleReddit    = "reddit"
)

// StyleInfo describes a composition style for the listing endpoint.
type StyleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AllStyles lists the supported composition styles.
func AllStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StylePodcast, Description: "Static branded background over the full voiceover"},
		{Name: StyleSlideshow, Description: "Generated imagery per script section with transitions"},
		{Name: StyleCaptions, Description: "Burned-in subtitles over a plain background"},
		{Name: StyleReddit, Description: "Rendered Reddit post card over the voiceover"},
	}
}

// ValidStyle reports whether name is a known composition style.
func ValidStyle(name string) bool {
	switch name {
	case StylePodcast, StyleSlideshow, StyleCaptions, StyleReddit:
		return true
	}
	return false
}

// BuildSRT distributes the measured audio duration evenly across the
// sentences and renders a SubRip file. Even spacing keeps captions in
// rough sync without per-word timing data.
func BuildSRT(sentences []string, totalDuration float64) string {
	if len(sentences) == 0 {
		return ""
	}
	per := totalDuration / float64(len(sentences))

	var b strings.Builder
	for i, sentence := range sentences {
		start := float64(i) * per
		end := start + per
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, formatSrtTime(start), formatSrtTime(end), strings.TrimSpace(sentence))
	}
	return b.String()
}

// WriteSRT writes the rendered subtitle track next to the other work
// files and returns its path.
func WriteSRT(dir string, sentences []string, totalDuration float64) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create captions dir: %w", err)
	}
	path := filepath.Join(dir, "captions.srt")
	if err := os.WriteFile(path, []byte(BuildSRT(sentences, totalDuration)), 0644); err != nil {
		return "", fmt.Errorf("write captions: %w", err)
	}
	return path, nil
}

// formatSrtTime renders seconds as the SubRip HH:MM:SS,mmm timestamp.
func formatSrtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int(seconds*1000 + 0.5)
	h := millis / 3600000
	millis -= h * 3600000
	m := millis / 60000
	millis -= m * 60000
	s := millis / 1000
	millis -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, millis)
}
