package video

import (
	"fmt"
	"strings"
)

// Style-modifier phrases per theme. Unknown themes fall back to the
// educational modifiers.
var themeModifiers = map[string]string{
	"educational":  "Clean, professional style, bright lighting, informative illustration",
	"dramatic":     "Cinematic dramatic style, high contrast, moody lighting",
	"minimal":      "Minimalist flat design, soft pastel palette, generous whitespace",
	"retro":        "Retro 1980s aesthetic, grainy film texture, warm analog colors",
	"futuristic":   "Futuristic sci-fi style, neon accents, sleek glass and chrome",
	"hand_drawn":   "Hand-drawn sketch style, ink lines, watercolor wash",
	"photographic": "Photorealistic, shallow depth of field, natural light",
}

// Optional genre-modifier phrases. Unknown or absent genres contribute
// nothing to the prompt.
var genreModifiers = map[string]string{
	"gaming":     "video game inspired, vibrant digital art",
	"technology": "modern tech imagery, circuit motifs",
	"news":       "editorial illustration, newsroom tone",
	"sports":     "dynamic action composition, stadium atmosphere",
	"science":    "scientific illustration, precise detail",
	"finance":    "financial charts motif, corporate palette",
	"horror":     "dark unsettling atmosphere, deep shadows",
	"comedy":     "playful cartoon exaggeration, bright colors",
}

// BuildImagePrompt derives the image-generation prompt for one script
// section. Pure function of its inputs: cache keys depend on it being
// deterministic.
func BuildImagePrompt(sectionText, theme, genre string) string {
	modifier, ok := themeModifiers[theme]
	if !ok {
		modifier = themeModifiers["educational"]
	}

	subject := firstSentence(sectionText)

	var b strings.Builder
	fmt.Fprintf(&b, "High quality image for a YouTube video: %s. %s.", subject, modifier)
	if genreMod, ok := genreModifiers[genre]; ok {
		fmt.Fprintf(&b, " %s.", strings.ToUpper(genreMod[:1])+genreMod[1:])
	}
	return b.String()
}

// firstSentence returns the section's first sentence, or the whole
// section when no terminator is present.
func firstSentence(text string) string {
	if sentences := splitSentences(text); len(sentences) > 0 {
		return strings.TrimRight(sentences[0], ".!?")
	}
	return strings.TrimSpace(text)
}
