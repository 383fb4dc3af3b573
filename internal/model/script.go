package model

// SourceTrend is the single post a script was generated from.
type SourceTrend struct {
	ID        string `json:"id"`
	Subreddit string `json:"subreddit"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

// ScriptResult is the output of the script stage. The script text is
// segmented downstream; segmentation output is derived, never written
// back into this struct.
type ScriptResult struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	Script      string      `json:"script"`
	SourceTrend SourceTrend `json:"sourceTrend"`
}

// ScriptSection is one time-bounded slice of a script, used to drive
// per-slide imagery. Durations are estimates from word count, not
// measured audio; offsets are running sums of prior estimates.
type ScriptSection struct {
	Text                    string  `json:"text"`
	EstimatedDurationSec    float64 `json:"estimatedDurationSeconds"`
	CumulativeOffsetSeconds float64 `json:"cumulativeOffsetSeconds"`
}
