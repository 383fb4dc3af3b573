package model

// Stage identifies one step of the pipeline.
type Stage string

const (
	StageTrends    Stage = "trends"
	StageScript    Stage = "script"
	StageVoice     Stage = "voice"
	StageVideo     Stage = "video"
	StageUpload    Stage = "upload"
	StageAnalytics Stage = "analytics"
)

// PipelineRequest identifies one end-to-end run. Immutable once submitted.
type PipelineRequest struct {
	Subreddits      []string  `json:"subreddits" binding:"required,min=1"`
	DateRange       DateRange `json:"dateRange"`
	SearchType      string    `json:"searchType" binding:"omitempty,oneof=hot top new rising"`
	CustomPrompt    string    `json:"customPrompt"`
	ScriptStyle     string    `json:"scriptStyle"`
	ScriptLength    string    `json:"scriptLength"`
	VoiceProvider   string    `json:"voiceProvider"`
	VoiceID         string    `json:"voiceId"`
	VideoStyle      string    `json:"videoStyle"`
	VideoDuration   string    `json:"videoDuration" binding:"omitempty,oneof=short standard long"`
	Theme           string    `json:"theme"`
	Genre           string    `json:"genre"`
	UploadToYoutube bool      `json:"uploadToYoutube"`
}

// UploadResult is the output of a successful YouTube upload.
type UploadResult struct {
	VideoID    string `json:"videoId"`
	YoutubeURL string `json:"youtubeUrl"`
	Title      string `json:"title"`
}

// PipelineResult aggregates the artifacts of all completed stages.
// Warnings carry non-fatal degradations such as a failed analytics
// registration after a successful upload.
type PipelineResult struct {
	Trend    *TrendResult  `json:"trend"`
	Script   *ScriptResult `json:"script"`
	Voice    *VoiceResult  `json:"voice"`
	Video    *VideoResult  `json:"video"`
	Youtube  *UploadResult `json:"youtube,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}
