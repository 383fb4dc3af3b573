package model

import "time"

// MetricSample is one point-in-time metrics snapshot for a tracked video.
type MetricSample struct {
	Date             time.Time `json:"date"`
	Views            int64     `json:"views"`
	Likes            int64     `json:"likes"`
	Comments         int64     `json:"comments"`
	EstimatedRevenue float64   `json:"estimatedRevenue"`
	WatchTimeHours   float64   `json:"watchTimeHours"`
}

// TrackedVideo is one uploaded video under analytics tracking, keyed by
// its unique YouTube id. Metric samples are appended by the poller and
// never deleted in normal operation.
type TrackedVideo struct {
	VideoID     string         `json:"videoId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	UploadDate  time.Time      `json:"uploadDate"`
	SourceType  string         `json:"sourceType"`
	SourceData  string         `json:"sourceData,omitempty"`
	Metrics     []MetricSample `json:"metrics"`
}
