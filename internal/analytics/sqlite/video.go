package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"reditrend/internal/analytics"
	"reditrend/internal/model"
)

// Ensure SQLiteDB implements VideoDAO
var _ analytics.VideoDAO = (*SQLiteDB)(nil)

// SQLiteDB implements the analytics DAO on an embedded SQLite file.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB wraps an open connection.
func NewSQLiteDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// TrackVideo registers a video. A second registration of the same id
// returns ErrDuplicateVideo and leaves the first record untouched.
func (s *SQLiteDB) TrackVideo(video *model.TrackedVideo) error {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM tracked_videos WHERE video_id = ?`, video.VideoID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if exists > 0 {
		return analytics.ErrDuplicateVideo
	}

	insertSQL := `
		INSERT INTO tracked_videos (
			video_id, title, description, upload_date, source_type, source_data, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(insertSQL,
		video.VideoID, video.Title, video.Description, video.UploadDate,
		video.SourceType, video.SourceData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert tracked video: %w", err)
	}
	return nil
}

// GetVideo returns a tracked video with its full metric history.
func (s *SQLiteDB) GetVideo(videoID string) (*model.TrackedVideo, error) {
	query := `
		SELECT video_id, title, description, upload_date,
			COALESCE(source_type, '') as source_type,
			COALESCE(source_data, '') as source_data
		FROM tracked_videos
		WHERE video_id = ?`

	var v model.TrackedVideo
	err := s.db.QueryRow(query, videoID).Scan(
		&v.VideoID, &v.Title, &v.Description, &v.UploadDate,
		&v.SourceType, &v.SourceData)
	if err == sql.ErrNoRows {
		return nil, analytics.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	metrics, err := s.metricsFor(videoID)
	if err != nil {
		return nil, err
	}
	v.Metrics = metrics
	return &v, nil
}

// ListVideos returns all tracked videos without metric history, newest
// upload first.
func (s *SQLiteDB) ListVideos() ([]model.TrackedVideo, error) {
	query := `
		SELECT video_id, title, description, upload_date,
			COALESCE(source_type, '') as source_type,
			COALESCE(source_data, '') as source_data
		FROM tracked_videos
		ORDER BY upload_date DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var videos []model.TrackedVideo
	for rows.Next() {
		var v model.TrackedVideo
		err = rows.Scan(&v.VideoID, &v.Title, &v.Description, &v.UploadDate,
			&v.SourceType, &v.SourceData)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// AddMetrics appends one metric sample for a tracked video.
func (s *SQLiteDB) AddMetrics(videoID string, sample model.MetricSample) error {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM tracked_videos WHERE video_id = ?`, videoID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if exists == 0 {
		return analytics.ErrVideoNotFound
	}

	insertSQL := `
		INSERT INTO video_metrics (
			video_id, date, views, likes, comments, estimated_revenue, watch_time_hours, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(insertSQL,
		videoID, sample.Date, sample.Views, sample.Likes, sample.Comments,
		sample.EstimatedRevenue, sample.WatchTimeHours, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert metrics: %w", err)
	}
	return nil
}

func (s *SQLiteDB) metricsFor(videoID string) ([]model.MetricSample, error) {
	query := `
		SELECT date, views, likes, comments, estimated_revenue, watch_time_hours
		FROM video_metrics
		WHERE video_id = ?
		ORDER BY date ASC`

	rows, err := s.db.Query(query, videoID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var samples []model.MetricSample
	for rows.Next() {
		var m model.MetricSample
		err = rows.Scan(&m.Date, &m.Views, &m.Likes, &m.Comments,
			&m.EstimatedRevenue, &m.WatchTimeHours)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		samples = append(samples, m)
	}
	return samples, rows.Err()
}
