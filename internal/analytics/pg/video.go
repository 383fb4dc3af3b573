package pg

import (
	"database/sql"
	"fmt"
	"time"

	"reditrend/internal/analytics"
	"reditrend/internal/model"
)

// Ensure PostgresDB implements VideoDAO
var _ analytics.VideoDAO = (*PostgresDB)(nil)

// PostgresDB implements the analytics DAO on PostgreSQL.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB wraps an open connection.
func NewPostgresDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) TrackVideo(video *model.TrackedVideo) error {
	var exists int
	err := p.db.QueryRow(`SELECT COUNT(1) FROM tracked_videos WHERE video_id = $1`, video.VideoID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if exists > 0 {
		return analytics.ErrDuplicateVideo
	}

	insertSQL := `
		INSERT INTO tracked_videos (
			video_id, title, description, upload_date, source_type, source_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = p.db.Exec(insertSQL,
		video.VideoID, video.Title, video.Description, video.UploadDate,
		video.SourceType, video.SourceData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert tracked video: %w", err)
	}
	return nil
}

func (p *PostgresDB) GetVideo(videoID string) (*model.TrackedVideo, error) {
	query := `
		SELECT video_id, title, description, upload_date, source_type, source_data
		FROM tracked_videos
		WHERE video_id = $1`

	var v model.TrackedVideo
	err := p.db.QueryRow(query, videoID).Scan(
		&v.VideoID, &v.Title, &v.Description, &v.UploadDate,
		&v.SourceType, &v.SourceData)
	if err == sql.ErrNoRows {
		return nil, analytics.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	metrics, err := p.metricsFor(videoID)
	if err != nil {
		return nil, err
	}
	v.Metrics = metrics
	return &v, nil
}

func (p *PostgresDB) ListVideos() ([]model.TrackedVideo, error) {
	query := `
		SELECT video_id, title, description, upload_date, source_type, source_data
		FROM tracked_videos
		ORDER BY upload_date DESC`

	rows, err := p.db.Query(query)
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

func (p *PostgresDB) AddMetrics(videoID string, sample model.MetricSample) error {
	var exists int
	err := p.db.QueryRow(`SELECT COUNT(1) FROM tracked_videos WHERE video_id = $1`, videoID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if exists == 0 {
		return analytics.ErrVideoNotFound
	}

	insertSQL := `
		INSERT INTO video_metrics (
			video_id, date, views, likes, comments, estimated_revenue, watch_time_hours, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = p.db.Exec(insertSQL,
		videoID, sample.Date, sample.Views, sample.Likes, sample.Comments,
		sample.EstimatedRevenue, sample.WatchTimeHours, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert metrics: %w", err)
	}
	return nil
}

func (p *PostgresDB) metricsFor(videoID string) ([]model.MetricSample, error) {
	query := `
		SELECT date, views, likes, comments, estimated_revenue, watch_time_hours
		FROM video_metrics
		WHERE video_id = $1
		ORDER BY date ASC`

	rows, err := p.db.Query(query, videoID)
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
