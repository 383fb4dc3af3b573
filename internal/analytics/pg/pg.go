package pg

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS tracked_videos (
	video_id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	upload_date TIMESTAMPTZ NOT NULL,
	source_type TEXT NOT NULL DEFAULT '',
	source_data TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS video_metrics (
	id SERIAL PRIMARY KEY,
	video_id TEXT NOT NULL REFERENCES tracked_videos(video_id),
	date TIMESTAMPTZ NOT NULL,
	views BIGINT NOT NULL DEFAULT 0,
	likes BIGINT NOT NULL DEFAULT 0,
	comments BIGINT NOT NULL DEFAULT 0,
	estimated_revenue DOUBLE PRECISION NOT NULL DEFAULT 0,
	watch_time_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_video_metrics_video_id ON video_metrics(video_id);
`

// GetConnection opens the PostgreSQL analytics database using
// ANALYTICS_PG_DSN, falling back to a local development DSN, and
// ensures the schema exists.
func GetConnection() (*sql.DB, error) {
	dsn := os.Getenv("ANALYTICS_PG_DSN")
	if dsn == "" {
		dsn = "user=postgres password=passwd dbname=reditrend sslmode=disable"
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}
