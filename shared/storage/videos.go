// Package storage persists video metadata collected alongside extraction
// runs.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timejump/internal/models"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a video has never been collected.
var ErrNotFound = errors.New("video not found")

// VideoStore is a SQLite-backed store of video metadata, keyed by video ID.
type VideoStore struct {
	db *sql.DB
}

// OpenVideoStore opens (creating if needed) the videos database under
// dataDir.
func OpenVideoStore(dataDir string) (*VideoStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := filepath.Join(dataDir, "videos.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open video database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS videos (
	  video_id         TEXT PRIMARY KEY,
	  title            TEXT NOT NULL,
	  thumbnail_url    TEXT NOT NULL,
	  duration_seconds INTEGER NOT NULL,
	  timestamp_count  INTEGER NOT NULL,
	  age_restricted   INTEGER NOT NULL,
	  views            INTEGER NOT NULL,
	  last_checked     TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &VideoStore{db: db}, nil
}

// Upsert inserts a video's metadata, or refreshes it if the video is already
// known.
func (s *VideoStore) Upsert(video *models.Video) error {
	if video == nil || video.ID == "" {
		return fmt.Errorf("video ID is required")
	}

	query := `
	INSERT INTO videos (video_id, title, thumbnail_url, duration_seconds, timestamp_count, age_restricted, views, last_checked)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(video_id) DO UPDATE SET
	  title = excluded.title,
	  thumbnail_url = excluded.thumbnail_url,
	  duration_seconds = excluded.duration_seconds,
	  timestamp_count = excluded.timestamp_count,
	  age_restricted = excluded.age_restricted,
	  views = excluded.views,
	  last_checked = excluded.last_checked
	`

	_, err := s.db.Exec(query,
		video.ID, video.Title, video.ThumbnailURL, video.DurationSeconds,
		video.TimestampCount, boolToInt(video.AgeRestricted), video.Views,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert video %s: %w", video.ID, err)
	}
	return nil
}

// Get returns a stored video's metadata, or ErrNotFound.
func (s *VideoStore) Get(videoID string) (*models.Video, error) {
	row := s.db.QueryRow(`
	SELECT video_id, title, thumbnail_url, duration_seconds, timestamp_count, age_restricted, views, last_checked
	FROM videos WHERE video_id = ?`, videoID)

	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", videoID, err)
	}
	return video, nil
}

// List returns all stored videos, most recently checked first.
func (s *VideoStore) List() ([]*models.Video, error) {
	rows, err := s.db.Query(`
	SELECT video_id, title, thumbnail_url, duration_seconds, timestamp_count, age_restricted, views, last_checked
	FROM videos ORDER BY last_checked DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// Delete removes a video's metadata.
func (s *VideoStore) Delete(videoID string) error {
	if _, err := s.db.Exec(`DELETE FROM videos WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("failed to delete video %s: %w", videoID, err)
	}
	return nil
}

func (s *VideoStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*models.Video, error) {
	var video models.Video
	var ageRestricted int
	var lastChecked string

	err := row.Scan(&video.ID, &video.Title, &video.ThumbnailURL, &video.DurationSeconds,
		&video.TimestampCount, &ageRestricted, &video.Views, &lastChecked)
	if err != nil {
		return nil, err
	}

	video.AgeRestricted = ageRestricted != 0
	if t, err := time.Parse(time.RFC3339, lastChecked); err == nil {
		video.LastChecked = t
	}
	return &video, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
