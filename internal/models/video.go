package models

import "time"

type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationSeconds int       `json:"duration_seconds"`
	TimestampCount  int       `json:"timestamp_count"`
	AgeRestricted   bool      `json:"age_restricted"`
	Views           int64     `json:"views"`
	LastChecked     time.Time `json:"last_checked"`
}
