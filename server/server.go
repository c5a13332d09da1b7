// Package server exposes the extraction engine, video store, and
// thumbnail generator over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"timejump/internal/models"
	"timejump/shared/monitoring"
)

// ExtractionEngine is the surface of the extractor the handlers need.
type ExtractionEngine interface {
	Extract(ctx context.Context, videoID string) ([]models.TimestampEntry, error)
	ParseManual(text string, duration int) []models.TimestampEntry
}

// MetadataSource fetches video metadata, normally the YouTube client.
type MetadataSource interface {
	GetVideo(ctx context.Context, videoID string) (*models.Video, error)
}

// Thumbnails produces a frame grab for a (video, second) pair.
type Thumbnails interface {
	Thumbnail(ctx context.Context, videoID string, seconds int) (string, error)
}

// VideoStore is the persistence surface the handlers need.
type VideoStore interface {
	Upsert(video *models.Video) error
	Get(videoID string) (*models.Video, error)
	List() ([]*models.Video, error)
	Delete(videoID string) error
}

type Server struct {
	engine     ExtractionEngine
	metadata   MetadataSource
	store      VideoStore
	thumbnails Thumbnails
	monitor    *monitoring.Monitor
	port       int
}

func New(engine ExtractionEngine, metadata MetadataSource, store VideoStore, thumbnails Thumbnails, monitor *monitoring.Monitor, port int) *Server {
	return &Server{
		engine:     engine,
		metadata:   metadata,
		store:      store,
		thumbnails: thumbnails,
		monitor:    monitor,
		port:       port,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/timestamps/{videoID}", s.handleTimestamps)
	mux.HandleFunc("POST /api/manual", s.handleManual)
	mux.HandleFunc("POST /api/video/collect", s.handleCollect)
	mux.HandleFunc("GET /api/thumbnail/{videoID}/{seconds}", s.handleThumbnail)
	mux.HandleFunc("GET /api/videos", s.handleListVideos)
	mux.HandleFunc("DELETE /api/videos/{videoID}", s.handleDeleteVideo)
	mux.HandleFunc("GET /health", monitoring.HealthHandler(s.monitor))
	mux.HandleFunc("GET /status", monitoring.StatusHandler(s.monitor))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Print("HTTP server stopped")
	return nil
}
