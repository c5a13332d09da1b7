package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"timejump/internal/models"
	"timejump/shared/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleTimestamps runs a full extraction for the video. An empty result
// is a 200 with an empty array, never an error.
func (s *Server) handleTimestamps(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoID")
	if videoID == "" {
		writeError(w, http.StatusBadRequest, "Video ID is required")
		return
	}

	startTime := time.Now()
	entries, err := s.engine.Extract(r.Context(), videoID)
	if err != nil {
		s.monitor.RecordFailure(err, time.Since(startTime))
		writeError(w, http.StatusBadGateway, "Extraction failed")
		return
	}
	s.monitor.RecordSuccess(
		strconv.Itoa(len(entries))+" timestamps for "+videoID,
		time.Since(startTime),
	)

	writeJSON(w, http.StatusOK, entries)
}

type manualRequest struct {
	Text     string `json:"text"`
	Duration int    `json:"duration"`
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	var req manualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	writeJSON(w, http.StatusOK, s.engine.ParseManual(req.Text, req.Duration))
}

type collectRequest struct {
	VideoID    string                  `json:"videoId"`
	Timestamps []models.TimestampEntry `json:"timestamps"`
}

// handleCollect fetches metadata for a video and records it. A metadata
// fetch failure is not fatal: the video is stored with placeholder
// fields so the record exists.
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	var req collectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.VideoID == "" {
		writeError(w, http.StatusBadRequest, "Video ID is required")
		return
	}

	video, err := s.metadata.GetVideo(r.Context(), req.VideoID)
	if err != nil {
		log.Printf("Metadata fetch failed for %s, storing placeholder: %v", req.VideoID, err)
		video = &models.Video{
			ID:    req.VideoID,
			Title: "Title unavailable",
		}
	}
	video.TimestampCount = len(req.Timestamps)

	if err := s.store.Upsert(video); err != nil {
		writeError(w, http.StatusInternalServerError, "Data collection error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Video data collected and saved",
	})
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoID")
	seconds, err := strconv.Atoi(r.PathValue("seconds"))
	if videoID == "" || err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	path, err := s.thumbnails.Thumbnail(r.Context(), videoID, seconds)
	if err != nil {
		log.Printf("Thumbnail error for %s at %ds: %v", videoID, seconds, err)
		http.Error(w, "Could not generate thumbnail", http.StatusInternalServerError)
		return
	}

	http.ServeFile(w, r, path)
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list videos")
		return
	}
	if videos == nil {
		videos = []*models.Video{}
	}
	writeJSON(w, http.StatusOK, videos)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoID")

	if _, err := s.store.Get(videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete video")
		return
	}

	if err := s.store.Delete(videoID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete video")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
