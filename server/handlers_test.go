package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timejump/internal/models"
	"timejump/shared/monitoring"
	"timejump/shared/storage"
)

type stubEngine struct {
	entries []models.TimestampEntry
	err     error
	manual  []models.TimestampEntry
}

func (s *stubEngine) Extract(_ context.Context, videoID string) ([]models.TimestampEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubEngine) ParseManual(text string, duration int) []models.TimestampEntry {
	return s.manual
}

type stubMetadata struct {
	video *models.Video
	err   error
}

func (s *stubMetadata) GetVideo(context.Context, string) (*models.Video, error) {
	return s.video, s.err
}

type memStore struct {
	videos map[string]*models.Video
	err    error
}

func newMemStore() *memStore {
	return &memStore{videos: map[string]*models.Video{}}
}

func (m *memStore) Upsert(video *models.Video) error {
	if m.err != nil {
		return m.err
	}
	m.videos[video.ID] = video
	return nil
}

func (m *memStore) Get(videoID string) (*models.Video, error) {
	video, ok := m.videos[videoID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return video, nil
}

func (m *memStore) List() ([]*models.Video, error) {
	out := make([]*models.Video, 0, len(m.videos))
	for _, v := range m.videos {
		out = append(out, v)
	}
	return out, nil
}

func (m *memStore) Delete(videoID string) error {
	delete(m.videos, videoID)
	return nil
}

type stubThumbnails struct {
	path string
	err  error
}

func (s *stubThumbnails) Thumbnail(context.Context, string, int) (string, error) {
	return s.path, s.err
}

type testDeps struct {
	engine     *stubEngine
	metadata   *stubMetadata
	store      *memStore
	thumbnails *stubThumbnails
}

func testServer(t *testing.T, deps testDeps) http.Handler {
	t.Helper()
	if deps.engine == nil {
		deps.engine = &stubEngine{}
	}
	if deps.metadata == nil {
		deps.metadata = &stubMetadata{video: &models.Video{ID: "v", Title: "t"}}
	}
	if deps.store == nil {
		deps.store = newMemStore()
	}
	if deps.thumbnails == nil {
		deps.thumbnails = &stubThumbnails{}
	}
	s := New(deps.engine, deps.metadata, deps.store, deps.thumbnails, monitoring.NewMonitor(), 0)
	return s.Handler()
}

func TestTimestampsEndpoint(t *testing.T) {
	engine := &stubEngine{entries: []models.TimestampEntry{
		{Seconds: 90, Timestamp: "1:30", Caption: "the drop"},
	}}
	handler := testServer(t, testDeps{engine: engine})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/timestamps/abc123", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []models.TimestampEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Seconds != 90 || got[0].Caption != "the drop" {
		t.Errorf("got %+v, want the extracted entry", got)
	}
}

func TestTimestampsEndpointEmptyIsArray(t *testing.T) {
	engine := &stubEngine{entries: []models.TimestampEntry{}}
	handler := testServer(t, testDeps{engine: engine})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/timestamps/abc123", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestTimestampsEndpointExtractionFailure(t *testing.T) {
	engine := &stubEngine{err: errors.New("quota exceeded")}
	handler := testServer(t, testDeps{engine: engine})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/timestamps/abc123", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	// The failed run must flip the health endpoint.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("health status = %d, want 503", rec.Code)
	}
}

func TestManualEndpoint(t *testing.T) {
	engine := &stubEngine{manual: []models.TimestampEntry{
		{Seconds: 10, Timestamp: "0:10", Caption: "intro"},
	}}
	handler := testServer(t, testDeps{engine: engine})

	body := strings.NewReader(`{"text": "intro 0:10", "duration": 300}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/manual", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []models.TimestampEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Caption != "intro" {
		t.Errorf("got %+v, want the parsed entry", got)
	}
}

func TestManualEndpointValidation(t *testing.T) {
	handler := testServer(t, testDeps{})

	tests := []struct {
		name string
		body string
	}{
		{"Malformed JSON", `{"text": `},
		{"Missing text", `{"duration": 300}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/manual", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCollectEndpoint(t *testing.T) {
	store := newMemStore()
	metadata := &stubMetadata{video: &models.Video{
		ID:              "abc123",
		Title:           "A Video",
		DurationSeconds: 600,
	}}
	handler := testServer(t, testDeps{store: store, metadata: metadata})

	body := strings.NewReader(`{"videoId": "abc123", "timestamps": [{"seconds": 90, "timestamp": "1:30", "caption": "x"}]}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/video/collect", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	saved, err := store.Get("abc123")
	if err != nil {
		t.Fatalf("video was not stored: %v", err)
	}
	if saved.Title != "A Video" || saved.TimestampCount != 1 {
		t.Errorf("stored %+v, want fetched metadata with timestamp count", saved)
	}
}

func TestCollectEndpointMetadataFailureDegrades(t *testing.T) {
	store := newMemStore()
	metadata := &stubMetadata{err: errors.New("api down")}
	handler := testServer(t, testDeps{store: store, metadata: metadata})

	body := strings.NewReader(`{"videoId": "abc123"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/video/collect", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (placeholder metadata)", rec.Code)
	}
	saved, err := store.Get("abc123")
	if err != nil {
		t.Fatalf("video was not stored: %v", err)
	}
	if saved.Title != "Title unavailable" {
		t.Errorf("title = %q, want placeholder", saved.Title)
	}
}

func TestCollectEndpointRequiresVideoID(t *testing.T) {
	handler := testServer(t, testDeps{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/video/collect", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestThumbnailEndpoint(t *testing.T) {
	img := filepath.Join(t.TempDir(), "abc123_90.jpg")
	if err := os.WriteFile(img, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	handler := testServer(t, testDeps{thumbnails: &stubThumbnails{path: img}})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thumbnail/abc123/90", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "jpeg-bytes" {
		t.Errorf("body = %q, want image bytes", rec.Body.String())
	}
}

func TestThumbnailEndpointBadSeconds(t *testing.T) {
	handler := testServer(t, testDeps{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thumbnail/abc123/ninety", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestThumbnailEndpointGenerationFailure(t *testing.T) {
	handler := testServer(t, testDeps{thumbnails: &stubThumbnails{err: errors.New("yt-dlp failed")}})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thumbnail/abc123/90", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestVideosListAndDelete(t *testing.T) {
	store := newMemStore()
	store.videos["abc123"] = &models.Video{ID: "abc123", Title: "t"}
	handler := testServer(t, testDeps{store: store})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var videos []*models.Video
	if err := json.Unmarshal(rec.Body.Bytes(), &videos); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(videos) != 1 {
		t.Errorf("got %d videos, want 1", len(videos))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/videos/abc123", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/videos/abc123", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
