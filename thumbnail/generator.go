// Package thumbnail renders frame grabs for individual timestamps by
// downloading a short clip with yt-dlp and extracting one frame with
// ffmpeg. Generated images are cached on disk.
package thumbnail

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"time"
)

// clipSeconds is how much video is fetched around the requested second.
const clipSeconds = 3

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)

type Generator struct {
	cacheDir string
	tempDir  string

	ytdlpPath  string
	ffmpegPath string
}

// NewGenerator resolves the yt-dlp and ffmpeg binaries and prepares the
// cache and temp directories.
func NewGenerator(cacheDir, tempDir string) (*Generator, error) {
	ytdlp, err := exec.LookPath("yt-dlp")
	if err != nil {
		return nil, fmt.Errorf("yt-dlp not found in PATH: %w", err)
	}
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	for _, dir := range []string{cacheDir, tempDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &Generator{
		cacheDir:   cacheDir,
		tempDir:    tempDir,
		ytdlpPath:  ytdlp,
		ffmpegPath: ffmpeg,
	}, nil
}

// Thumbnail returns the path to a cached JPEG frame for the video at
// the given second, generating it first if needed.
func (g *Generator) Thumbnail(ctx context.Context, videoID string, seconds int) (string, error) {
	if !videoIDRe.MatchString(videoID) {
		return "", fmt.Errorf("invalid video ID %q", videoID)
	}
	if seconds < 0 {
		return "", fmt.Errorf("negative timestamp %d", seconds)
	}

	imgPath := filepath.Join(g.cacheDir, fmt.Sprintf("%s_%d.jpg", videoID, seconds))
	if _, err := os.Stat(imgPath); err == nil {
		return imgPath, nil
	}

	clipPath := filepath.Join(g.tempDir, fmt.Sprintf("%s_%d.mp4", videoID, seconds))
	defer os.Remove(clipPath)

	clipStart := seconds - 1
	if clipStart < 0 {
		clipStart = 0
	}

	log.Printf("Downloading clip for %s at %ds", videoID, seconds)
	section := fmt.Sprintf("*%d-%d", clipStart, clipStart+clipSeconds)
	cmd := exec.CommandContext(ctx, g.ytdlpPath,
		"-f", "best",
		"--download-sections", section,
		"-o", clipPath,
		"https://www.youtube.com/watch?v="+videoID,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp failed for %s: %w, output: %s", videoID, err, out)
	}

	cmd = exec.CommandContext(ctx, g.ffmpegPath,
		"-ss", fmt.Sprintf("%d", seconds-clipStart),
		"-i", clipPath,
		"-frames:v", "1",
		"-q:v", "2",
		"-vf", "scale=160:-1",
		imgPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg failed for %s: %w, output: %s", videoID, err, out)
	}

	return imgPath, nil
}

// Prune deletes cached thumbnails and leftover clips older than maxAge.
func (g *Generator) Prune(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, dir := range []string{g.cacheDir, g.tempDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
					removed++
				}
			}
		}
	}

	return removed, nil
}
