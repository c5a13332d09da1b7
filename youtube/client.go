// Package youtube implements the comment source and video metadata provider
// on top of the YouTube Data API v3.
package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"timejump/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const defaultPageSize = 50

type Client struct {
	service  *youtube.Service
	pageSize int64
}

// NewClient creates an API-key authenticated client. Comment threads and
// video metadata are public data, so no OAuth flow is involved.
func NewClient(ctx context.Context, apiKey string, pageSize int64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	return &Client{service: service, pageSize: pageSize}, nil
}

// FetchCommentPage returns one page of top-level comments for a video. An
// empty pageToken requests the first page. Comment text is returned in the
// API's HTML form; decoding is the extraction pipeline's job.
func (c *Client) FetchCommentPage(ctx context.Context, videoID, pageToken string) (*models.CommentPage, error) {
	call := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		TextFormat("html").
		MaxResults(c.pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list comment threads for %s: %w", videoID, err)
	}

	page := &models.CommentPage{NextPageToken: response.NextPageToken}
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		snippet := item.Snippet.TopLevelComment.Snippet
		page.Items = append(page.Items, models.RawComment{
			AuthorName: snippet.AuthorDisplayName,
			Text:       snippet.TextDisplay,
		})
	}

	return page, nil
}

// GetVideo fetches title, duration, view count and age restriction for a
// video.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	response, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", videoID, err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := response.Items[0]
	video := &models.Video{
		ID:           item.Id,
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
	}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
	}
	if item.ContentDetails != nil {
		video.DurationSeconds = parseDurationSeconds(item.ContentDetails.Duration)
		if item.ContentDetails.ContentRating != nil && item.ContentDetails.ContentRating.YtRating == "ytAgeRestricted" {
			video.AgeRestricted = true
		}
	}
	if item.Statistics != nil {
		video.Views = int64(item.Statistics.ViewCount)
	}

	return video, nil
}

// VideoDuration implements the extraction engine's duration provider.
func (c *Client) VideoDuration(ctx context.Context, videoID string) (int, error) {
	video, err := c.GetVideo(ctx, videoID)
	if err != nil {
		return 0, err
	}
	return video.DurationSeconds, nil
}

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDurationSeconds converts an ISO 8601 duration (e.g. "PT1H2M10S") to
// total seconds. Unparseable input yields 0.
func parseDurationSeconds(duration string) int {
	if duration == "" {
		return 0
	}

	matches := isoDurationRe.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var totalSeconds int

	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			totalSeconds += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			totalSeconds += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			totalSeconds += seconds
		}
	}

	return totalSeconds
}
