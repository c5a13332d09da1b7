// Package extractor scans noisy user-authored text for timestamp references,
// filters out look-alikes such as prices, ratios, dates and URL parameters,
// and turns what survives into an ordered, deduplicated list of chapter
// markers with human-readable captions.
package extractor

import (
	"context"
	"fmt"
	"time"

	"timejump/internal/models"
)

// CommentSource yields comment pages for a video, one page at a time. Any
// fetch failure is fatal for the whole extraction run; the engine never
// retries.
type CommentSource interface {
	FetchCommentPage(ctx context.Context, videoID, pageToken string) (*models.CommentPage, error)
}

// DurationProvider reports a video's length in seconds. A failed lookup only
// disables the duration ceiling, it does not abort extraction.
type DurationProvider interface {
	VideoDuration(ctx context.Context, videoID string) (int, error)
}

// Options bound an extraction run. Zero values take the defaults below.
type Options struct {
	MaxComments    int           // cap on total comments processed per run
	PagePause      time.Duration // pause between successful page fetches
	APIDedupGap    int           // seconds; dedup gap for comment-sourced text
	ManualDedupGap int           // seconds; dedup gap for pasted text
}

const (
	defaultMaxComments    = 500
	defaultPagePause      = 100 * time.Millisecond
	defaultAPIDedupGap    = 3
	defaultManualDedupGap = 5
)

func (o Options) withDefaults() Options {
	if o.MaxComments <= 0 {
		o.MaxComments = defaultMaxComments
	}
	if o.PagePause <= 0 {
		o.PagePause = defaultPagePause
	}
	if o.APIDedupGap <= 0 {
		o.APIDedupGap = defaultAPIDedupGap
	}
	if o.ManualDedupGap <= 0 {
		o.ManualDedupGap = defaultManualDedupGap
	}
	return o
}

// Engine is the timestamp extraction pipeline. It is stateless across calls;
// everything accumulated during a run lives in a per-call session.
type Engine struct {
	source    CommentSource
	durations DurationProvider
	opts      Options
	trace     Trace
}

// New creates an engine. source may be nil for manual-only use; durations and
// trace may be nil.
func New(source CommentSource, durations DurationProvider, opts Options, trace Trace) *Engine {
	if trace == nil {
		trace = NopTrace{}
	}
	return &Engine{
		source:    source,
		durations: durations,
		opts:      opts.withDefaults(),
		trace:     trace,
	}
}

// Extract walks the video's comments page by page and returns the ordered,
// deduplicated chapter markers found in them. An empty result is a valid,
// non-error outcome. The first page-fetch failure aborts the run with no
// partial result.
func (e *Engine) Extract(ctx context.Context, videoID string) ([]models.TimestampEntry, error) {
	if e.source == nil {
		return nil, fmt.Errorf("no comment source configured")
	}

	s := newSession(0)
	if e.durations != nil {
		duration, err := e.durations.VideoDuration(ctx, videoID)
		if err != nil {
			e.trace.Degraded("video duration unavailable, ceiling disabled", err)
		} else {
			s.duration = duration
		}
	}

	pageToken := ""
	processed := 0
	for {
		page, err := e.source.FetchCommentPage(ctx, videoID, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comment page for %s: %w", videoID, err)
		}
		if page == nil {
			// Malformed response; nothing to process and no token to follow.
			break
		}

		for _, comment := range page.Items {
			e.extractFromComment(s, comment.Text)
		}
		processed += len(page.Items)

		pageToken = page.NextPageToken
		if pageToken == "" || processed >= e.opts.MaxComments {
			break
		}

		// Self-imposed rate limit against the comment source.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.opts.PagePause):
		}
	}

	return s.entries(e.opts.APIDedupGap), nil
}
