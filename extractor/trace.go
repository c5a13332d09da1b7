package extractor

import (
	"log"

	"timejump/internal/models"
)

// Trace receives per-candidate diagnostics during an extraction run. Rejections
// are part of normal operation and are never surfaced to the caller; the trace
// stream is the only place they are visible.
type Trace interface {
	Accepted(strategy models.Strategy, matched string, seconds int)
	Rejected(strategy models.Strategy, matched string, reason string)
	Duplicate(strategy models.Strategy, matched string, seconds int)
	Degraded(reason string, err error)
}

// LogTrace writes trace events through the standard logger.
type LogTrace struct{}

func (LogTrace) Accepted(strategy models.Strategy, matched string, seconds int) {
	log.Printf("accepted %s candidate %q -> %s", strategy, matched, FormatTime(seconds))
}

func (LogTrace) Rejected(strategy models.Strategy, matched string, reason string) {
	log.Printf("rejected %s candidate %q: %s", strategy, matched, reason)
}

func (LogTrace) Duplicate(strategy models.Strategy, matched string, seconds int) {
	log.Printf("duplicate %s candidate %q -> %s already claimed", strategy, matched, FormatTime(seconds))
}

func (LogTrace) Degraded(reason string, err error) {
	log.Printf("warning: %s: %v", reason, err)
}

// NopTrace discards all trace events.
type NopTrace struct{}

func (NopTrace) Accepted(models.Strategy, string, int)    {}
func (NopTrace) Rejected(models.Strategy, string, string) {}
func (NopTrace) Duplicate(models.Strategy, string, int)   {}
func (NopTrace) Degraded(string, error)                   {}
