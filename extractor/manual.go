package extractor

import (
	"strings"

	"timejump/internal/models"
)

// ParseManual runs the simplified pipeline over directly pasted plaintext,
// one timestamp scan per line. Pasted text is trusted input: the context,
// adjacency and phrase heuristics do not apply, only a positive total and the
// optional duration ceiling (0 disables it). Results get the wider manual
// dedup gap.
func (e *Engine) ParseManual(text string, duration int) []models.TimestampEntry {
	s := newSession(duration)

	for _, line := range strings.Split(text, "\n") {
		for _, loc := range timestampRe.FindAllStringIndex(line, -1) {
			matched := line[loc[0]:loc[1]]
			c := parseCandidate(matched, loc[0], loc[1], line)

			total := c.totalSeconds()
			if total <= 0 {
				continue
			}
			if duration > 0 && total > duration {
				e.trace.Rejected(models.StrategyManual, matched, "beyond video duration")
				continue
			}
			if s.claimed(total) {
				e.trace.Duplicate(models.StrategyManual, matched, total)
				continue
			}

			caption := deriveCaption(line, matched, loc[0])
			s.claim(total, caption)
			e.trace.Accepted(models.StrategyManual, matched, total)
		}
	}

	return s.entries(e.opts.ManualDedupGap)
}
