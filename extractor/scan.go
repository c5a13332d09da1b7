package extractor

import (
	"regexp"
	"strconv"

	"timejump/internal/models"
)

// The three strategy grammars, in priority order. Anchor links shadow direct
// URLs, which shadow free-text matches: once a seconds value is claimed it is
// never re-derived by a lower-priority strategy.
var (
	// <a href="...youtube.com/watch?...&t=SECONDS...">link text</a>
	anchorLinkRe = regexp.MustCompile(`(?i)<a\s+href="([^"]*youtube\.com/watch\?[^"]*&t=(\d+)[^"]*)"[^>]*>([^<]*)</a>`)
	anchorTagRe  = regexp.MustCompile(`(?is)<a[^>]*>.*?</a>`)

	// Bare watch or short-link URLs carrying a t=SECONDS query parameter.
	directURLRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[a-zA-Z0-9_-]+(?:&[^&\s]*)*&t=(\d+)s?(?:&[^&\s]*)*|(?:https?://)?youtu\.be/[a-zA-Z0-9_-]+\?t=(\d+)s?`)

	watchURLRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtube\.com/watch\?\S+|(?:https?://)?youtu\.be/\S+`)

	// Bare H:MM:SS / HH:MM:SS / MM:SS patterns in prose.
	timestampRe = regexp.MustCompile(`(\d{1,3}):(\d{2})(?::(\d{2}))?`)
)

// extractFromComment runs all three strategies over one comment. The text is
// entity-decoded up front; the free-text pass additionally strips markup so
// prose offsets line up with what a reader sees.
func (e *Engine) extractFromComment(s *session, raw string) {
	decoded := DecodeEntities(raw)
	e.scanAnchorLinks(s, decoded)
	e.scanDirectURLs(s, decoded)
	e.scanFreeText(s, StripTags(decoded))
}

// scanAnchorLinks captures timestamps embedded in hyperlink targets. A link is
// authoritative evidence, so only the bounds check applies. The visible link
// text serves as a caption fallback once the anchor markup is removed from the
// comment.
func (e *Engine) scanAnchorLinks(s *session, text string) {
	for _, m := range anchorLinkRe.FindAllStringSubmatch(text, -1) {
		seconds, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		if verdict := validateBounds(seconds, s.duration); !verdict.Accepted {
			e.trace.Rejected(models.StrategyAnchorLink, m[0], verdict.Reason)
			continue
		}
		if s.claimed(seconds) {
			e.trace.Duplicate(models.StrategyAnchorLink, m[0], seconds)
			continue
		}

		linkText := m[3]
		if linkText == "" {
			linkText = FormatTime(seconds)
		}

		residue := anchorTagRe.ReplaceAllString(text, "")
		caption := finalizeCaption(residue)
		if caption == defaultCaption {
			caption = "Link to " + linkText
		}

		s.claim(seconds, caption)
		e.trace.Accepted(models.StrategyAnchorLink, m[0], seconds)
	}
}

// scanDirectURLs captures timestamps from bare watch or short-link URLs
// outside anchor markup. The caption is derived from the comment with the URL
// substrings removed.
func (e *Engine) scanDirectURLs(s *session, text string) {
	for _, m := range directURLRe.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}

		if s.claimed(seconds) {
			e.trace.Duplicate(models.StrategyDirectURL, m[0], seconds)
			continue
		}
		if verdict := validateBounds(seconds, s.duration); !verdict.Accepted {
			e.trace.Rejected(models.StrategyDirectURL, m[0], verdict.Reason)
			continue
		}

		residue := watchURLRe.ReplaceAllString(text, "")
		caption := finalizeCaption(residue)
		if caption == defaultCaption {
			caption = "URL timestamp " + FormatTime(seconds)
		}

		s.claim(seconds, caption)
		e.trace.Accepted(models.StrategyDirectURL, m[0], seconds)
	}
}

// scanFreeText captures bare H:MM:SS / MM:SS patterns in prose and runs each
// through the full validation battery. Seconds values already claimed by a
// link strategy are skipped without re-validation.
func (e *Engine) scanFreeText(s *session, text string) {
	for _, loc := range timestampRe.FindAllStringIndex(text, -1) {
		matched := text[loc[0]:loc[1]]
		c := parseCandidate(matched, loc[0], loc[1], text)

		total := c.totalSeconds()
		if s.claimed(total) {
			e.trace.Duplicate(models.StrategyFreeText, matched, total)
			continue
		}

		if verdict := validate(c, s.duration); !verdict.Accepted {
			e.trace.Rejected(models.StrategyFreeText, matched, verdict.Reason)
			continue
		}

		caption := deriveCaption(text, matched, loc[0])
		s.claim(total, caption)
		e.trace.Accepted(models.StrategyFreeText, matched, total)
	}
}
