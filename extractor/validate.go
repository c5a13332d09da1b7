package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"timejump/internal/models"
)

// candidate is a free-text timestamp match before validation.
type candidate struct {
	matched  string
	hours    int
	minutes  int
	seconds  int
	hasHours bool
	start    int // byte offset of the match in source
	end      int
	source   string // full comment text the match came from
}

// Context window sizes around a match, in bytes. The URL and date checks look
// at contextChars on each side; the ratio-phrase check uses the wider window.
const (
	contextChars = 10
	phraseChars  = 20
)

var (
	urlContextRe  = regexp.MustCompile(`(?i)https?://\S*|www\.\S*|youtube\.com\S*|t=\d+`)
	dateContextRe = regexp.MustCompile(`(?i)\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{4}|\b(?:am|pm)\b`)

	// Quantities read as "something per something", not as moments in time.
	ratioPhraseRe = regexp.MustCompile(`(?:price|cost|ratio|score).*\d+:\d+|\d+:\d+.*resolution|resolution.*\d+:\d+`)
)

// parseCandidate splits a matched H:MM:SS or MM:SS string positionally: three
// parts mean hours:minutes:seconds, two mean minutes:seconds.
func parseCandidate(matched string, start, end int, source string) candidate {
	c := candidate{matched: matched, start: start, end: end, source: source}

	parts := strings.Split(matched, ":")
	switch len(parts) {
	case 3:
		c.hasHours = true
		c.hours, _ = strconv.Atoi(parts[0])
		c.minutes, _ = strconv.Atoi(parts[1])
		c.seconds, _ = strconv.Atoi(parts[2])
	case 2:
		c.minutes, _ = strconv.Atoi(parts[0])
		c.seconds, _ = strconv.Atoi(parts[1])
	}
	return c
}

// totalSeconds computes the candidate's value from its positional fields,
// before any validity judgment.
func (c candidate) totalSeconds() int {
	return c.hours*3600 + c.minutes*60 + c.seconds
}

// validate runs the acceptance rules in order and rejects at the first
// failure. duration of 0 disables the video-length ceiling.
func validate(c candidate, duration int) models.Verdict {
	if c.seconds >= 60 {
		return reject("seconds field out of range: %d", c.seconds)
	}
	// Minutes are a sub-hour field in every matched format, so 60 or more is
	// invalid whether or not an hours field is present.
	if c.minutes >= 60 {
		return reject("minutes field out of range: %d", c.minutes)
	}
	if c.hasHours && c.hours >= 100 {
		return reject("unrealistic hours field: %d", c.hours)
	}

	total := c.totalSeconds()
	if total <= 0 || total >= 86400 {
		return reject("total duration out of range: %ds", total)
	}
	if duration > 0 && total > duration {
		return reject("beyond video duration: %s > %s", FormatTime(total), FormatTime(duration))
	}

	window := contextWindow(c.source, c.start, c.end, contextChars)
	if urlContextRe.MatchString(window) {
		return reject("part of a URL: %q", window)
	}
	if dateContextRe.MatchString(window) {
		return reject("part of a date or clock time: %q", window)
	}

	if digitAdjacent(c.source, c.start, c.end) {
		return reject("adjacent to another digit, fragment of a longer number")
	}

	phrase := strings.ToLower(contextWindow(c.source, c.start, c.end, phraseChars))
	if ratioPhraseRe.MatchString(phrase) {
		return reject("non-temporal ratio phrase nearby: %q", phrase)
	}

	return models.Verdict{
		Accepted: true,
		Reason:   fmt.Sprintf("valid %s -> %s", c.detectedFormat(), FormatTime(total)),
	}
}

// validateBounds is the lighter check applied to URL-derived candidates. A
// link target is authoritative evidence, so only the range and duration
// ceiling apply.
func validateBounds(total, duration int) models.Verdict {
	if total <= 0 || total >= 86400 {
		return reject("total duration out of range: %ds", total)
	}
	if duration > 0 && total > duration {
		return reject("beyond video duration: %s > %s", FormatTime(total), FormatTime(duration))
	}
	return models.Verdict{Accepted: true}
}

func (c candidate) detectedFormat() string {
	if c.hasHours {
		return "H:MM:SS"
	}
	return "MM:SS"
}

func reject(format string, args ...any) models.Verdict {
	return models.Verdict{Accepted: false, Reason: fmt.Sprintf(format, args...)}
}

// contextWindow returns the match plus up to n bytes on each side, clamped to
// rune boundaries.
func contextWindow(text string, start, end, n int) string {
	lo := clampRuneStart(text, start-n)
	hi := clampRuneStart(text, end+n)
	return text[lo:hi]
}

func clampRuneStart(text string, i int) int {
	if i < 0 {
		return 0
	}
	if i > len(text) {
		return len(text)
	}
	for i > 0 && i < len(text) && !isRuneStart(text[i]) {
		i--
	}
	return i
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func digitAdjacent(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return true
	}
	if end < len(text) && isDigit(text[end]) {
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
