package models

// Strategy identifies which extraction pass produced a timestamp candidate.
// Strategies run in declaration order; a seconds value claimed by an earlier
// strategy is never re-derived by a later one.
type Strategy int

const (
	StrategyAnchorLink Strategy = iota
	StrategyDirectURL
	StrategyFreeText
	StrategyManual
)

func (s Strategy) String() string {
	switch s {
	case StrategyAnchorLink:
		return "anchor-link"
	case StrategyDirectURL:
		return "direct-url"
	case StrategyFreeText:
		return "free-text"
	case StrategyManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Verdict is the result of validating a single timestamp candidate.
// A rejection is not an error; the reason exists for diagnostics only.
type Verdict struct {
	Accepted bool
	Reason   string
}

// TimestampEntry is one chapter marker returned to the caller. Entries in an
// extraction result are unique by Seconds and sorted strictly ascending.
type TimestampEntry struct {
	Seconds   int    `json:"seconds"`
	Timestamp string `json:"timestamp"`
	Caption   string `json:"caption"`
}
