package extractor

import (
	"strings"
	"testing"
)

// firstCandidate scans source for the first timestamp-shaped substring and
// wraps it as a validation candidate.
func firstCandidate(t *testing.T, source string) candidate {
	t.Helper()
	loc := timestampRe.FindStringIndex(source)
	if loc == nil {
		t.Fatalf("no timestamp pattern in %q", source)
	}
	return parseCandidate(source[loc[0]:loc[1]], loc[0], loc[1], source)
}

func TestParseCandidatePositional(t *testing.T) {
	tests := []struct {
		matched  string
		hasHours bool
		total    int
	}{
		{"12:34", false, 754},
		{"0:10", false, 10},
		{"1:02:03", true, 3723},
		{"10:00:00", true, 36000},
		{"99:59", false, 5999},
	}

	for _, tt := range tests {
		t.Run(tt.matched, func(t *testing.T) {
			c := parseCandidate(tt.matched, 0, len(tt.matched), tt.matched)
			if c.hasHours != tt.hasHours {
				t.Errorf("hasHours = %v, want %v", c.hasHours, tt.hasHours)
			}
			if got := c.totalSeconds(); got != tt.total {
				t.Errorf("totalSeconds() = %d, want %d", got, tt.total)
			}
		})
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		duration int
		accepted bool
	}{
		{"Plain moment accepted", "Great moment at 12:30!", 0, true},
		{"Hour format accepted", "check 1:02:03 for the drop", 0, true},
		{"Seconds field too large", "see 2:60 here", 0, false},
		{"Minutes field too large", "song at 99:59 maybe", 0, false},
		{"Minutes too large despite hours", "1:75:10 is odd", 0, false},
		{"Unrealistic hours", "123:10:10 nope", 0, false},
		{"Zero total", "starts at 0:00 sharp", 0, false},
		{"Within duration ceiling", "drop at 12:30 wow", 800, true},
		{"Beyond duration ceiling", "drop at 12:30 wow", 700, false},
		{"URL parameter context", "clip?x=1&t=90 at 12:30", 0, false},
		{"Web address context", "www.a.com 12:30 here", 0, false},
		{"Date context", "12:30 2023-12-25", 0, false},
		{"Slash date context", "5/6/2023 12:30 party", 0, false},
		{"Clock time context", "around 12:30 PM today", 0, false},
		{"Price ratio phrase", "price is 12:30 vs more", 0, false},
		{"Resolution phrase", "16:09 resolution only", 0, false},
		{"Score phrase", "final score was 3:02 ok", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := firstCandidate(t, tt.source)
			verdict := validate(c, tt.duration)
			if verdict.Accepted != tt.accepted {
				t.Errorf("validate(%q) accepted = %v (reason %q), want %v",
					c.matched, verdict.Accepted, verdict.Reason, tt.accepted)
			}
			if !verdict.Accepted && verdict.Reason == "" {
				t.Error("rejection carries no reason")
			}
		})
	}
}

// A match glued to further digits is a fragment of a longer number, not a
// timestamp.
func TestValidateDigitAdjacency(t *testing.T) {
	source := "id 12:34:56789 end"
	loc := timestampRe.FindStringIndex(source)
	if loc == nil {
		t.Fatal("no match")
	}
	matched := source[loc[0]:loc[1]]
	if matched != "12:34:56" {
		t.Fatalf("scanned %q, want %q", matched, "12:34:56")
	}

	c := parseCandidate(matched, loc[0], loc[1], source)
	verdict := validate(c, 0)
	if verdict.Accepted {
		t.Error("digit-adjacent match was accepted")
	}
	if !strings.Contains(verdict.Reason, "digit") {
		t.Errorf("unexpected reason %q", verdict.Reason)
	}
}

// Both sides of a ratio sentence must be rejected by the phrase rule.
func TestValidateRatioPhraseBothSides(t *testing.T) {
	source := "price is 12:30 vs 45:00 ratio"
	for i, loc := range timestampRe.FindAllStringIndex(source, -1) {
		c := parseCandidate(source[loc[0]:loc[1]], loc[0], loc[1], source)
		if verdict := validate(c, 0); verdict.Accepted {
			t.Errorf("match %d (%q) was accepted, want phrase rejection", i, c.matched)
		}
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		duration int
		accepted bool
	}{
		{"Positive in range", 90, 0, true},
		{"Zero", 0, 0, false},
		{"Full day", 86400, 0, false},
		{"Under ceiling", 90, 100, true},
		{"Over ceiling", 101, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := validateBounds(tt.total, tt.duration)
			if verdict.Accepted != tt.accepted {
				t.Errorf("validateBounds(%d, %d) accepted = %v, want %v",
					tt.total, tt.duration, verdict.Accepted, tt.accepted)
			}
		})
	}
}
