package extractor

import (
	"sort"

	"timejump/internal/models"
)

// session holds all state accumulated during one extraction run: the video
// duration ceiling and the seconds-keyed caption map. It is created at the
// start of a call and discarded at the end, so the engine itself carries no
// cross-call state and can be shared between videos.
type session struct {
	duration int // seconds; 0 disables the duration ceiling
	captions map[int]string
}

func newSession(duration int) *session {
	return &session{
		duration: duration,
		captions: make(map[int]string),
	}
}

// claim records a caption for a seconds value. The first strategy to claim a
// value wins; a later claim for the same value is refused.
func (s *session) claim(seconds int, caption string) bool {
	if _, ok := s.captions[seconds]; ok {
		return false
	}
	s.captions[seconds] = caption
	return true
}

func (s *session) claimed(seconds int) bool {
	_, ok := s.captions[seconds]
	return ok
}

// entries sorts the claimed seconds ascending and applies the greedy
// left-to-right gap dedup: an entry is kept only if it is the first, or lies
// at least gap seconds after the previously kept entry. Near-duplicates
// within the gap of a kept entry are dropped even when a later entry sits
// closer; this is greedy suppression, not clustering.
func (s *session) entries(gap int) []models.TimestampEntry {
	keys := make([]int, 0, len(s.captions))
	for seconds := range s.captions {
		keys = append(keys, seconds)
	}
	sort.Ints(keys)

	entries := make([]models.TimestampEntry, 0, len(keys))
	lastKept := -gap
	for i, seconds := range keys {
		if i > 0 && seconds-lastKept < gap {
			continue
		}
		entries = append(entries, models.TimestampEntry{
			Seconds:   seconds,
			Timestamp: FormatTime(seconds),
			Caption:   s.captions[seconds],
		})
		lastKept = seconds
	}
	return entries
}
