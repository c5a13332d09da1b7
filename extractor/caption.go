package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	captionWindow   = 80  // bytes of context taken on each side of a match
	captionMaxLen   = 150 // runes
	listModeMin     = 4   // timestamp mentions at which a comment counts as a list
	defaultCaption  = "Timestamp"
	headFallbackLen = 150
)

var (
	httpURLRe     = regexp.MustCompile(`https?://\S+`)
	wwwURLRe      = regexp.MustCompile(`www\.\S+`)
	youtubeHostRe = regexp.MustCompile(`youtu(?:be\.com|\.be)\S*`)
	watchParamRe  = regexp.MustCompile(`watch\?v=\S*`)
	timeParamRe   = regexp.MustCompile(`&t=\d+s?`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	edgePunctRe   = regexp.MustCompile(`^\W+|\W+$`)
)

// deriveCaption produces a human-readable caption for an accepted match at
// byte offset [start,end) within text. Comments carrying more than three
// timestamp-shaped substrings are treated as chapter lists and share one
// caption; otherwise nearby text is used with fallbacks to the head of the
// comment.
func deriveCaption(text, matched string, start int) string {
	var caption string

	mentions := timestampRe.FindAllStringIndex(text, -1)
	if len(mentions) >= listModeMin {
		caption = listCaption(text, mentions)
	} else {
		caption = windowCaption(text, matched, start)
	}

	return finalizeCaption(caption)
}

// listCaption prefers the text before the first timestamp in the comment,
// falling back to the text after the last one, then to a synthesized label.
func listCaption(text string, mentions [][]int) string {
	lead := strings.TrimSpace(text[:mentions[0][0]])
	if utf8.RuneCountInString(lead) > 3 {
		return lead
	}

	last := mentions[len(mentions)-1]
	tail := strings.TrimSpace(text[last[1]:])
	if utf8.RuneCountInString(tail) > 3 {
		return tail
	}

	return fmt.Sprintf("Timestamp from list of %d timestamps", len(mentions))
}

// windowCaption takes up to captionWindow bytes on each side of the match,
// strips other timestamp-shaped substrings, and falls back to the head of the
// whole comment when too little text remains.
func windowCaption(text, matched string, start int) string {
	end := start + len(matched)
	before := strings.TrimSpace(text[clampRuneStart(text, start-captionWindow):start])
	after := strings.TrimSpace(text[end:clampRuneStart(text, end+captionWindow)])

	surrounding := strings.TrimSpace(before + " " + after)
	surrounding = strings.TrimSpace(timestampRe.ReplaceAllString(surrounding, " "))
	if utf8.RuneCountInString(surrounding) > 5 {
		return surrounding
	}

	head := strings.TrimSpace(text[:clampRuneStart(text, headFallbackLen)])
	return strings.TrimSpace(timestampRe.ReplaceAllString(head, " "))
}

// finalizeCaption decodes, cleans and bounds a caption candidate. An empty
// result defaults to the literal "Timestamp".
func finalizeCaption(caption string) string {
	caption = DecodeEntities(caption)
	caption = cleanCaptionText(caption)
	caption = edgePunctRe.ReplaceAllString(caption, "")
	caption = strings.TrimSpace(whitespaceRe.ReplaceAllString(caption, " "))
	caption = truncateRunes(caption, captionMaxLen)
	if caption == "" {
		return defaultCaption
	}
	return caption
}

// cleanCaptionText removes URLs, watch-page query fragments and HTML markup.
func cleanCaptionText(text string) string {
	cleaned := httpURLRe.ReplaceAllString(text, "")
	cleaned = wwwURLRe.ReplaceAllString(cleaned, "")
	cleaned = youtubeHostRe.ReplaceAllString(cleaned, "")
	cleaned = watchParamRe.ReplaceAllString(cleaned, "")
	cleaned = timeParamRe.ReplaceAllString(cleaned, "")
	cleaned = htmlTagRe.ReplaceAllString(cleaned, "")
	cleaned = strings.NewReplacer("<", "", ">", "").Replace(cleaned)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}
