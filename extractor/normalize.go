package extractor

import (
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// whitespaceRe also matches non-breaking spaces, which &nbsp; decodes to.
var whitespaceRe = regexp.MustCompile(`[\s\x{00A0}]+`)

// DecodeEntities resolves named and numeric character references (&amp;,
// &#39;, &#x27;, ...) and collapses whitespace, leaving any HTML markup in
// place so the link-based extraction strategies can still see it.
func DecodeEntities(text string) string {
	decoded := stdhtml.UnescapeString(text)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(decoded, " "))
}

// StripTags removes HTML markup, keeping only text content. Entity references
// inside text nodes are decoded by the tokenizer. Malformed markup degrades to
// best-effort plain text; there is no error condition.
func StripTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	}

	tok := html.NewTokenizer(strings.NewReader(text))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tok.Text())
		}
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// Normalize turns raw comment text into plain text: entities decoded, tags
// stripped, whitespace collapsed, leading and trailing whitespace trimmed.
func Normalize(text string) string {
	return StripTags(DecodeEntities(text))
}
