package extractor

import "testing"

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain text", "nothing to decode", "nothing to decode"},
		{"Named entities", "fish &amp; chips &lt;3", "fish & chips <3"},
		{"Quotes", "&quot;hi&quot; it&#39;s &#x27;fine&#x27;", `"hi" it's 'fine'`},
		{"Non-breaking space", "a&nbsp;b", "a b"},
		{"Decimal reference", "caf&#233;", "café"},
		{"Markup survives decoding", `&lt;a href=&quot;x&quot;&gt;go&lt;/a&gt;`, `<a href="x">go</a>`},
		{"Whitespace collapsed", "a \n\t b   c", "a b c"},
		{"Trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.input); got != tt.expected {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"No markup", "just words", "just words"},
		{"Simple tags", "<b>Intro</b> at 0:30", "Intro at 0:30"},
		{"Anchor", `watch <a href="https://youtube.com/watch?v=x&t=90">1:30</a> here`, "watch 1:30 here"},
		{"Line break tag", "first<br>second", "firstsecond"},
		{"Entities inside text nodes", "<i>fish &amp; chips</i>", "fish & chips"},
		{"Malformed markup degrades", "<i>oops", "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.expected {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Encoded markup is stripped", "Check &lt;b&gt;this&lt;/b&gt; out", "Check this out"},
		{"Entities and whitespace", "one&nbsp;&nbsp;two\n three", "one two three"},
		{"Plain passthrough", "Great moment at 12:30!", "Great moment at 12:30!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
