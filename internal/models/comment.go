package models

// RawComment is a single comment as returned by the comment source. The text
// may contain HTML markup and entity-encoded characters.
type RawComment struct {
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
}

// CommentPage is one page of comments plus the token for the next page.
// An empty NextPageToken means the source is exhausted.
type CommentPage struct {
	Items         []RawComment `json:"items"`
	NextPageToken string       `json:"next_page_token"`
}
