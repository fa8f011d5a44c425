package models

import "time"

// NewsItem is a single headline selected from a news source, with hashtags attached.
type NewsItem struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SourceURL   string    `json:"source_url"`
	PublishedAt time.Time `json:"published_at"`
	Topics      string    `json:"topics"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Valid reports whether the item can be used to generate a post.
func (n NewsItem) Valid() bool {
	return n.Title != "" && n.Description != "" && n.Title != "[Removed]"
}

// GeneratedPost holds model output before and after sanitizing.
type GeneratedPost struct {
	RawText   string `json:"raw_text"`
	CleanText string `json:"clean_text"`
}

// PostReceipt is the posting backend's confirmation.
type PostReceipt struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"posted_at"`
}
