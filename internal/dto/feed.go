package dto

import "time"

// FeedItem is one entry of a parsed RSS/Atom feed.
type FeedItem struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published,omitempty"`
	Summary   string     `json:"summary,omitempty"`
}

// FeedResponse is the parsed feed listing.
type FeedResponse struct {
	Title string     `json:"title"`
	Items []FeedItem `json:"items"`
}
