package domain

import "time"

const (
	DefaultFeedPage  = 1
	DefaultFeedLimit = 10
	MaxFeedLimit     = 50
)

// PublishedImage is a generated image shared to the community feed.
// Only Hearts changes after creation.
type PublishedImage struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	Hearts    int64     `json:"hearts"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedPage is one page of the feed plus pagination metadata.
type FeedPage struct {
	Images     []PublishedImage `json:"images"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int64            `json:"totalPages"`
}
