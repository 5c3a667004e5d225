package domain

import "time"

// RecentPostsLimit caps the legacy posts listing.
const RecentPostsLimit = 50

// Post is a saved generation from the legacy posts table.
type Post struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"image_url"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
	UserID    *string   `json:"user_id"`
}
