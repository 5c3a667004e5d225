package domain

import "context"

// ImageRepository is the persistence contract for published images.
type ImageRepository interface {
	List(ctx context.Context, offset, limit int) ([]PublishedImage, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*PublishedImage, error)
	// SetHearts writes an absolute value. Returns ErrNotFound when the row is gone.
	SetHearts(ctx context.Context, id int64, hearts int64) (*PublishedImage, error)
	Create(ctx context.Context, imageURL, prompt string) (*PublishedImage, error)
}

// PostRepository handles the legacy posts table.
type PostRepository interface {
	Create(ctx context.Context, imageURL, prompt string, userID *string) error
	ListRecent(ctx context.Context, limit int) ([]Post, error)
}

// UserRepository defines access methods for users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

// EventPublisher fans out feed events to other services.
type EventPublisher interface {
	PublishImagePublished(ctx context.Context, image *PublishedImage) error
}
