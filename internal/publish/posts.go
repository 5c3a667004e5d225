package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"promptfeed/internal/domain"
)

var (
	// ErrPostSaveFailed and ErrPostListFailed wrap store failures of the posts table.
	ErrPostSaveFailed = errors.New("save post failed")
	ErrPostListFailed = errors.New("list posts failed")
)

// PostService backs the older posts gallery that predates the feed.
type PostService struct {
	posts domain.PostRepository
}

func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Save stores a post. userID is nil for anonymous callers.
func (s *PostService) Save(ctx context.Context, imageURL, prompt string, userID *string) error {
	if strings.TrimSpace(imageURL) == "" || strings.TrimSpace(prompt) == "" {
		return &domain.ValidationError{Field: "imageUrl", Kind: domain.KindMissing, Message: "Image URL and prompt are required"}
	}
	if err := s.posts.Create(ctx, imageURL, prompt, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrPostSaveFailed, err)
	}
	return nil
}

// Recent returns the latest posts, newest first.
func (s *PostService) Recent(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.ListRecent(ctx, domain.RecentPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostListFailed, err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}
