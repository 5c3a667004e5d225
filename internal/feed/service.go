// Package feed serves the paginated community feed and the hearts counter.
package feed

import (
	"context"
	"errors"
	"fmt"

	"promptfeed/internal/domain"
)

type Service struct {
	images domain.ImageRepository
}

func NewService(images domain.ImageRepository) *Service {
	return &Service{images: images}
}

// ListFeed returns one page of published images, newest first, with the total
// count used to derive TotalPages. The page and the count are two separate reads.
func (s *Service) ListFeed(ctx context.Context, params FeedParams) (*domain.FeedPage, error) {
	var images []domain.PublishedImage
	if params.Addressable() {
		var err error
		images, err = s.images.List(ctx, params.Offset(), params.Limit)
		if err != nil {
			return nil, fmt.Errorf("%w: list: %v", domain.ErrFeedUnavailable, err)
		}
	}
	total, err := s.images.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count: %v", domain.ErrFeedUnavailable, err)
	}
	if images == nil {
		images = []domain.PublishedImage{}
	}
	return &domain.FeedPage{
		Images:     images,
		Total:      total,
		Page:       params.Page,
		TotalPages: TotalPages(total, params.Limit),
	}, nil
}

// TotalPages is ceil(total/limit), zero for an empty feed.
func TotalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

// UpdateHearts overwrites the hearts counter of an existing image. The value is
// absolute; concurrent callers race and the last write wins.
func (s *Service) UpdateHearts(ctx context.Context, req HeartsUpdate) (*domain.PublishedImage, error) {
	if _, err := s.images.FindByID(ctx, req.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("image", req.ID)
		}
		return nil, fmt.Errorf("%w: find image %d: %v", domain.ErrUpdateFailed, req.ID, err)
	}

	img, err := s.images.SetHearts(ctx, req.ID, req.Hearts)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("image", req.ID)
		}
		return nil, fmt.Errorf("%w: set hearts on image %d: %v", domain.ErrUpdateFailed, req.ID, err)
	}
	return img, nil
}
