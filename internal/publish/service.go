// Package publish turns generated images into feed entries and legacy posts.
package publish

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"promptfeed/internal/domain"
)

type Service struct {
	images domain.ImageRepository
	events domain.EventPublisher
	logger zerolog.Logger
}

func NewService(images domain.ImageRepository, events domain.EventPublisher, logger zerolog.Logger) *Service {
	return &Service{images: images, events: events, logger: logger}
}

// Publish stores a new feed entry with zero hearts. Event delivery is best effort
// and never fails the call.
func (s *Service) Publish(ctx context.Context, in PublishInput) (*domain.PublishedImage, error) {
	img, err := s.images.Create(ctx, in.ImageURL, in.Prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}
	if s.events != nil {
		if err := s.events.PublishImagePublished(ctx, img); err != nil {
			s.logger.Warn().Err(err).Int64("image_id", img.ID).Msg("image.published event not delivered")
		}
	}
	return img, nil
}
