// Package events publishes domain events to NATS.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"promptfeed/internal/domain"
)

const SubjectImagePublished = "image.published"

// ImagePublishedEvent is the payload on SubjectImagePublished.
type ImagePublishedEvent struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

type NATSPublisher struct {
	nc     *nats.Conn
	logger zerolog.Logger
}

// Connect dials url with reconnects enabled and returns a publisher bound to the connection.
func Connect(url string, logger zerolog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("promptfeed"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return NewNATSPublisher(nc, logger), nil
}

func NewNATSPublisher(nc *nats.Conn, logger zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, logger: logger}
}

func (p *NATSPublisher) PublishImagePublished(_ context.Context, img *domain.PublishedImage) error {
	if p == nil || p.nc == nil {
		return errors.New("nats publisher not connected")
	}
	msg, err := newImagePublishedMsg(img)
	if err != nil {
		return err
	}
	p.logger.Debug().Str("subject", msg.Subject).Int64("image_id", img.ID).Msg("publishing event")
	return p.nc.PublishMsg(msg)
}

// Close drains pending messages before closing the connection.
func (p *NATSPublisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("nats drain failed")
	}
}

func newImagePublishedMsg(img *domain.PublishedImage) (*nats.Msg, error) {
	if img == nil {
		return nil, errors.New("image is required")
	}
	data, err := json.Marshal(ImagePublishedEvent{
		ID:        img.ID,
		ImageURL:  img.ImageURL,
		Prompt:    img.Prompt,
		CreatedAt: img.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return &nats.Msg{Subject: SubjectImagePublished, Data: data, Header: nats.Header{}}, nil
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishImagePublished(context.Context, *domain.PublishedImage) error { return nil }

var (
	_ domain.EventPublisher = (*NATSPublisher)(nil)
	_ domain.EventPublisher = Noop{}
)
