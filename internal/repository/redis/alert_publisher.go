package redis

import (
	"context"

	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
)

type alertPublisher struct {
	streams repository.StreamRepository
	stream  string
}

// NewAlertPublisher публикует тревоги в Redis Stream (поле "data" с JSON события)
func NewAlertPublisher(streams repository.StreamRepository, stream string) repository.AlertPublisher {
	if stream == "" {
		stream = domain.StreamAlerts
	}
	return &alertPublisher{streams: streams, stream: stream}
}

func (p *alertPublisher) PublishAlert(ctx context.Context, event *domain.AlertEvent) error {
	return p.streams.PublishToStream(ctx, p.stream, event)
}

// Close ничего не делает: соединением владеет cache.Redis
func (p *alertPublisher) Close() error {
	return nil
}
