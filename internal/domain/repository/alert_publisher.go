package repository

import (
	"context"

	"github.com/nuclralert-dashboard/internal/domain"
)

// AlertPublisher доставляет уведомления о тревогах во внешний канал
type AlertPublisher interface {
	PublishAlert(ctx context.Context, event *domain.AlertEvent) error
	Close() error
}
