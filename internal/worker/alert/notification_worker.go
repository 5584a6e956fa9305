package alert

import (
	"context"
	"time"

	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	"github.com/nuclralert-dashboard/internal/observability"
	"github.com/nuclralert-dashboard/internal/worker"
	"go.uber.org/zap"
)

const (
	publishTimeout = 5 * time.Second  // таймаут одной публикации
	drainTimeout   = 10 * time.Second // сколько дочищаем очередь при остановке
)

// NotificationWorker доставляет тревоги дашборда во внешний канал (Redis Stream или Kafka).
// Запросы кладут события в ограниченную очередь и не ждут публикации.
type NotificationWorker struct {
	*worker.BaseWorker
	publisher repository.AlertPublisher
	queue     chan *domain.AlertEvent
	metrics   *observability.Metrics
}

// NewNotificationWorker создает воркер с очередью на queueSize событий
func NewNotificationWorker(
	publisher repository.AlertPublisher,
	queueSize int,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationWorker{
		BaseWorker: worker.NewBaseWorker("alert-notification", logger),
		publisher:  publisher,
		queue:      make(chan *domain.AlertEvent, queueSize),
		metrics:    metrics,
	}
}

// Enqueue ставит событие в очередь. При полной очереди событие отбрасывается.
func (w *NotificationWorker) Enqueue(event *domain.AlertEvent) bool {
	if w.IsStopped() {
		w.record(event, "dropped")
		return false
	}

	select {
	case w.queue <- event:
		w.setDepth()
		return true
	default:
		w.Logger().Warn("Alert queue is full, dropping event",
			zap.String("alert_id", event.ID.String()),
			zap.String("level", string(event.Level)))
		w.record(event, "dropped")
		return false
	}
}

// Start публикует события из очереди до остановки воркера
func (w *NotificationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting alert notification worker", zap.Int("queue_size", cap(w.queue)))

	for {
		select {
		case <-w.StopChan():
			w.drain()
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			w.drain()
			logger.Info("Context cancelled")
			return ctx.Err()

		case event := <-w.queue:
			w.setDepth()
			w.publish(ctx, event)
		}
	}
}

func (w *NotificationWorker) publish(ctx context.Context, event *domain.AlertEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := w.publisher.PublishAlert(pubCtx, event); err != nil {
		w.Logger().Error("Failed to publish alert",
			zap.String("alert_id", event.ID.String()),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		w.record(event, "failed")
		return
	}

	w.Logger().Debug("Alert published",
		zap.String("alert_id", event.ID.String()),
		zap.String("level", string(event.Level)))
	w.record(event, "published")
}

// drain публикует то, что осталось в очереди, не дольше drainTimeout
func (w *NotificationWorker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-w.queue:
			w.setDepth()
			w.publish(ctx, event)
		default:
			if err := w.publisher.Close(); err != nil {
				w.Logger().Warn("Failed to close alert publisher", zap.Error(err))
			}
			return
		}
	}
}

func (w *NotificationWorker) record(event *domain.AlertEvent, outcome string) {
	if w.metrics == nil {
		return
	}
	w.metrics.AlertsPublished.WithLabelValues(string(event.Level), outcome).Inc()
}

func (w *NotificationWorker) setDepth() {
	if w.metrics == nil {
		return
	}
	w.metrics.AlertQueueDepth.Set(float64(len(w.queue)))
}
