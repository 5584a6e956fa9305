package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/worker"
	"go.uber.org/zap"
)

// Sweeper - хранилище, умеющее удалять просроченные состояния
type Sweeper interface {
	Sweep() int
}

// SweeperWorker периодически чистит просроченные состояния дашборда в памяти.
// Для Redis не нужен: там записи истекают по TTL.
type SweeperWorker struct {
	*worker.BaseWorker
	store    Sweeper
	interval time.Duration
	clock    clockwork.Clock
}

func NewSweeperWorker(store Sweeper, interval time.Duration, clock clockwork.Clock, logger *zap.Logger) *SweeperWorker {
	return &SweeperWorker{
		BaseWorker: worker.NewBaseWorker("session-sweeper", logger),
		store:      store,
		interval:   interval,
		clock:      clock,
	}
}

func (w *SweeperWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting session sweeper", zap.Duration("interval", w.interval))

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			if removed := w.store.Sweep(); removed > 0 {
				logger.Debug("Expired dashboard states removed", zap.Int("count", removed))
			}
		}
	}
}
