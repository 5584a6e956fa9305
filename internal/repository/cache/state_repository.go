package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	stateKeyPrefix = "nuclralert:dashboard:"

	// сколько раз повторяем транзакцию при конкурентной записи
	maxTxRetries = 10
)

// ErrStateConflict - не удалось применить изменение из-за конкурентных записей
var ErrStateConflict = errors.New("dashboard state update conflict")

type stateRepository struct {
	client *redis.Client
	ttl    time.Duration
	clock  clockwork.Clock
	logger *zap.Logger
}

// NewStateRepository создает Redis-хранилище состояния дашборда.
// Каждая запись живёт ttl с момента последнего изменения.
func NewStateRepository(r *Redis, ttl time.Duration, clock clockwork.Clock) repository.DashboardStateRepository {
	return &stateRepository{
		client: r.Client(),
		ttl:    ttl,
		clock:  clock,
		logger: r.logger,
	}
}

func stateKey(sessionID string) string {
	return stateKeyPrefix + sessionID
}

func (r *stateRepository) Get(ctx context.Context, sessionID string) (*domain.DashboardState, error) {
	val, err := r.client.Get(ctx, stateKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get dashboard state", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("state get error: %w", err)
	}

	var state domain.DashboardState
	if err := json.Unmarshal(val, &state); err != nil {
		r.logger.Warn("Dropping undecodable dashboard state", zap.String("session_id", sessionID), zap.Error(err))
		return nil, nil
	}
	return &state, nil
}

// Update выполняет read-modify-write в оптимистичной транзакции WATCH/MULTI
func (r *stateRepository) Update(
	ctx context.Context,
	sessionID string,
	fn func(state *domain.DashboardState) error,
) (*domain.DashboardState, error) {
	key := stateKey(sessionID)
	var result *domain.DashboardState

	txf := func(tx *redis.Tx) error {
		state := domain.NewDashboardState()
		val, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
		case err != nil:
			return err
		default:
			if err := json.Unmarshal(val, state); err != nil {
				r.logger.Warn("Resetting undecodable dashboard state", zap.String("session_id", sessionID), zap.Error(err))
				state = domain.NewDashboardState()
			}
		}

		if err := fn(state); err != nil {
			return err
		}
		state.UpdatedAt = r.clock.Now()

		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal state: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err == nil {
			result = state
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			r.logger.Debug("Dashboard state changed concurrently, retrying",
				zap.String("session_id", sessionID),
				zap.Int("attempt", i+1))
			continue
		}
		return nil, err
	}

	r.logger.Error("Dashboard state update gave up", zap.String("session_id", sessionID))
	return nil, ErrStateConflict
}

func (r *stateRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, stateKey(sessionID)).Err(); err != nil {
		r.logger.Error("Failed to delete dashboard state", zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("state delete error: %w", err)
	}
	return nil
}
