package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
)

type entry struct {
	state     domain.DashboardState
	expiresAt time.Time
}

// StateRepository хранит состояние дашборда в памяти процесса.
// Подходит для одного инстанса; для нескольких нужен Redis.
type StateRepository struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	clock   clockwork.Clock
}

var _ repository.DashboardStateRepository = (*StateRepository)(nil)

func NewStateRepository(ttl time.Duration, clock clockwork.Clock) *StateRepository {
	return &StateRepository{
		entries: make(map[string]*entry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (r *StateRepository) Get(_ context.Context, sessionID string) (*domain.DashboardState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.live(sessionID)
	if e == nil {
		return nil, nil
	}
	state := e.state
	return &state, nil
}

func (r *StateRepository) Update(
	_ context.Context,
	sessionID string,
	fn func(state *domain.DashboardState) error,
) (*domain.DashboardState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := domain.NewDashboardState()
	if e := r.live(sessionID); e != nil {
		cp := e.state
		state = &cp
	}

	if err := fn(state); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	state.UpdatedAt = now
	r.entries[sessionID] = &entry{state: *state, expiresAt: now.Add(r.ttl)}

	result := *state
	return &result, nil
}

func (r *StateRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
	return nil
}

// Sweep удаляет просроченные записи и возвращает их количество
func (r *StateRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	removed := 0
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Len - число записей, включая ещё не вычищенные просроченные
func (r *StateRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// live возвращает запись, если она не просрочена. Вызывается под mu.
func (r *StateRepository) live(sessionID string) *entry {
	e, ok := r.entries[sessionID]
	if !ok {
		return nil
	}
	if !r.clock.Now().Before(e.expiresAt) {
		delete(r.entries, sessionID)
		return nil
	}
	return e
}
