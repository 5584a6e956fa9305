package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	"github.com/nuclralert-dashboard/internal/observability"
	"github.com/nuclralert-dashboard/internal/usecase/dto"
	"go.uber.org/zap"
)

// DefaultStaleLoadingAfter - через сколько зависшая загрузка считается брошенной
const DefaultStaleLoadingAfter = 2 * time.Minute

// AlertNotifier принимает тревоги для асинхронной публикации
type AlertNotifier interface {
	Enqueue(event *domain.AlertEvent) bool
}

// DashboardUseCase - цикл загрузки дашборда: получить снапшот, при пустых данных
// один раз попросить бэкенд загрузить датасет, сохранить состояние посетителя.
type DashboardUseCase struct {
	backend           repository.BackendRepository
	states            repository.DashboardStateRepository
	notifier          AlertNotifier
	clock             clockwork.Clock
	metrics           *observability.Metrics
	staleLoadingAfter time.Duration
	logger            *zap.Logger
}

// NewDashboardUseCase создает новый экземпляр DashboardUseCase. notifier может быть nil.
func NewDashboardUseCase(
	backend repository.BackendRepository,
	states repository.DashboardStateRepository,
	notifier AlertNotifier,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		backend:           backend,
		states:            states,
		notifier:          notifier,
		clock:             clock,
		metrics:           metrics,
		staleLoadingAfter: DefaultStaleLoadingAfter,
		logger:            logger,
	}
}

// SetStaleLoadingAfter меняет порог брошенной загрузки
func (uc *DashboardUseCase) SetStaleLoadingAfter(d time.Duration) {
	uc.staleLoadingAfter = d
}

// Mount - первое открытие дашборда. Загрузка запускается, только если её ещё не было
// (или предыдущая загрузка зависла дольше staleLoadingAfter).
func (uc *DashboardUseCase) Mount(ctx context.Context, sessionID string) (*domain.DashboardState, error) {
	state, err := uc.states.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get dashboard state: %w", err)
	}

	if state.Mounted() && !uc.abandoned(state) {
		return state, nil
	}
	return uc.Refresh(ctx, sessionID)
}

// Refresh - ручная перезагрузка (и тело Mount).
// Результат применяется, только если за время загрузки не стартовала более новая.
func (uc *DashboardUseCase) Refresh(ctx context.Context, sessionID string) (*domain.DashboardState, error) {
	// 1. Входим в loading, прошлый снапшот сохраняем
	begun, err := uc.states.Update(ctx, sessionID, func(s *domain.DashboardState) error {
		s.Seq++
		s.Status = domain.StatusLoading
		s.Error = ""
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("begin dashboard fetch: %w", err)
	}
	seq := begun.Seq

	logger := uc.logger.With(zap.String("session_id", sessionID), zap.Uint64("seq", seq))
	logger.Debug("Dashboard fetch started")

	// 2. Загрузка не отменяется вместе с запросом, который её начал
	snapshot, fetchErr := uc.fetch(context.WithoutCancel(ctx), logger)

	// 3. Применяем результат, если он не устарел
	settled, err := uc.states.Update(ctx, sessionID, func(s *domain.DashboardState) error {
		if s.Seq != seq {
			return domain.ErrStaleFetch
		}
		if fetchErr != nil {
			s.Status = domain.StatusError
			s.Error = domain.HumanMessage(fetchErr)
			return nil
		}
		s.Status = domain.StatusLoaded
		s.Snapshot = snapshot
		s.Error = ""
		return nil
	})

	if errors.Is(err, domain.ErrStaleFetch) {
		uc.observe("stale")
		logger.Info("Discarding stale dashboard fetch")
		return uc.State(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("settle dashboard fetch: %w", err)
	}

	if fetchErr != nil {
		uc.observe("error")
		logger.Warn("Dashboard fetch failed", zap.Error(fetchErr))
		return settled, nil
	}

	uc.observe("loaded")
	logger.Info("Dashboard loaded",
		zap.Int("plants", len(snapshot.Plants)),
		zap.Int("distances", len(snapshot.Distances)))
	uc.notify(sessionID, snapshot, logger)

	return settled, nil
}

// State возвращает состояние без побочных эффектов
func (uc *DashboardUseCase) State(ctx context.Context, sessionID string) (*domain.DashboardState, error) {
	state, err := uc.states.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get dashboard state: %w", err)
	}
	if state == nil {
		return domain.NewDashboardState(), nil
	}
	return state, nil
}

// Discard сбрасывает дашборд посетителя в idle (уход с дашборда).
// Seq не обнуляется: загрузка, которая ещё идёт, при применении окажется устаревшей,
// даже если посетитель успел вернуться и запустить новую. Запись уходит по TTL.
func (uc *DashboardUseCase) Discard(ctx context.Context, sessionID string) error {
	current, err := uc.states.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("discard dashboard state: %w", err)
	}
	if !current.Mounted() {
		return nil
	}

	_, err = uc.states.Update(ctx, sessionID, func(s *domain.DashboardState) error {
		s.Seq++
		s.Status = domain.StatusIdle
		s.Snapshot = nil
		s.Error = ""
		return nil
	})
	if err != nil {
		return fmt.Errorf("discard dashboard state: %w", err)
	}
	return nil
}

// View собирает модель отображения из состояния
func (uc *DashboardUseCase) View(state *domain.DashboardState, query dto.DashboardQuery) *dto.DashboardView {
	if state == nil {
		state = domain.NewDashboardState()
	}

	view := &dto.DashboardView{
		Status:      state.Status,
		Seq:         state.Seq,
		Error:       state.Error,
		Tab:         string(ParseTab(query.Tab)),
		Query:       query.Query,
		Nearby:      []dto.NearbyPlant{},
		Plants:      []dto.PlantRow{},
		DownloadURL: uc.backend.DownloadURL(),
	}
	if !state.UpdatedAt.IsZero() {
		updated := state.UpdatedAt
		view.UpdatedAt = &updated
	}

	snapshot := state.Visible()
	if snapshot == nil {
		return view
	}

	view.Totals = ComputeTotals(snapshot)
	alert := SelectAlert(snapshot)
	view.Alert = &alert
	view.MapURL = uc.backend.MapURL(snapshot.MapFilename)
	view.UnknownSafety = snapshot.UnknownSafetyCount()

	for _, d := range NearbyPlants(snapshot.Distances, NearbyLimit) {
		view.Nearby = append(view.Nearby, dto.NearbyPlant{
			Name:          d.Name,
			Age:           int(d.Age),
			Safety:        d.Safety,
			Distance:      d.Distance,
			DistanceLabel: fmt.Sprintf("%.2f km", d.Distance),
		})
	}

	matched := FilterPlants(snapshot.Plants, query.Query)
	view.MatchedPlants = len(matched)
	for _, p := range matched {
		view.Plants = append(view.Plants, dto.PlantRow{
			Name:      p.Name,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Age:       int(p.Age),
			Safety:    p.Safety,
			Color:     p.Safety.Color(),
		})
	}

	return view
}

// fetch: GetData; если станций нет - один раз LoadData и повторный GetData
func (uc *DashboardUseCase) fetch(ctx context.Context, logger *zap.Logger) (*domain.DashboardSnapshot, error) {
	snapshot, err := uc.backend.GetData(ctx)
	if err != nil {
		return nil, err
	}
	if !snapshot.IsEmpty() {
		return snapshot, nil
	}

	logger.Info("Backend has no plants yet, requesting data load")
	if uc.metrics != nil {
		uc.metrics.LazyInits.Inc()
	}

	if _, err := uc.backend.LoadData(ctx); err != nil {
		return nil, err
	}
	snapshot, err = uc.backend.GetData(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot = &domain.DashboardSnapshot{}
	}
	return snapshot, nil
}

func (uc *DashboardUseCase) notify(sessionID string, snapshot *domain.DashboardSnapshot, logger *zap.Logger) {
	if uc.notifier == nil {
		return
	}
	alert := SelectAlert(snapshot)
	if !alert.Notify() {
		return
	}
	if !uc.notifier.Enqueue(domain.NewAlertEvent(sessionID, alert, uc.clock.Now())) {
		logger.Warn("Alert notification dropped", zap.String("level", string(alert.Level)))
	}
}

func (uc *DashboardUseCase) abandoned(state *domain.DashboardState) bool {
	return state.Status == domain.StatusLoading &&
		uc.staleLoadingAfter > 0 &&
		uc.clock.Since(state.UpdatedAt) > uc.staleLoadingAfter
}

func (uc *DashboardUseCase) observe(outcome string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.DashboardFetches.WithLabelValues(outcome).Inc()
}
