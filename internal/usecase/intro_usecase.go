package usecase

import (
	"context"

	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	"go.uber.org/zap"
)

// IntroUseCase - кнопка "Start" на интро: загрузить датасет на бэкенде
type IntroUseCase struct {
	backend repository.BackendRepository
	logger  *zap.Logger
}

func NewIntroUseCase(backend repository.BackendRepository, logger *zap.Logger) *IntroUseCase {
	return &IntroUseCase{backend: backend, logger: logger}
}

// Start вызывает LoadData. При ошибке навигации не будет, ошибка показывается на интро.
func (uc *IntroUseCase) Start(ctx context.Context) (*domain.LoadSummary, error) {
	summary, err := uc.backend.LoadData(ctx)
	if err != nil {
		uc.logger.Warn("Intro start failed", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Dataset loaded from intro",
		zap.Int("total_plants", summary.TotalPlants),
		zap.Int("dangerous", summary.DangerousCount))
	return summary, nil
}
