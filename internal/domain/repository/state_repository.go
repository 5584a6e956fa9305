package repository

import (
	"context"

	"github.com/nuclralert-dashboard/internal/domain"
)

// DashboardStateRepository хранит состояние дашборда каждого посетителя
type DashboardStateRepository interface {
	// Get возвращает состояние или nil, если его нет
	Get(ctx context.Context, sessionID string) (*domain.DashboardState, error)

	// Update атомарно читает, изменяет и сохраняет состояние.
	// fn получает текущее состояние (новое, если его не было).
	// Если fn вернула ошибку, ничего не сохраняется и ошибка возвращается как есть.
	Update(ctx context.Context, sessionID string, fn func(state *domain.DashboardState) error) (*domain.DashboardState, error)

	// Delete удаляет состояние посетителя
	Delete(ctx context.Context, sessionID string) error
}
