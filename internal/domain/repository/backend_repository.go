package repository

import (
	"context"

	"github.com/nuclralert-dashboard/internal/domain"
)

// BackendRepository - клиент бэкенда NuclrAlert, который считает расстояния,
// классифицирует станции и рендерит карту
type BackendRepository interface {
	// LoadData запускает загрузку и обработку датасета на бэкенде
	LoadData(ctx context.Context) (*domain.LoadSummary, error)

	// GetData возвращает текущий обработанный снапшот.
	// Пустой снапшот означает, что данные ещё не загружались.
	GetData(ctx context.Context) (*domain.DashboardSnapshot, error)

	// MapURL строит URL файла карты; для пустого имени возвращает ""
	MapURL(filename string) string

	// DownloadURL - ссылка на выгрузку обработанных данных
	DownloadURL() string

	// CheckHealth проверяет, что бэкенд отвечает
	CheckHealth(ctx context.Context) error
}
