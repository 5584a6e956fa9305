package dto

import (
	"time"

	"github.com/nuclralert-dashboard/internal/domain"
)

// DashboardView - всё, что нужно для отрисовки дашборда одного посетителя
type DashboardView struct {
	Status        domain.DashboardStatus `json:"status"`
	Seq           uint64                 `json:"seq"`
	Error         string                 `json:"error,omitempty"`
	Tab           string                 `json:"tab"`
	Query         string                 `json:"query,omitempty"`
	Totals        domain.Totals          `json:"totals"`
	Alert         *domain.Alert          `json:"alert,omitempty"`
	Nearby        []NearbyPlant          `json:"nearby"`
	Plants        []PlantRow             `json:"plants"`
	MatchedPlants int                    `json:"matched_plants"`
	UnknownSafety int                    `json:"unknown_safety,omitempty"`
	MapURL        string                 `json:"map_url,omitempty"`
	DownloadURL   string                 `json:"download_url"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty"`
}

// Loading - загрузка ещё идёт
func (v *DashboardView) Loading() bool {
	return v.Status == domain.StatusLoading || v.Status == domain.StatusIdle
}

// Loaded - есть снапшот для показа
func (v *DashboardView) Loaded() bool {
	return v.Status == domain.StatusLoaded
}

// NearbyPlant - строка списка ближайших станций
type NearbyPlant struct {
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Safety        domain.Safety `json:"safety"`
	Distance      float64       `json:"distance_km"`
	DistanceLabel string        `json:"distance_label"`
}

// PlantRow - строка таблицы станций
type PlantRow struct {
	Name      string        `json:"name"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Age       int           `json:"age"`
	Safety    domain.Safety `json:"safety"`
	Color     string        `json:"color"`
}

// StartResponse - результат запуска загрузки с интро
type StartResponse struct {
	Summary  *domain.LoadSummary `json:"summary"`
	Redirect string              `json:"redirect"`
}

// HealthResponse - ответ health/ready
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Version string            `json:"version,omitempty"`
}
