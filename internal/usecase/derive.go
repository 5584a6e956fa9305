package usecase

import (
	"sort"
	"strings"

	"github.com/nuclralert-dashboard/internal/domain"
)

// NearbyLimit - сколько ближайших станций показывает список
const NearbyLimit = 5

// Tab - вкладка дашборда
type Tab string

const (
	TabAlerts Tab = "alerts"
	TabMap    Tab = "map"
	TabData   Tab = "data"
)

// Tabs в порядке отображения
var Tabs = []Tab{TabAlerts, TabMap, TabData}

// ParseTab возвращает вкладку; неизвестные значения - alerts
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabMap:
		return TabMap
	case TabData:
		return TabData
	}
	return TabAlerts
}

// ComputeTotals пересчитывает метрики по plants снапшота.
// Станции с неизвестным классом входят только в Total.
func ComputeTotals(snapshot *domain.DashboardSnapshot) domain.Totals {
	var totals domain.Totals
	if snapshot == nil {
		return totals
	}
	totals.Total = len(snapshot.Plants)
	for _, p := range snapshot.Plants {
		switch p.Safety {
		case domain.SafetySafe:
			totals.Safe++
		case domain.SafetyModerate:
			totals.Moderate++
		case domain.SafetyDangerous:
			totals.Dangerous++
		}
	}
	return totals
}

// NearbyPlants возвращает limit ближайших записей по возрастанию Distance.
// Сортировка стабильная, исходный срез не меняется.
func NearbyPlants(distances []domain.DistanceRecord, limit int) []domain.DistanceRecord {
	if len(distances) == 0 || limit <= 0 {
		return nil
	}
	sorted := make([]domain.DistanceRecord, len(distances))
	copy(sorted, distances)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// FilterPlants - поиск по таблице: подстрока в Name без учёта регистра
func FilterPlants(plants []domain.PlantRecord, query string) []domain.PlantRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return plants
	}
	result := make([]domain.PlantRecord, 0, len(plants))
	for _, p := range plants {
		if strings.Contains(strings.ToLower(p.Name), query) {
			result = append(result, p)
		}
	}
	return result
}
