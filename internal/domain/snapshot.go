package domain

// DashboardSnapshot - полный ответ /get_data за один цикл загрузки.
// Заменяется целиком при каждой успешной загрузке, никогда не мержится.
type DashboardSnapshot struct {
	Plants         []PlantRecord    `json:"plants" validate:"dive"`
	Distances      []DistanceRecord `json:"distances" validate:"dive"`
	OnSitePlants   []string         `json:"on_site_plants"`
	DangerousZones []string         `json:"dangerous_zones"`
	ModerateZones  []string         `json:"moderate_zones"`
	SafeZones      []string         `json:"safe_zones"`
	MapFilename    string           `json:"map_filename"`
}

// IsEmpty - данные ещё не загружены на бэкенде
func (s *DashboardSnapshot) IsEmpty() bool {
	return s == nil || len(s.Plants) == 0
}

// UnknownSafetyCount считает записи с нераспознанным классом опасности
func (s *DashboardSnapshot) UnknownSafetyCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, p := range s.Plants {
		if !p.Safety.Known() {
			n++
		}
	}
	for _, d := range s.Distances {
		if !d.Safety.Known() {
			n++
		}
	}
	return n
}

// LoadSummary - ответ /load_data. Тело опционально, поля заполняются best-effort.
type LoadSummary struct {
	Success        bool     `json:"success"`
	TotalPlants    int      `json:"total_plants"`
	SafeCount      int      `json:"safe_count"`
	ModerateCount  int      `json:"moderate_count"`
	DangerousCount int      `json:"dangerous_count"`
	SafeZones      []string `json:"safe_zones"`
	ModerateZones  []string `json:"moderate_zones"`
	DangerousZones []string `json:"dangerous_zones"`
	OnSitePlants   []string `json:"on_site_plants"`
	MapFilename    string   `json:"map_filename"`
}
