package domain

import "time"

// DashboardStatus - состояние цикла загрузки дашборда
type DashboardStatus string

const (
	StatusIdle    DashboardStatus = "idle"
	StatusLoading DashboardStatus = "loading"
	StatusLoaded  DashboardStatus = "loaded"
	StatusError   DashboardStatus = "error"
)

// DashboardState - состояние дашборда одного посетителя.
// Seq растёт на каждый запуск загрузки; результат с устаревшим Seq отбрасывается.
type DashboardState struct {
	Status    DashboardStatus    `json:"status"`
	Seq       uint64             `json:"seq"`
	Snapshot  *DashboardSnapshot `json:"snapshot,omitempty"`
	Error     string             `json:"error,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewDashboardState() *DashboardState {
	return &DashboardState{Status: StatusIdle}
}

// Mounted - загрузка уже запускалась хотя бы раз
func (s *DashboardState) Mounted() bool {
	return s != nil && s.Status != StatusIdle
}

// Visible возвращает снапшот, который можно показывать.
// В состоянии error предыдущий снапшот хранится, но не отображается.
func (s *DashboardState) Visible() *DashboardSnapshot {
	if s == nil || s.Status != StatusLoaded {
		return nil
	}
	return s.Snapshot
}

// Totals - метрики, пересчитываемые из снапшота на каждый рендер.
// Safe+Moderate+Dangerous <= Total: станции с SafetyUnknown учитываются только в Total.
type Totals struct {
	Total     int `json:"total"`
	Safe      int `json:"safe"`
	Moderate  int `json:"moderate"`
	Dangerous int `json:"dangerous"`
}

// AlertLevel - уровень баннера тревоги, по убыванию серьёзности
type AlertLevel string

const (
	AlertOnSite    AlertLevel = "on_site"
	AlertDangerous AlertLevel = "dangerous"
	AlertModerate  AlertLevel = "moderate"
	AlertSafe      AlertLevel = "safe"
	AlertClear     AlertLevel = "clear"
)

// Alert - выбранный баннер тревоги
type Alert struct {
	Level   AlertLevel `json:"level"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Hint    string     `json:"hint,omitempty"`
	Plants  []string   `json:"plants,omitempty"`
}

// Notify - нужно ли отправлять уведомление по этой тревоге
func (a Alert) Notify() bool {
	return a.Level != AlertClear
}

// DisplaySeconds - сколько секунд показывать уведомление
func (l AlertLevel) DisplaySeconds() int {
	switch l {
	case AlertOnSite, AlertDangerous:
		return 15
	case AlertModerate:
		return 10
	case AlertSafe:
		return 5
	}
	return 0
}
