package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamAlerts = "stream:nuclralert:alerts"
)

// AlertEvent - уведомление о тревоге, публикуемое после успешной загрузки дашборда
type AlertEvent struct {
	ID             uuid.UUID  `json:"id"`
	SessionID      string     `json:"session_id"`
	Level          AlertLevel `json:"level"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Plants         []string   `json:"plants,omitempty"`
	DisplaySeconds int        `json:"display_seconds"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewAlertEvent собирает событие из выбранного баннера
func NewAlertEvent(sessionID string, alert Alert, now time.Time) *AlertEvent {
	return &AlertEvent{
		ID:             uuid.New(),
		SessionID:      sessionID,
		Level:          alert.Level,
		Title:          alert.Title,
		Message:        alert.Message,
		Plants:         alert.Plants,
		DisplaySeconds: alert.Level.DisplaySeconds(),
		CreatedAt:      now,
	}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
