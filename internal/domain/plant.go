package domain

import (
	"encoding/json"
	"fmt"
)

// Safety - класс опасности станции, присвоенный бэкендом по возрасту
type Safety string

const (
	SafetySafe      Safety = "Safe"
	SafetyModerate  Safety = "Moderate"
	SafetyDangerous Safety = "Dangerous"

	// SafetyUnknown - явный fallback для значений вне перечисления
	SafetyUnknown Safety = "Unknown"
)

// ParseSafety возвращает класс опасности или ошибку для нераспознанной строки
func ParseSafety(s string) (Safety, error) {
	switch Safety(s) {
	case SafetySafe, SafetyModerate, SafetyDangerous:
		return Safety(s), nil
	}
	return SafetyUnknown, fmt.Errorf("unrecognized safety value %q", s)
}

// Known сообщает, входит ли значение в закрытое перечисление
func (s Safety) Known() bool {
	_, err := ParseSafety(string(s))
	return err == nil
}

// Color - цвет класса на карте и в таблице
func (s Safety) Color() string {
	switch s {
	case SafetySafe:
		return "#28a745"
	case SafetyModerate:
		return "#ffc107"
	case SafetyDangerous:
		return "#dc3545"
	}
	return "#6c757d"
}

// UnmarshalJSON приводит любое нераспознанное значение к SafetyUnknown.
// Ошибка возвращается только если значение не строка и не null.
func (s *Safety) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = SafetyUnknown
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode safety %s: %w", b, err)
	}

	parsed, err := ParseSafety(raw)
	if err != nil {
		*s = SafetyUnknown
		return nil
	}
	*s = parsed
	return nil
}

// PlantRecord - атомная станция в том виде, в каком её отдаёт бэкенд
type PlantRecord struct {
	Name      string  `json:"Name" validate:"required"`
	Latitude  float64 `json:"Latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"Longitude" validate:"gte=-180,lte=180"`
	Age       Years   `json:"Age" validate:"gte=0"`
	Safety    Safety  `json:"Safety"`
}

// DistanceRecord - расстояние от пользователя до станции в километрах
type DistanceRecord struct {
	Name     string  `json:"Name" validate:"required"`
	Age      Years   `json:"Age" validate:"gte=0"`
	Safety   Safety  `json:"Safety"`
	Distance float64 `json:"Distance" validate:"gte=0"`
}

// Радиусы зон, которые использует бэкенд при классификации (км)
const (
	OnSiteRadiusKm    = 1
	DangerousRadiusKm = 50
	ModerateRadiusKm  = 75
	SafeRadiusKm      = 100
)
