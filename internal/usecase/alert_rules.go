package usecase

import (
	"fmt"
	"strings"

	"github.com/nuclralert-dashboard/internal/domain"
)

// alertRule - пара "условие / баннер". Правила проверяются по порядку, побеждает первое.
type alertRule struct {
	level  domain.AlertLevel
	plants func(s *domain.DashboardSnapshot) []string
	render func(plants []string) domain.Alert
}

// alertRules упорядочены по серьёзности, а не по числу станций
var alertRules = []alertRule{
	{
		level:  domain.AlertOnSite,
		plants: func(s *domain.DashboardSnapshot) []string { return s.OnSitePlants },
		render: func(plants []string) domain.Alert {
			return domain.Alert{
				Title:   "🚨 ON-SITE ALERT",
				Message: "You are currently at: " + strings.Join(plants, ", "),
				Hint:    "Follow site safety protocols immediately.",
			}
		},
	},
	{
		level:  domain.AlertDangerous,
		plants: func(s *domain.DashboardSnapshot) []string { return s.DangerousZones },
		render: func(plants []string) domain.Alert {
			return domain.Alert{
				Title: "🚨 HIGH RADIATION ALERT",
				Message: fmt.Sprintf("Within %dkm of %d dangerous plants: %s",
					domain.DangerousRadiusKm, len(plants), strings.Join(plants, ", ")),
				Hint: "Evacuate immediately or seek shelter.",
			}
		},
	},
	{
		level:  domain.AlertModerate,
		plants: func(s *domain.DashboardSnapshot) []string { return s.ModerateZones },
		render: func(plants []string) domain.Alert {
			return domain.Alert{
				Title: "⚠️ Moderate Radiation Warning",
				Message: fmt.Sprintf("Within %dkm of %d aging plants: %s",
					domain.ModerateRadiusKm, len(plants), strings.Join(plants, ", ")),
				Hint: "Limit outdoor exposure time.",
			}
		},
	},
	{
		level:  domain.AlertSafe,
		plants: func(s *domain.DashboardSnapshot) []string { return s.SafeZones },
		render: func(plants []string) domain.Alert {
			return domain.Alert{
				Title:   "✅ Safe Zone",
				Message: fmt.Sprintf("Near %d newer plants: %s", len(plants), strings.Join(plants, ", ")),
				Hint:    "No immediate danger detected.",
			}
		},
	},
}

var clearArea = domain.Alert{
	Level:   domain.AlertClear,
	Title:   "🌿 Clear Area",
	Message: "No immediate proximity of any known nuclear plants.",
	Hint:    "Continue monitoring for updates.",
}

// SelectAlert выбирает баннер для снапшота
func SelectAlert(snapshot *domain.DashboardSnapshot) domain.Alert {
	if snapshot == nil {
		return clearArea
	}
	for _, rule := range alertRules {
		plants := rule.plants(snapshot)
		if len(plants) == 0 {
			continue
		}
		alert := rule.render(plants)
		alert.Level = rule.level
		alert.Plants = append([]string(nil), plants...)
		return alert
	}
	return clearArea
}
