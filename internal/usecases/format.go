package usecases

import (
	"fmt"
	"strings"

	"github.com/abelzeko/mionjo/internal/entities"
)

// FormatWaterPoint formats a water point for chat display
func FormatWaterPoint(wp entities.WaterPoint) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s (%s)\n", wp.Name, wp.ID))
	result.WriteString(fmt.Sprintf("📍 %s, %s, %s\n", wp.Village, wp.Commune, wp.Region))
	result.WriteString(fmt.Sprintf("🔧 Type: %s, statut: %s\n", wp.Type, wp.Status))
	result.WriteString(fmt.Sprintf("💧 Capacité: %d L/j, %d habitants desservis\n", wp.DailyCapacity, wp.PopulationServed))
	if wp.WaterQuality != "" {
		result.WriteString(fmt.Sprintf("🧪 Qualité: %s\n", wp.WaterQuality))
	}
	if wp.LastMaintenance != "" {
		result.WriteString(fmt.Sprintf("🕒 Dernière maintenance: %s\n", wp.LastMaintenance))
	}
	if wp.NextMaintenance != "" {
		result.WriteString(fmt.Sprintf("📅 Prochaine maintenance: %s\n", wp.NextMaintenance))
	}
	return result.String()
}

// FormatReport formats a field report on one line
func FormatReport(r ReportView) string {
	return fmt.Sprintf("[%s] %s - %s (%s, %s, %s)", strings.ToUpper(string(r.Priority)), r.Title, r.WaterPointName, r.ReportType, r.Status, r.CreatedAt)
}

// FormatMaintenance formats a maintenance record on one line
func FormatMaintenance(m MaintenanceView) string {
	return fmt.Sprintf("%s %s - %s (%s, priorité %s) %s", m.ScheduledDate, m.MaintenanceType, m.WaterPointName, m.Status, m.Priority, m.Description)
}

// FormatPrediction formats a prediction on one line
func FormatPrediction(p PredictionView) string {
	return fmt.Sprintf("%s: %s, risque %s (%d%%). %s", p.WaterPointName, p.PredictionType, p.RiskLevel, p.ConfidenceScore, p.Recommendation)
}

// FormatSummary formats the dashboard for chat display
func FormatSummary(s *Summary) string {
	var result strings.Builder
	result.WriteString("Tableau de bord MIONJO\n\n")
	result.WriteString(fmt.Sprintf("Points d'eau: %d (%d%% actifs)\n", s.TotalWaterPoints, s.ActivePercent))
	result.WriteString(fmt.Sprintf("Actifs: %d, maintenance: %d, en panne: %d\n",
		s.ByStatus[entities.StatusActive], s.ByStatus[entities.StatusMaintenance], s.ByStatus[entities.StatusFailed]))
	result.WriteString(fmt.Sprintf("Population desservie: %d\n", s.PopulationServed))
	result.WriteString(fmt.Sprintf("Notifications non lues: %d\n", s.UnreadNotifications))

	if len(s.UrgentReports) > 0 {
		result.WriteString("\nSignalements prioritaires:\n")
		for _, r := range s.UrgentReports {
			result.WriteString("• " + FormatReport(r) + "\n")
		}
	}
	if len(s.UpcomingMaintenance) > 0 {
		result.WriteString("\nMaintenances planifiées:\n")
		for _, m := range s.UpcomingMaintenance {
			result.WriteString("• " + FormatMaintenance(m) + "\n")
		}
	}
	if len(s.TopRisks) > 0 {
		result.WriteString("\nRisques prédits:\n")
		for _, p := range s.TopRisks {
			result.WriteString("• " + FormatPrediction(p) + "\n")
		}
	}
	return result.String()
}
