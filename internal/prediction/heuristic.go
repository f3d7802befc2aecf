package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/abelzeko/mionjo/internal/entities"
)

// Heuristic scores water points from their status, water quality, overdue
// maintenance and open reports. It needs no external service.
type Heuristic struct {
	Now func() time.Time
}

// NewHeuristic creates a heuristic predictor dated by now, or by the wall
// clock when now is nil
func NewHeuristic(now func() time.Time) *Heuristic {
	if now == nil {
		now = time.Now
	}
	return &Heuristic{Now: now}
}

// Predict implements Predictor
func (h *Heuristic) Predict(_ context.Context, inputs []Input) ([]entities.AIPrediction, error) {
	today := h.Now().Format("2006-01-02")
	predictions := make([]entities.AIPrediction, 0, len(inputs))

	for _, in := range inputs {
		wp := in.WaterPoint
		score := 0
		predictionType := entities.PredictionFailureRisk

		switch wp.Status {
		case entities.StatusFailed:
			score += 4
		case entities.StatusMaintenance:
			score += 2
		case entities.StatusInactive, entities.StatusUnderConstruction:
			// nothing runs, nothing breaks
			continue
		}

		overdue := wp.NextMaintenance != "" && wp.NextMaintenance < today
		if overdue {
			score += 2
			predictionType = entities.PredictionMaintenanceNeed
		}

		switch wp.WaterQuality {
		case entities.QualityNonPotable:
			score += 3
			predictionType = entities.PredictionWaterQualityRisk
		case entities.QualityPoor:
			score += 2
			predictionType = entities.PredictionWaterQualityRisk
		}

		for _, r := range in.OpenReports {
			if r.Status == entities.ReportResolved {
				continue
			}
			switch r.Priority {
			case entities.PriorityCritical:
				score += 3
			case entities.PriorityHigh:
				score += 2
			default:
				score++
			}
		}

		planned := false
		for _, m := range in.Maintenance {
			if m.Status != entities.MaintenanceDone {
				planned = true
			}
		}
		if planned && score > 0 {
			score--
		}

		level := riskLevel(score)
		predictions = append(predictions, entities.AIPrediction{
			ID:              "ai-" + wp.ID,
			WaterPointID:    wp.ID,
			PredictionType:  predictionType,
			ConfidenceScore: confidence(len(in.OpenReports), overdue),
			RiskLevel:       level,
			Recommendation:  recommendation(level, predictionType, wp),
		})
	}
	return predictions, nil
}

func riskLevel(score int) entities.RiskLevel {
	switch {
	case score >= 7:
		return entities.RiskCritical
	case score >= 4:
		return entities.RiskHigh
	case score >= 2:
		return entities.RiskMedium
	default:
		return entities.RiskLow
	}
}

// more evidence, more confidence; capped at 95
func confidence(reports int, overdue bool) int {
	c := 60 + 8*reports
	if overdue {
		c += 10
	}
	if c > 95 {
		c = 95
	}
	return c
}

func recommendation(level entities.RiskLevel, kind entities.PredictionType, wp entities.WaterPoint) string {
	switch {
	case level == entities.RiskLow:
		return "Continuer le monitoring standard. Pas d'intervention immédiate requise."
	case kind == entities.PredictionWaterQualityRisk:
		return fmt.Sprintf("Analyser la qualité de l'eau de %s et prévoir un traitement.", wp.Name)
	case kind == entities.PredictionMaintenanceNeed:
		return fmt.Sprintf("Maintenance en retard depuis le %s : planifier une révision.", wp.NextMaintenance)
	case level == entities.RiskCritical:
		return "Intervention corrective urgente recommandée."
	default:
		return "Prévoir une inspection préventive dans les 30 prochains jours."
	}
}
