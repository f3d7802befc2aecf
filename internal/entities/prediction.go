package entities

// PredictionType is what a risk prediction is about
type PredictionType string

const (
	PredictionFailureRisk      PredictionType = "risque_panne"
	PredictionMaintenanceNeed  PredictionType = "besoin_maintenance"
	PredictionWaterQualityRisk PredictionType = "qualité_eau"
)

// RiskLevel grades a prediction
type RiskLevel string

const (
	RiskLow      RiskLevel = "faible"
	RiskMedium   RiskLevel = "moyen"
	RiskHigh     RiskLevel = "élevé"
	RiskCritical RiskLevel = "critique"
)

// Rank orders risk levels from most to least severe; unknown values sort last
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	case RiskLow:
		return 3
	default:
		return 4
	}
}

// AIPrediction is a risk assessment for a water point
type AIPrediction struct {
	ID              string         `json:"id" yaml:"id"`
	WaterPointID    string         `json:"water_point_id" yaml:"water_point_id"`
	PredictionType  PredictionType `json:"prediction_type" yaml:"prediction_type"`
	ConfidenceScore int            `json:"confidence_score" yaml:"confidence_score"` // 0-100
	RiskLevel       RiskLevel      `json:"risk_level" yaml:"risk_level"`
	Recommendation  string         `json:"recommendation" yaml:"recommendation"`
}

// GetID returns the identifier of the prediction
func (p AIPrediction) GetID() string { return p.ID }
