// Package prediction assesses the risk of failure of water points
package prediction

import (
	"context"

	"github.com/abelzeko/mionjo/internal/entities"
)

// Input is everything known about one water point when assessing it
type Input struct {
	WaterPoint  entities.WaterPoint          `json:"water_point"`
	OpenReports []entities.FieldReport       `json:"open_reports"`
	Maintenance []entities.MaintenanceRecord `json:"maintenance"`
}

// Predictor produces one prediction per input water point at most
type Predictor interface {
	Predict(ctx context.Context, inputs []Input) ([]entities.AIPrediction, error)
}
