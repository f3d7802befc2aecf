package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/prediction"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// PredictionItem is one assessment returned by the model
type PredictionItem struct {
	WaterPointID    string `json:"water_point_id" jsonschema_description:"Identifier of the assessed water point, copied from the input"`
	PredictionType  string `json:"prediction_type" jsonschema:"enum=risque_panne,enum=besoin_maintenance,enum=qualité_eau"`
	ConfidenceScore int    `json:"confidence_score" jsonschema_description:"Confidence between 0 and 100"`
	RiskLevel       string `json:"risk_level" jsonschema:"enum=faible,enum=moyen,enum=élevé,enum=critique"`
	Recommendation  string `json:"recommendation" jsonschema_description:"One actionable sentence in French"`
}

// PredictionBatch is the structured output of the predictor
type PredictionBatch struct {
	Predictions []PredictionItem `json:"predictions"`
}

// Predictor assesses water points with the OpenAI chat API
type Predictor struct {
	client openai.Client
	schema interface{}
}

var _ prediction.Predictor = (*Predictor)(nil)

// NewPredictor creates a predictor backed by the OpenAI chat API
func NewPredictor(apiKey string, opts ...option.RequestOption) (*Predictor, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &Predictor{
		client: client,
		schema: GenerateSchema[PredictionBatch](),
	}, nil
}

const predictorPrompt = `You are a predictive-maintenance analyst for rural water points in southern Madagascar (Androy, Anosy).
You receive a JSON array; each element describes a water point, its open field reports and its maintenance records.

For each water point that is operating or under maintenance, return one prediction:
- prediction_type: "risque_panne" (failure risk), "besoin_maintenance" (maintenance need) or "qualité_eau" (water quality risk)
- risk_level: "faible", "moyen", "élevé" or "critique"
- confidence_score: 0 to 100
- recommendation: one actionable sentence in French
Copy water_point_id exactly from the input. Skip inactive points and points under construction.

Output **strictly** in JSON.`

// Predict implements prediction.Predictor
func (p *Predictor) Predict(ctx context.Context, inputs []prediction.Input) ([]entities.AIPrediction, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction inputs: %w", err)
	}

	batch, err := structuredCompletion[PredictionBatch](ctx, p.client, p.schema,
		"risk_predictions",
		"Risk predictions, one per assessed water point",
		predictorPrompt, string(payload))
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		known[in.WaterPoint.ID] = true
	}

	predictions := make([]entities.AIPrediction, 0, len(batch.Predictions))
	for _, item := range batch.Predictions {
		if !known[item.WaterPointID] {
			log.Printf("Warning: Ignoring prediction for unknown water point %q", item.WaterPointID)
			continue
		}
		predictions = append(predictions, entities.AIPrediction{
			ID:              "ai-" + item.WaterPointID,
			WaterPointID:    item.WaterPointID,
			PredictionType:  entities.PredictionType(item.PredictionType),
			ConfidenceScore: clamp(item.ConfidenceScore, 0, 100),
			RiskLevel:       entities.RiskLevel(item.RiskLevel),
			Recommendation:  item.Recommendation,
		})
	}
	log.Printf("OpenAI returned %d predictions for %d water points", len(predictions), len(inputs))
	return predictions, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
