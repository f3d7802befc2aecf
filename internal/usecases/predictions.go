package usecases

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/prediction"
	"github.com/abelzeko/mionjo/internal/repository"
)

// PredictionView is a prediction with its water point name resolved
type PredictionView struct {
	entities.AIPrediction
	WaterPointName string `json:"water_point_name"`
}

// PredictionUseCase maintains the risk predictions
type PredictionUseCase struct {
	repo      *repository.Repository
	predictor prediction.Predictor
	fallback  prediction.Predictor
}

// NewPredictionUseCase creates a new prediction use case. When predictor is nil
// or fails, the heuristic is used.
func NewPredictionUseCase(repo *repository.Repository, predictor prediction.Predictor, now func() time.Time) *PredictionUseCase {
	heuristic := prediction.NewHeuristic(now)
	if predictor == nil {
		predictor = heuristic
	}
	return &PredictionUseCase{
		repo:      repo,
		predictor: predictor,
		fallback:  heuristic,
	}
}

// ListPredictions returns the stored predictions, most severe first, then by
// decreasing confidence
func (uc *PredictionUseCase) ListPredictions(ctx context.Context) ([]PredictionView, error) {
	preds, err := uc.repo.Predictions.Read(ctx)
	if err != nil {
		return nil, err
	}
	names, err := waterPointNames(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	views := make([]PredictionView, 0, len(preds))
	for _, p := range preds {
		views = append(views, PredictionView{AIPrediction: p, WaterPointName: names.lookup(p.WaterPointID)})
	}
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := views[i].RiskLevel.Rank(), views[j].RiskLevel.Rank()
		if ri != rj {
			return ri < rj
		}
		return views[i].ConfidenceScore > views[j].ConfidenceScore
	})
	return views, nil
}

// RefreshPredictions assesses every water point again and replaces the stored predictions
func (uc *PredictionUseCase) RefreshPredictions(ctx context.Context) (int, error) {
	log.Println("Starting prediction refresh...")
	inputs, err := uc.inputs(ctx)
	if err != nil {
		return 0, err
	}

	preds, err := uc.predictor.Predict(ctx, inputs)
	if err != nil {
		if uc.predictor == uc.fallback {
			return 0, fmt.Errorf("failed to compute predictions: %w", err)
		}
		log.Printf("Warning: predictor failed, falling back to heuristic: %v", err)
		if preds, err = uc.fallback.Predict(ctx, inputs); err != nil {
			return 0, fmt.Errorf("failed to compute predictions: %w", err)
		}
	}

	if err := uc.repo.Predictions.Write(ctx, preds); err != nil {
		return 0, fmt.Errorf("failed to save predictions: %w", err)
	}
	log.Printf("Successfully saved %d predictions for %d water points", len(preds), len(inputs))
	return len(preds), nil
}

// inputs gathers the open reports and maintenance history of every water point
func (uc *PredictionUseCase) inputs(ctx context.Context) ([]prediction.Input, error) {
	points, err := uc.repo.WaterPoints.Read(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := uc.repo.Reports.Read(ctx)
	if err != nil {
		return nil, err
	}
	records, err := uc.repo.Maintenance.Read(ctx)
	if err != nil {
		return nil, err
	}

	openReports := make(map[string][]entities.FieldReport)
	for _, r := range reports {
		if r.Status != entities.ReportResolved {
			openReports[r.WaterPointID] = append(openReports[r.WaterPointID], r)
		}
	}
	maintenance := make(map[string][]entities.MaintenanceRecord)
	for _, m := range records {
		maintenance[m.WaterPointID] = append(maintenance[m.WaterPointID], m)
	}

	inputs := make([]prediction.Input, 0, len(points))
	for _, wp := range points {
		inputs = append(inputs, prediction.Input{
			WaterPoint:  wp,
			OpenReports: openReports[wp.ID],
			Maintenance: maintenance[wp.ID],
		})
	}
	return inputs, nil
}
