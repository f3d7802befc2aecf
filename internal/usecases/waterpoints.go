package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/integration"
	"github.com/abelzeko/mionjo/internal/inventory"
	"github.com/abelzeko/mionjo/internal/repository"
)

// RegisterSource provides the partner-published water point register
type RegisterSource interface {
	FetchRegister(ctx context.Context, newID func() string) (*integration.RegisterSnapshot, error)
}

// WaterPointFilter selects water points. Empty fields match everything.
type WaterPointFilter struct {
	Search string                    `json:"search"` // name or commune, ignoring case and accents
	Status entities.WaterPointStatus `json:"status"`
	Type   entities.WaterPointType   `json:"type"`
}

// Matches reports whether wp passes the filter
func (f WaterPointFilter) Matches(wp entities.WaterPoint) bool {
	if f.Status != "" && wp.Status != f.Status {
		return false
	}
	if f.Type != "" && wp.Type != f.Type {
		return false
	}
	if f.Search != "" && !inventory.Contains(wp.Name, f.Search) && !inventory.Contains(wp.Commune, f.Search) {
		return false
	}
	return true
}

// WaterPointRequest describes a water point to create or replace
type WaterPointRequest struct {
	Name             string                    `json:"name" validate:"required,max=200"`
	Type             entities.WaterPointType   `json:"type" validate:"required,oneof=forage puits source réservoir borne_fontaine"`
	Status           entities.WaterPointStatus `json:"status" validate:"required,oneof=actif maintenance panne inactif en_construction"`
	Latitude         float64                   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude        float64                   `json:"longitude" validate:"gte=-180,lte=180"`
	Region           string                    `json:"region" validate:"required"`
	Commune          string                    `json:"commune"`
	Village          string                    `json:"village"`
	DailyCapacity    int                       `json:"daily_capacity" validate:"gte=0"`
	PopulationServed int                       `json:"population_served" validate:"gte=0"`
	WaterQuality     entities.WaterQuality     `json:"water_quality" validate:"omitempty,oneof=excellente bonne moyenne médiocre non_potable"`
	LastMaintenance  string                    `json:"last_maintenance" validate:"omitempty,datetime=2006-01-02"`
	NextMaintenance  string                    `json:"next_maintenance" validate:"omitempty,datetime=2006-01-02"`
}

func (r WaterPointRequest) toWaterPoint(id string) entities.WaterPoint {
	wp := entities.WaterPoint{
		ID:               id,
		Name:             r.Name,
		Type:             r.Type,
		Status:           r.Status,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		Region:           r.Region,
		Commune:          r.Commune,
		Village:          r.Village,
		DailyCapacity:    r.DailyCapacity,
		PopulationServed: r.PopulationServed,
		WaterQuality:     r.WaterQuality,
		LastMaintenance:  r.LastMaintenance,
		NextMaintenance:  r.NextMaintenance,
	}
	if wp.WaterQuality == "" {
		wp.WaterQuality = inventory.DefaultQuality
	}
	if wp.PopulationServed == 0 {
		wp.PopulationServed = wp.DailyCapacity / inventory.PopulationRatio
	}
	return wp
}

// SyncResult summarizes a register synchronization
type SyncResult struct {
	Fetched    int `json:"fetched"`
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

// WaterPointUseCase manages the water point inventory
type WaterPointUseCase struct {
	repo     *repository.Repository
	register RegisterSource
	newID    func() string
}

// NewWaterPointUseCase creates a new water point use case
func NewWaterPointUseCase(repo *repository.Repository, register RegisterSource, newID func() string) *WaterPointUseCase {
	return &WaterPointUseCase{
		repo:     repo,
		register: register,
		newID:    newID,
	}
}

// ListWaterPoints returns the water points matching filter, in stored order
func (uc *WaterPointUseCase) ListWaterPoints(ctx context.Context, filter WaterPointFilter) ([]entities.WaterPoint, error) {
	points, err := uc.repo.WaterPoints.Read(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]entities.WaterPoint, 0, len(points))
	for _, wp := range points {
		if filter.Matches(wp) {
			matched = append(matched, wp)
		}
	}
	return matched, nil
}

// GetWaterPoint returns the water point with the given id
func (uc *WaterPointUseCase) GetWaterPoint(ctx context.Context, id string) (*entities.WaterPoint, error) {
	wp, err := uc.repo.WaterPoints.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if wp == nil {
		return nil, fmt.Errorf("water point %q: %w", id, ErrNotFound)
	}
	return wp, nil
}

// FindByName returns the water point whose name equals name ignoring case and
// accents, or nil
func (uc *WaterPointUseCase) FindByName(ctx context.Context, name string) (*entities.WaterPoint, error) {
	points, err := uc.repo.WaterPoints.Read(ctx)
	if err != nil {
		return nil, err
	}
	want := inventory.Normalize(name)
	for i := range points {
		if inventory.Normalize(points[i].Name) == want {
			return &points[i], nil
		}
	}
	return nil, nil
}

// Names returns the names of every water point
func (uc *WaterPointUseCase) Names(ctx context.Context) ([]string, error) {
	points, err := uc.repo.WaterPoints.Read(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(points))
	for _, wp := range points {
		names = append(names, wp.Name)
	}
	return names, nil
}

// CreateWaterPoint validates req and prepends the new water point
func (uc *WaterPointUseCase) CreateWaterPoint(ctx context.Context, req WaterPointRequest) (entities.WaterPoint, error) {
	if err := validateRequest(req); err != nil {
		return entities.WaterPoint{}, err
	}
	wp := req.toWaterPoint(uc.newID())
	if err := uc.repo.WaterPoints.Add(ctx, wp); err != nil {
		return entities.WaterPoint{}, fmt.Errorf("failed to save water point: %w", err)
	}
	log.Printf("Created water point %s (%s)", wp.ID, wp.Name)
	return wp, nil
}

// ReplaceWaterPoint overwrites every field of an existing water point
func (uc *WaterPointUseCase) ReplaceWaterPoint(ctx context.Context, id string, req WaterPointRequest) (entities.WaterPoint, error) {
	if err := validateRequest(req); err != nil {
		return entities.WaterPoint{}, err
	}
	wp := req.toWaterPoint(id)
	patch, err := toPatch(wp)
	if err != nil {
		return entities.WaterPoint{}, fmt.Errorf("failed to encode water point: %w", err)
	}
	found, err := uc.repo.WaterPoints.Update(ctx, id, patch)
	if err != nil {
		return entities.WaterPoint{}, fmt.Errorf("failed to save water point: %w", err)
	}
	if !found {
		return entities.WaterPoint{}, fmt.Errorf("water point %q: %w", id, ErrNotFound)
	}
	log.Printf("Replaced water point %s (%s)", wp.ID, wp.Name)
	return wp, nil
}

// ImportCSV adds every valid row of r as a new water point
func (uc *WaterPointUseCase) ImportCSV(ctx context.Context, r io.Reader) (*inventory.ImportResult, error) {
	result, err := inventory.Import(r, uc.newID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(result.Points) > 0 {
		if err := uc.repo.WaterPoints.AddMany(ctx, result.Points); err != nil {
			return nil, fmt.Errorf("failed to save imported water points: %w", err)
		}
	}
	return result, nil
}

// ExportCSV writes every water point to w
func (uc *WaterPointUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	points, err := uc.repo.WaterPoints.Read(ctx)
	if err != nil {
		return err
	}
	return inventory.Export(w, points)
}

// SyncRegister imports the water points of the partner register whose names
// are not in the inventory yet
func (uc *WaterPointUseCase) SyncRegister(ctx context.Context) (*SyncResult, error) {
	if uc.register == nil {
		return nil, errors.New("register source is not configured")
	}
	log.Println("Starting register synchronization...")

	snapshot, err := uc.register.FetchRegister(ctx, uc.newID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch register: %w", err)
	}

	points, err := uc.repo.WaterPoints.Read(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(points))
	for _, wp := range points {
		known[inventory.Normalize(wp.Name)] = true
	}

	result := &SyncResult{Fetched: len(snapshot.Points), Skipped: snapshot.Skipped}
	fresh := make([]entities.WaterPoint, 0, len(snapshot.Points))
	for _, wp := range snapshot.Points {
		key := inventory.Normalize(wp.Name)
		if known[key] {
			result.Duplicates++
			continue
		}
		known[key] = true
		fresh = append(fresh, wp)
	}

	if len(fresh) > 0 {
		if err := uc.repo.WaterPoints.AddMany(ctx, fresh); err != nil {
			return nil, fmt.Errorf("failed to save register water points: %w", err)
		}
	}
	result.Added = len(fresh)
	log.Printf("Register synchronization done: %d fetched, %d added, %d duplicates, %d skipped",
		result.Fetched, result.Added, result.Duplicates, result.Skipped)
	return result, nil
}
