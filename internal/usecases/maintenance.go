package usecases

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/notify"
	"github.com/abelzeko/mionjo/internal/repository"
)

// MaintenanceView is a maintenance record with its water point name resolved
type MaintenanceView struct {
	entities.MaintenanceRecord
	WaterPointName string `json:"water_point_name"`
}

// MaintenanceRequest describes an intervention to schedule
type MaintenanceRequest struct {
	WaterPointID    string                   `json:"water_point_id" validate:"required"`
	MaintenanceType entities.MaintenanceType `json:"maintenance_type" validate:"required,oneof=préventive corrective urgence amélioration"`
	ScheduledDate   string                   `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	Priority        entities.Priority        `json:"priority" validate:"required,oneof=basse normale haute critique"`
	Description     string                   `json:"description" validate:"max=2000"`
}

// ScheduleResult is the outcome of scheduling an intervention
type ScheduleResult struct {
	Record       entities.MaintenanceRecord `json:"record"`
	Notification entities.Notification      `json:"notification"`
}

// MaintenanceUseCase manages maintenance records
type MaintenanceUseCase struct {
	repo     *repository.Repository
	notifier *notify.Notifier
	now      func() time.Time
	newID    func() string
}

// NewMaintenanceUseCase creates a new maintenance use case
func NewMaintenanceUseCase(repo *repository.Repository, now func() time.Time, newID func() string) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		repo:     repo,
		notifier: notify.NewNotifier(repo.Notifications),
		now:      now,
		newID:    newID,
	}
}

// ListMaintenance returns the records with the given status, or all of them
// when status is empty
func (uc *MaintenanceUseCase) ListMaintenance(ctx context.Context, status entities.MaintenanceStatus) ([]MaintenanceView, error) {
	records, err := uc.repo.Maintenance.Read(ctx)
	if err != nil {
		return nil, err
	}
	names, err := waterPointNames(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	views := make([]MaintenanceView, 0, len(records))
	for _, m := range records {
		if status != "" && m.Status != status {
			continue
		}
		views = append(views, MaintenanceView{MaintenanceRecord: m, WaterPointName: names.lookup(m.WaterPointID)})
	}
	return views, nil
}

// Upcoming returns at most limit planned interventions, earliest first
func (uc *MaintenanceUseCase) Upcoming(ctx context.Context, limit int) ([]MaintenanceView, error) {
	planned, err := uc.ListMaintenance(ctx, entities.MaintenancePlanned)
	if err != nil {
		return nil, err
	}
	// YYYY-MM-DD sorts chronologically as a string
	sort.SliceStable(planned, func(i, j int) bool {
		return planned[i].ScheduledDate < planned[j].ScheduledDate
	})
	if len(planned) > limit {
		planned = planned[:limit]
	}
	return planned, nil
}

// ScheduleMaintenance stores a planned intervention and notifies the technicians.
// Every scheduling is notified whatever its priority. The water point is
// resolved before anything is written.
func (uc *MaintenanceUseCase) ScheduleMaintenance(ctx context.Context, req MaintenanceRequest) (*ScheduleResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	wp, err := uc.repo.WaterPoints.Find(ctx, req.WaterPointID)
	if err != nil {
		return nil, err
	}

	record := entities.MaintenanceRecord{
		ID:              uc.newID(),
		WaterPointID:    req.WaterPointID,
		MaintenanceType: req.MaintenanceType,
		Status:          entities.MaintenancePlanned,
		ScheduledDate:   req.ScheduledDate,
		Priority:        req.Priority,
		Description:     req.Description,
	}
	if err := uc.repo.Maintenance.Add(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save maintenance record: %w", err)
	}
	log.Printf("Scheduled %s maintenance %s on %s for water point %s",
		record.MaintenanceType, record.ID, record.ScheduledDate, record.WaterPointID)

	n := notify.ForMaintenance(record, wp, uc.now())
	if err := uc.notifier.Send(ctx, n); err != nil {
		return nil, fmt.Errorf("maintenance %s saved but alert failed: %w", record.ID, err)
	}
	return &ScheduleResult{Record: record, Notification: n}, nil
}
