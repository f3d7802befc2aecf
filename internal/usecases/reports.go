package usecases

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/notify"
	"github.com/abelzeko/mionjo/internal/repository"
)

// ReportView is a field report with its water point name resolved
type ReportView struct {
	entities.FieldReport
	WaterPointName string `json:"water_point_name"`
}

// ReportRequest describes a new field report
type ReportRequest struct {
	WaterPointID string              `json:"water_point_id" validate:"required"`
	ReportType   entities.ReportType `json:"report_type" validate:"required,oneof=panne qualité_eau accès_difficile vandalisme tarissement fuite"`
	Priority     entities.Priority   `json:"priority" validate:"required,oneof=basse normale haute critique"`
	Title        string              `json:"title" validate:"required,max=200"`
	Description  string              `json:"description" validate:"required"`
}

// ReportResult is the outcome of a report creation. Notification is nil when
// the priority does not warrant an alert.
type ReportResult struct {
	Report       entities.FieldReport   `json:"report"`
	Notification *entities.Notification `json:"notification,omitempty"`
}

// ReportUseCase manages field reports
type ReportUseCase struct {
	repo     *repository.Repository
	notifier *notify.Notifier
	now      func() time.Time
	newID    func() string
}

// NewReportUseCase creates a new report use case
func NewReportUseCase(repo *repository.Repository, now func() time.Time, newID func() string) *ReportUseCase {
	return &ReportUseCase{
		repo:     repo,
		notifier: notify.NewNotifier(repo.Notifications),
		now:      now,
		newID:    newID,
	}
}

// ListReports returns the reports with the given status, or all of them when
// status is empty
func (uc *ReportUseCase) ListReports(ctx context.Context, status entities.ReportStatus) ([]ReportView, error) {
	reports, err := uc.repo.Reports.Read(ctx)
	if err != nil {
		return nil, err
	}
	names, err := waterPointNames(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		if status != "" && r.Status != status {
			continue
		}
		views = append(views, ReportView{FieldReport: r, WaterPointName: names.lookup(r.WaterPointID)})
	}
	return views, nil
}

// CreateReport stores a new report and raises an alert for haute and critique
// priorities. The water point is resolved before anything is written. If the
// alert cannot be stored, the report stays saved and the error is returned.
func (uc *ReportUseCase) CreateReport(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	wp, err := uc.repo.WaterPoints.Find(ctx, req.WaterPointID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	report := entities.FieldReport{
		ID:           uc.newID(),
		WaterPointID: req.WaterPointID,
		ReportType:   req.ReportType,
		Priority:     req.Priority,
		Status:       entities.ReportNew,
		Title:        req.Title,
		Description:  req.Description,
		CreatedAt:    now.Format(notify.TimestampLayout),
	}
	if err := uc.repo.Reports.Add(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	log.Printf("Created %s report %s for water point %s", report.Priority, report.ID, report.WaterPointID)

	result := &ReportResult{Report: report}
	if n, ok := notify.ForFieldReport(report, wp, now); ok {
		if err := uc.notifier.Send(ctx, n); err != nil {
			return nil, fmt.Errorf("report %s saved but alert failed: %w", report.ID, err)
		}
		result.Notification = &n
	}
	return result, nil
}

// nameIndex resolves water point ids to names
type nameIndex map[string]string

func (idx nameIndex) lookup(id string) string {
	if name, ok := idx[id]; ok {
		return name
	}
	return entities.UnknownName
}

func waterPointNames(ctx context.Context, repo *repository.Repository) (nameIndex, error) {
	points, err := repo.WaterPoints.Read(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(nameIndex, len(points))
	for _, wp := range points {
		idx[wp.ID] = wp.Name
	}
	return idx, nil
}
