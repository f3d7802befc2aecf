package usecases

import (
	"context"
	"sort"

	"github.com/abelzeko/mionjo/internal/entities"
)

// Dashboard list sizes
const (
	UrgentReportsLimit       = 5
	UpcomingMaintenanceLimit = 5
	TopRisksLimit            = 3
)

// DashboardFilter narrows the water point figures. Search is ignored.
type DashboardFilter = WaterPointFilter

// Summary is the overview shown on the dashboard
type Summary struct {
	TotalWaterPoints    int                                `json:"total_water_points"`
	ByStatus            map[entities.WaterPointStatus]int `json:"by_status"`
	ActivePercent       int                                `json:"active_percent"`
	PopulationServed    int                                `json:"population_served"`
	UrgentReports       []ReportView                       `json:"urgent_reports"`
	UpcomingMaintenance []MaintenanceView                  `json:"upcoming_maintenance"`
	TopRisks            []PredictionView                   `json:"top_risks"`
	UnreadNotifications int                                `json:"unread_notifications"`
}

// DashboardUseCase aggregates the figures of the other use cases
type DashboardUseCase struct {
	waterPoints   *WaterPointUseCase
	reports       *ReportUseCase
	maintenance   *MaintenanceUseCase
	predictions   *PredictionUseCase
	notifications *NotificationUseCase
}

// NewDashboardUseCase creates a new dashboard use case
func NewDashboardUseCase(wp *WaterPointUseCase, r *ReportUseCase, m *MaintenanceUseCase, p *PredictionUseCase, n *NotificationUseCase) *DashboardUseCase {
	return &DashboardUseCase{
		waterPoints:   wp,
		reports:       r,
		maintenance:   m,
		predictions:   p,
		notifications: n,
	}
}

// Summary computes the dashboard. Status and type of filter apply to the water
// point figures only; the lists are global.
func (uc *DashboardUseCase) Summary(ctx context.Context, filter DashboardFilter) (*Summary, error) {
	filter.Search = ""
	points, err := uc.waterPoints.ListWaterPoints(ctx, filter)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		TotalWaterPoints: len(points),
		ByStatus:         make(map[entities.WaterPointStatus]int),
	}
	for _, wp := range points {
		s.ByStatus[wp.Status]++
		s.PopulationServed += wp.PopulationServed
	}
	if s.TotalWaterPoints > 0 {
		s.ActivePercent = s.ByStatus[entities.StatusActive] * 100 / s.TotalWaterPoints
	}

	reports, err := uc.reports.ListReports(ctx, "")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Priority.Rank() < reports[j].Priority.Rank()
	})
	s.UrgentReports = head(reports, UrgentReportsLimit)

	if s.UpcomingMaintenance, err = uc.maintenance.Upcoming(ctx, UpcomingMaintenanceLimit); err != nil {
		return nil, err
	}

	preds, err := uc.predictions.ListPredictions(ctx)
	if err != nil {
		return nil, err
	}
	s.TopRisks = head(preds, TopRisksLimit)

	if s.UnreadNotifications, err = uc.notifications.UnreadCount(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
