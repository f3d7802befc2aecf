package entities

// ReportType is the kind of incident observed in the field
type ReportType string

const (
	ReportFailure          ReportType = "panne"
	ReportWaterQuality     ReportType = "qualité_eau"
	ReportAccessDifficulty ReportType = "accès_difficile"
	ReportVandalism        ReportType = "vandalisme"
	ReportDrought          ReportType = "tarissement"
	ReportLeak             ReportType = "fuite"
)

// Priority is shared by field reports, maintenance records and notifications
type Priority string

const (
	PriorityLow      Priority = "basse"
	PriorityNormal   Priority = "normale"
	PriorityHigh     Priority = "haute"
	PriorityCritical Priority = "critique"
)

// Rank orders priorities from most to least urgent; unknown values sort last
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// IsUrgent reports whether the priority warrants an alert
func (p Priority) IsUrgent() bool {
	return p == PriorityHigh || p == PriorityCritical
}

// ReportStatus tracks the handling of a field report
type ReportStatus string

const (
	ReportNew        ReportStatus = "nouveau"
	ReportInProgress ReportStatus = "en_cours"
	ReportResolved   ReportStatus = "résolu"
)

// FieldReport is an incident submitted from the field about a water point
type FieldReport struct {
	ID           string       `json:"id" yaml:"id"`
	WaterPointID string       `json:"water_point_id" yaml:"water_point_id"`
	ReportType   ReportType   `json:"report_type" yaml:"report_type"`
	Priority     Priority     `json:"priority" yaml:"priority"`
	Status       ReportStatus `json:"status" yaml:"status"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	CreatedAt    string       `json:"created_at" yaml:"created_at"` // YYYY-MM-DD HH:MM
}

// GetID returns the identifier of the report
func (r FieldReport) GetID() string { return r.ID }
