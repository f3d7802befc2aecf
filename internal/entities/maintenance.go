package entities

// MaintenanceType is the kind of intervention
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "préventive"
	MaintenanceCorrective MaintenanceType = "corrective"
	MaintenanceUrgent     MaintenanceType = "urgence"
	MaintenanceUpgrade    MaintenanceType = "amélioration"
)

// MaintenanceStatus tracks an intervention
type MaintenanceStatus string

const (
	MaintenancePlanned    MaintenanceStatus = "planifié"
	MaintenanceInProgress MaintenanceStatus = "en_cours"
	MaintenanceDone       MaintenanceStatus = "terminé"
)

// MaintenanceRecord is a scheduled or completed intervention on a water point
type MaintenanceRecord struct {
	ID              string            `json:"id" yaml:"id"`
	WaterPointID    string            `json:"water_point_id" yaml:"water_point_id"`
	MaintenanceType MaintenanceType   `json:"maintenance_type" yaml:"maintenance_type"`
	Status          MaintenanceStatus `json:"status" yaml:"status"`
	ScheduledDate   string            `json:"scheduled_date" yaml:"scheduled_date"` // YYYY-MM-DD
	Priority        Priority          `json:"priority" yaml:"priority"`
	Description     string            `json:"description" yaml:"description"`
}

// GetID returns the identifier of the record
func (m MaintenanceRecord) GetID() string { return m.ID }
