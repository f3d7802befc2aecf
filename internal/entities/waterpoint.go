// Package entities contains the core domain objects for the MIONJO application
package entities

// WaterPointType is the kind of installation
type WaterPointType string

const (
	WaterPointBorehole  WaterPointType = "forage"
	WaterPointWell      WaterPointType = "puits"
	WaterPointSpring    WaterPointType = "source"
	WaterPointReservoir WaterPointType = "réservoir"
	WaterPointPublicTap WaterPointType = "borne_fontaine"
)

// WaterPointStatus is the operational status of a water point
type WaterPointStatus string

const (
	StatusActive            WaterPointStatus = "actif"
	StatusMaintenance       WaterPointStatus = "maintenance"
	StatusFailed            WaterPointStatus = "panne"
	StatusInactive          WaterPointStatus = "inactif"
	StatusUnderConstruction WaterPointStatus = "en_construction"
)

// WaterQuality grades drinking water from excellente down to non_potable
type WaterQuality string

const (
	QualityExcellent  WaterQuality = "excellente"
	QualityGood       WaterQuality = "bonne"
	QualityAverage    WaterQuality = "moyenne"
	QualityPoor       WaterQuality = "médiocre"
	QualityNonPotable WaterQuality = "non_potable"
)

// UnknownName is displayed when a referenced water point does not exist
const UnknownName = "Inconnu"

// WaterPoint represents a physical water-supply installation
type WaterPoint struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Type             WaterPointType   `json:"type" yaml:"type"`
	Status           WaterPointStatus `json:"status" yaml:"status"`
	Latitude         float64          `json:"latitude" yaml:"latitude"`
	Longitude        float64          `json:"longitude" yaml:"longitude"`
	Region           string           `json:"region" yaml:"region"`
	Commune          string           `json:"commune" yaml:"commune"`
	Village          string           `json:"village" yaml:"village"`
	DailyCapacity    int              `json:"daily_capacity" yaml:"daily_capacity"`       // liters per day
	PopulationServed int              `json:"population_served" yaml:"population_served"` // inhabitants
	WaterQuality     WaterQuality     `json:"water_quality" yaml:"water_quality"`
	LastMaintenance  string           `json:"last_maintenance" yaml:"last_maintenance"` // YYYY-MM-DD
	NextMaintenance  string           `json:"next_maintenance" yaml:"next_maintenance"` // YYYY-MM-DD
}

// GetID returns the identifier of the water point
func (w WaterPoint) GetID() string { return w.ID }

// NameOf returns the name of a possibly missing water point
func NameOf(wp *WaterPoint) string {
	if wp == nil {
		return UnknownName
	}
	return wp.Name
}
