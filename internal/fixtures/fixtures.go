// Package fixtures holds the sample dataset used to seed empty collections
package fixtures

import (
	_ "embed"
	"fmt"

	"github.com/abelzeko/mionjo/internal/entities"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Dataset is the full seed dataset
type Dataset struct {
	WaterPoints        []entities.WaterPoint        `yaml:"water_points"`
	Users              []entities.User              `yaml:"users"`
	FieldReports       []entities.FieldReport       `yaml:"field_reports"`
	MaintenanceRecords []entities.MaintenanceRecord `yaml:"maintenance_records"`
	Predictions        []entities.AIPrediction      `yaml:"predictions"`
	CommunityPosts     []entities.CommunityPost     `yaml:"community_posts"`
}

// Load parses the embedded dataset. Each call returns fresh slices.
func Load() (*Dataset, error) {
	return Parse(fixturesYAML)
}

// Parse decodes a dataset from YAML
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &ds, nil
}

// MustLoad is Load for the embedded dataset, which is known to be valid
func MustLoad() *Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}
