package inventory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abelzeko/mionjo/internal/entities"
)

// Defaults applied to fields missing from an imported row
const (
	DefaultRegion   = "Androy"
	DefaultType     = entities.WaterPointBorehole
	DefaultStatus   = entities.StatusActive
	DefaultQuality  = entities.QualityGood
	DefaultCapacity = 1000
	// PopulationRatio is the liters per inhabitant per day used to estimate
	// population served when the row does not give it
	PopulationRatio = 20
)

// ErrMissingName is returned for rows without a name
var ErrMissingName = errors.New("missing name")

var (
	knownTypes = []entities.WaterPointType{
		entities.WaterPointBorehole, entities.WaterPointWell, entities.WaterPointSpring,
		entities.WaterPointReservoir, entities.WaterPointPublicTap,
	}
	knownStatuses = []entities.WaterPointStatus{
		entities.StatusActive, entities.StatusMaintenance, entities.StatusFailed,
		entities.StatusInactive, entities.StatusUnderConstruction,
	}
	knownQualities = []entities.WaterQuality{
		entities.QualityExcellent, entities.QualityGood, entities.QualityAverage,
		entities.QualityPoor, entities.QualityNonPotable,
	}
)

// Row holds the raw cell values of one inventory row, keyed by field
type Row map[Field]string

// RowFromCells picks the mapped columns out of cells
func RowFromCells(columns map[Field]int, cells []string) Row {
	row := make(Row, len(columns))
	for f, i := range columns {
		if i < len(cells) {
			row[f] = strings.TrimSpace(cells[i])
		}
	}
	return row
}

// BuildWaterPoint turns a row into a water point, fabricating missing fields
// with the import defaults. It fails on rows that cannot be interpreted.
func BuildWaterPoint(row Row, id string) (entities.WaterPoint, error) {
	wp := entities.WaterPoint{
		ID:      id,
		Name:    row[FieldName],
		Region:  valueOr(row[FieldRegion], DefaultRegion),
		Commune: row[FieldCommune],
		Village: row[FieldVillage],
	}
	if wp.Name == "" {
		return wp, ErrMissingName
	}

	var err error
	if wp.Type, err = parseEnum(row[FieldType], knownTypes, DefaultType); err != nil {
		return wp, fmt.Errorf("type: %w", err)
	}
	if wp.Status, err = parseEnum(row[FieldStatus], knownStatuses, DefaultStatus); err != nil {
		return wp, fmt.Errorf("status: %w", err)
	}
	if wp.WaterQuality, err = parseEnum(row[FieldQuality], knownQualities, DefaultQuality); err != nil {
		return wp, fmt.Errorf("quality: %w", err)
	}
	if wp.Latitude, err = parseCoordinate(row[FieldLatitude], 90); err != nil {
		return wp, fmt.Errorf("latitude: %w", err)
	}
	if wp.Longitude, err = parseCoordinate(row[FieldLongitude], 180); err != nil {
		return wp, fmt.Errorf("longitude: %w", err)
	}
	if wp.DailyCapacity, err = parseInt(row[FieldCapacity], DefaultCapacity); err != nil {
		return wp, fmt.Errorf("capacity: %w", err)
	}
	if wp.PopulationServed, err = parseInt(row[FieldPopulation], wp.DailyCapacity/PopulationRatio); err != nil {
		return wp, fmt.Errorf("population: %w", err)
	}
	return wp, nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseEnum[E ~string](raw string, known []E, def E) (E, error) {
	if raw == "" {
		return def, nil
	}
	n := Normalize(raw)
	for _, k := range known {
		if Normalize(string(k)) == n {
			return k, nil
		}
	}
	return def, fmt.Errorf("unknown value %q", raw)
}

// parseCoordinate reads a decimal degree within [-limit, limit]
func parseCoordinate(raw string, limit float64) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	f, err := parseFloat(raw)
	if err != nil {
		return 0, err
	}
	if f < -limit || f > limit {
		return 0, fmt.Errorf("%v is out of range", f)
	}
	return f, nil
}

// parseFloat accepts a decimal comma and rejects NaN and infinities, which
// cannot be stored as JSON
func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return f, nil
}

// parseInt reads a count between 0 and math.MaxInt32, ignoring thousands
// separators. Decimal values are truncated.
func parseInt(raw string, def int) (int, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\u202f' {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return def, nil
	}
	f, err := parseFloat(cleaned)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%s is out of range", cleaned)
	}
	return int(f), nil
}
