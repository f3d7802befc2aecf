// Package inventory converts water point inventories to and from tabular
// formats (CSV files, HTML registers).
package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is a water point attribute found in a tabular inventory
type Field int

const (
	FieldUnknown Field = iota
	FieldName
	FieldType
	FieldStatus
	FieldRegion
	FieldCommune
	FieldVillage
	FieldLatitude
	FieldLongitude
	FieldCapacity
	FieldQuality
	FieldPopulation
)

// aliases maps normalized header names to fields
var aliases = map[string]Field{
	"nom":               FieldName,
	"name":              FieldName,
	"type":              FieldType,
	"status":            FieldStatus,
	"statut":            FieldStatus,
	"region":            FieldRegion,
	"commune":           FieldCommune,
	"village":           FieldVillage,
	"localite":          FieldVillage,
	"latitude":          FieldLatitude,
	"lat":               FieldLatitude,
	"longitude":         FieldLongitude,
	"lng":               FieldLongitude,
	"lon":               FieldLongitude,
	"long":              FieldLongitude,
	"capacite_l/j":      FieldCapacity,
	"capacite":          FieldCapacity,
	"capacity":          FieldCapacity,
	"daily_capacity":    FieldCapacity,
	"qualite_eau":       FieldQuality,
	"qualite":           FieldQuality,
	"quality":           FieldQuality,
	"water_quality":     FieldQuality,
	"population":        FieldPopulation,
	"population_served": FieldPopulation,
}

// Normalize folds case and accents and joins words with underscores, so that
// "Capacité L/j" and "capacite_l/j" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)
	return strings.Join(strings.Fields(strings.ReplaceAll(folded, "_", " ")), "_")
}

// MatchHeader returns the field a header names, or FieldUnknown
func MatchHeader(header string) Field {
	return aliases[Normalize(strings.TrimPrefix(header, "\ufeff"))]
}

// MapHeaders returns the column index of every recognized field. The first
// occurrence of a field wins.
func MapHeaders(headers []string) map[Field]int {
	columns := make(map[Field]int)
	for i, h := range headers {
		f := MatchHeader(h)
		if f == FieldUnknown {
			continue
		}
		if _, seen := columns[f]; !seen {
			columns[f] = i
		}
	}
	return columns
}

// Contains reports whether needle occurs in haystack ignoring case and accents
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
