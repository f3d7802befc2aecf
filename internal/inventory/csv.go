package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/abelzeko/mionjo/internal/entities"
)

// ExportHeader is the header row written by Export
var ExportHeader = []string{
	"Nom", "Type", "Status", "Région", "Commune", "Village",
	"Latitude", "Longitude", "Capacité_L/j", "Qualité_Eau",
}

// ImportResult summarizes an import
type ImportResult struct {
	Points   []entities.WaterPoint
	Imported int
	Skipped  int
}

// Export writes points as CSV with string fields quoted
func Export(w io.Writer, points []entities.WaterPoint) error {
	var b strings.Builder
	b.WriteString(strings.Join(ExportHeader, ","))
	b.WriteString("\n")
	for _, p := range points {
		fields := []string{
			quote(p.Name),
			quote(string(p.Type)),
			quote(string(p.Status)),
			quote(p.Region),
			quote(p.Commune),
			quote(p.Village),
			strconv.FormatFloat(p.Latitude, 'f', -1, 64),
			strconv.FormatFloat(p.Longitude, 'f', -1, 64),
			strconv.Itoa(p.DailyCapacity),
			quote(string(p.WaterQuality)),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// Import reads a CSV inventory. newID is called once per accepted row.
// Rows that cannot be interpreted are skipped and counted.
func Import(r io.Reader, newID func() string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv file")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	columns := MapHeaders(headers)
	if _, ok := columns[FieldName]; !ok {
		return nil, fmt.Errorf("csv header has no name column: %v", headers)
	}

	result := &ImportResult{}
	line := 1
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Printf("Warning: Skipping unreadable csv line %d: %v", line, err)
			result.Skipped++
			continue
		}
		if isBlank(cells) {
			continue
		}

		wp, err := BuildWaterPoint(RowFromCells(columns, cells), newID())
		if err != nil {
			log.Printf("Warning: Skipping csv line %d: %v", line, err)
			result.Skipped++
			continue
		}
		result.Points = append(result.Points, wp)
		result.Imported++
	}

	log.Printf("CSV import: imported %d water points, skipped %d rows", result.Imported, result.Skipped)
	return result, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
