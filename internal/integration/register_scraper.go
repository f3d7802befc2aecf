// Package integration handles external service interactions
package integration

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/inventory"
)

// RegisterSnapshot is the content of a published water point register
type RegisterSnapshot struct {
	UpdatedAt time.Time // zero when the page does not say
	Points    []entities.WaterPoint
	Rows      int
	Skipped   int
}

// RegisterScraper reads the water point register a partner publishes as an HTML table
type RegisterScraper struct {
	sourceURL string
	client    *http.Client
	location  *time.Location
}

// NewRegisterScraper creates a scraper for the register at url
func NewRegisterScraper(url string) *RegisterScraper {
	loc, err := time.LoadLocation("Indian/Antananarivo")
	if err != nil {
		loc = time.FixedZone("EAT", 3*60*60)
	}
	return &RegisterScraper{
		sourceURL: url,
		client:    &http.Client{Timeout: 30 * time.Second},
		location:  loc,
	}
}

// FetchRegister downloads and parses the register. newID is called once per accepted row.
func (rs *RegisterScraper) FetchRegister(ctx context.Context, newID func() string) (*RegisterSnapshot, error) {
	if rs.sourceURL == "" {
		return nil, fmt.Errorf("register url is not configured")
	}

	log.Printf("Sending HTTP request to register %s", rs.sourceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rs.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	res, err := rs.client.Do(req)
	if err != nil {
		log.Printf("Error fetching register: %v", err)
		return nil, fmt.Errorf("failed to fetch the register: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Printf("Received unexpected status code: %d %s", res.StatusCode, res.Status)
		return nil, fmt.Errorf("unexpected status code: %d %s", res.StatusCode, res.Status)
	}

	log.Printf("Parsing register HTML document")
	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		log.Printf("Error parsing HTML: %v", err)
		return nil, fmt.Errorf("failed to parse the register: %w", err)
	}

	snapshot, err := rs.ParseRegister(doc, newID)
	if err != nil {
		return nil, err
	}
	snapshot.UpdatedAt = rs.ExtractUpdatedAt(doc)
	return snapshot, nil
}

// ParseRegister extracts water points from the first table of doc whose header
// row names a water point column
func (rs *RegisterScraper) ParseRegister(doc *goquery.Document, newID func() string) (*RegisterSnapshot, error) {
	snapshot := &RegisterSnapshot{}
	var columns map[inventory.Field]int

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		columns = nil
		table.Find("tr").Each(func(index int, row *goquery.Selection) {
			if columns == nil {
				headers := cellTexts(row.Find("th"))
				if len(headers) == 0 {
					headers = cellTexts(row.Find("td"))
				}
				mapped := inventory.MapHeaders(headers)
				if _, ok := mapped[inventory.FieldName]; ok {
					columns = mapped
				}
				return
			}

			cells := cellTexts(row.Find("td"))
			if len(cells) == 0 {
				return
			}
			snapshot.Rows++

			wp, err := inventory.BuildWaterPoint(inventory.RowFromCells(columns, cells), newID())
			if err != nil {
				log.Printf("Warning: Skipping register row %d: %v", index, err)
				snapshot.Skipped++
				return
			}
			snapshot.Points = append(snapshot.Points, wp)
		})
		// stop at the first table that had a usable header
		return columns == nil
	})

	if columns == nil {
		return nil, fmt.Errorf("no water point table found in register")
	}

	log.Printf("Register: processed %d rows, found %d valid entries, skipped %d invalid entries",
		snapshot.Rows, len(snapshot.Points), snapshot.Skipped)
	return snapshot, nil
}

var updatedAtRe = regexp.MustCompile(`(?i)mise\s+[àa]\s+jour\s*:?\s*(\d{1,2})[./](\d{1,2})[./](\d{4})(?:\D+(\d{1,2})[:h](\d{2}))?`)

// ExtractUpdatedAt finds the "Mise à jour : 18.04.2025 08:00" line of the page
func (rs *RegisterScraper) ExtractUpdatedAt(doc *goquery.Document) time.Time {
	var updated time.Time
	selectors := []string{"p.updated", "time", "p", "div", "body"}

	for _, selector := range selectors {
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if !updatedAtRe.MatchString(text) {
				return true
			}
			updated = rs.parseUpdatedAt(text)
			return updated.IsZero()
		})
		if !updated.IsZero() {
			log.Printf("Found register update time using selector '%s': %s", selector, updated.Format(time.RFC3339))
			return updated
		}
	}

	log.Printf("Register update time not found")
	return time.Time{}
}

func (rs *RegisterScraper) parseUpdatedAt(text string) time.Time {
	m := updatedAtRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}
	}
	var day, month, year, hour, minute int
	fmt.Sscanf(m[1], "%d", &day)
	fmt.Sscanf(m[2], "%d", &month)
	fmt.Sscanf(m[3], "%d", &year)
	if m[4] != "" {
		fmt.Sscanf(m[4], "%d", &hour)
		fmt.Sscanf(m[5], "%d", &minute)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, rs.location)
}

func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(c.Text()))
	})
	return texts
}
