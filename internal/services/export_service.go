package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/blob"
	"github.com/staydesk/backoffice-api/internal/models"
)

// ExportSection names the part of a report rendered into a CSV file
type ExportSection string

const (
	SectionOverview      ExportSection = "overview"
	SectionRevenueSource ExportSection = "revenue-by-source"
	SectionRoomTypes     ExportSection = "room-types"
	SectionDaily         ExportSection = "daily"
)

// ExportSections lists every section in export order
var ExportSections = []ExportSection{SectionOverview, SectionRevenueSource, SectionRoomTypes, SectionDaily}

// IsValid checks the section against the known set
func (s ExportSection) IsValid() bool {
	for _, known := range ExportSections {
		if s == known {
			return true
		}
	}
	return false
}

// ExportResult describes a CSV object written to the blob store
type ExportResult struct {
	Key     string             `json:"key"`
	Range   models.ReportRange `json:"range"`
	Section ExportSection      `json:"section"`
	Size    int64              `json:"size"`
	Driver  blob.Driver        `json:"driver"`
}

// ExportService renders report sections as CSV into a blob store
type ExportService struct {
	Deps
	reports *ReportService
	blobs   blob.Store
}

// NewExportService creates a new export service
func NewExportService(deps Deps, reports *ReportService, blobs blob.Store) *ExportService {
	return &ExportService{Deps: deps.withDefaults(), reports: reports, blobs: blobs}
}

// Export builds the report for rng and stores one section of it.
// An empty section means overview.
func (s *ExportService) Export(ctx context.Context, rng models.ReportRange, section ExportSection) (*ExportResult, error) {
	if section == "" {
		section = SectionOverview
	}
	if !section.IsValid() {
		return nil, NewValidationError("section", "must be one of overview, revenue-by-source, room-types, daily")
	}

	report, err := s.reports.Build(ctx, rng)
	if err != nil {
		return nil, err
	}

	body, err := RenderCSV(report, section)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%s/%s-%s.csv", report.Range, section, s.Clock().UTC().Format("20060102T150405Z"))
	info, err := s.blobs.Put(ctx, key, bytes.NewReader(body), "text/csv")
	if err != nil {
		return nil, fmt.Errorf("store export %s: %w", key, err)
	}

	s.Logger.WithFields(logrus.Fields{
		"key":     info.Key,
		"size":    info.Size,
		"driver":  s.blobs.Driver(),
		"section": section,
	}).Info("Report exported")

	return &ExportResult{
		Key:     info.Key,
		Range:   report.Range,
		Section: section,
		Size:    info.Size,
		Driver:  s.blobs.Driver(),
	}, nil
}

// ExportAll stores every section of the rng report
func (s *ExportService) ExportAll(ctx context.Context, rng models.ReportRange) ([]ExportResult, error) {
	results := make([]ExportResult, 0, len(ExportSections))
	for _, section := range ExportSections {
		res, err := s.Export(ctx, rng, section)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// RenderCSV writes one report section with a header row
func RenderCSV(report *models.Report, section ExportSection) ([]byte, error) {
	var rows [][]string
	switch section {
	case SectionOverview:
		rows = [][]string{
			{"metric", "value"},
			{"range", string(report.Range)},
			{"from", report.From},
			{"to", report.To},
			{"totalRevenue", formatMoney(report.TotalRevenue)},
			{"totalBookings", strconv.Itoa(report.TotalBookings)},
			{"occupancyRate", strconv.FormatFloat(report.OccupancyRate, 'f', 1, 64)},
			{"newGuests", strconv.Itoa(report.NewGuests)},
			{"averageRate", strconv.FormatFloat(report.AverageRate, 'f', 0, 64)},
		}
	case SectionRevenueSource:
		rows = [][]string{{"source", "revenue", "share"}}
		for _, sr := range report.RevenueBySource {
			share := 0.0
			if report.TotalRevenue > 0 {
				share = sr.Revenue / report.TotalRevenue * 100
			}
			rows = append(rows, []string{string(sr.Source), formatMoney(sr.Revenue), strconv.FormatFloat(share, 'f', 1, 64)})
		}
	case SectionRoomTypes:
		rows = [][]string{{"roomType", "bookings", "revenue"}}
		for _, rt := range report.RoomTypes {
			rows = append(rows, []string{rt.RoomType, strconv.Itoa(rt.Bookings), formatMoney(rt.Revenue)})
		}
	case SectionDaily:
		rows = [][]string{{"date", "bookings", "revenue"}}
		for _, d := range report.LastSevenDays {
			rows = append(rows, []string{d.Date, strconv.Itoa(d.Bookings), formatMoney(d.Revenue)})
		}
	default:
		return nil, NewValidationError("section", "unknown section "+string(section))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("render %s csv: %w", section, err)
	}
	return buf.Bytes(), nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
