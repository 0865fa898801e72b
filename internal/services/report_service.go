package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/models"
)

// ReportCache stores computed reports between mutations
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

// ReportService aggregates reservations, rooms and guests over a date range
type ReportService struct {
	Deps
	cache ReportCache

	// mu orders cache writes against invalidation. generation counts
	// observed writes so a report built across one is never cached.
	mu         sync.Mutex
	generation uint64
}

// NewReportService creates a new report service. cache may be nil.
func NewReportService(deps Deps, cache ReportCache) *ReportService {
	return &ReportService{Deps: deps.withDefaults(), cache: cache}
}

// Build returns the report for rng, served from cache when possible.
// An empty range means thisMonth.
func (s *ReportService) Build(ctx context.Context, rng models.ReportRange) (*models.Report, error) {
	if rng == "" {
		rng = models.RangeThisMonth
	}
	if !rng.IsValid() {
		return nil, NewValidationError("range", "must be one of today, week, thisMonth, lastMonth")
	}

	now := s.Clock()
	key := fmt.Sprintf("report:%s:%s", rng, models.DateOf(now))

	if s.cache != nil {
		var cached models.Report
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("Report cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	generation := s.currentGeneration()
	snap, err := loadSnapshot(ctx, s.Store, false)
	if err != nil {
		return nil, err
	}
	report := BuildReport(rng, snap.Reservations, snap.Rooms, snap.Guests, now)

	if s.cache != nil {
		s.remember(ctx, key, report, generation)
	}
	return &report, nil
}

func (s *ReportService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// remember caches report unless a write landed since generation was read
func (s *ReportService) remember(ctx context.Context, key string, report models.Report, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		s.Logger.WithField("key", key).Debug("Report built across a write, not cached")
		return
	}
	if err := s.cache.Set(ctx, key, report); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("Report cache write failed")
	}
}

// OnChange drops every cached report after any committed write
func (s *ReportService) OnChange(ctx context.Context, ev ChangeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate report cache after %s %s: %w", ev.Kind, ev.Collection, err)
	}
	s.Logger.WithFields(logrus.Fields{
		"collection": ev.Collection,
		"kind":       ev.Kind,
	}).Debug("Report cache invalidated")
	return nil
}

// ReportWindow returns the half-open interval [from, to) a range covers
func ReportWindow(rng models.ReportRange, now time.Time) (time.Time, time.Time) {
	switch rng {
	case models.RangeToday:
		start := startOfDay(now)
		return start, start.AddDate(0, 0, 1)
	case models.RangeWeek:
		return now.AddDate(0, 0, -7), now.Add(time.Nanosecond)
	case models.RangeLastMonth:
		end := startOfMonth(now)
		return end.AddDate(0, -1, 0), end
	default:
		start := startOfMonth(now)
		return start, start.AddDate(0, 1, 0)
	}
}

// BuildReport computes every report metric for rng as of now
func BuildReport(rng models.ReportRange, reservations []models.Reservation, rooms []models.Room, guests []models.Guest, now time.Time) models.Report {
	from, to := ReportWindow(rng, now)
	report := models.Report{
		Range:           rng,
		From:            from.Format(time.RFC3339),
		To:              to.Format(time.RFC3339),
		RevenueBySource: []models.SourceRevenue{},
		RoomTypes:       []models.RoomTypePerformance{},
	}

	bySource := make(map[models.BookingSource]float64)
	typeIndex := make(map[string]int)
	var revenue float64

	for _, r := range reservations {
		if !within(r.CreatedAt, from, to) {
			continue
		}
		report.TotalBookings++
		paid := r.PaymentStatus == models.PaymentStatusPaid
		if paid {
			revenue += r.TotalAmount
			bySource[r.Source] += r.TotalAmount
		}

		i, ok := typeIndex[r.RoomType]
		if !ok {
			i = len(report.RoomTypes)
			typeIndex[r.RoomType] = i
			report.RoomTypes = append(report.RoomTypes, models.RoomTypePerformance{RoomType: r.RoomType})
		}
		report.RoomTypes[i].Bookings++
		if paid {
			report.RoomTypes[i].Revenue += r.TotalAmount
		}
	}

	report.TotalRevenue = money(revenue)
	if report.TotalBookings > 0 {
		report.AverageRate = math.Round(revenue / float64(report.TotalBookings))
	}
	for i := range report.RoomTypes {
		report.RoomTypes[i].Revenue = money(report.RoomTypes[i].Revenue)
	}
	for _, source := range models.BookingSources {
		if amount, ok := bySource[source]; ok {
			report.RevenueBySource = append(report.RevenueBySource, models.SourceRevenue{Source: source, Revenue: money(amount)})
		}
	}

	occupied := 0
	for _, room := range rooms {
		if room.Status == models.RoomStatusOccupied {
			occupied++
		}
	}
	report.OccupancyRate = percent(occupied, len(rooms))

	for _, g := range guests {
		if within(g.CreatedAt, from, to) {
			report.NewGuests++
		}
	}

	report.LastSevenDays = lastSevenDays(reservations, now)
	return report
}

// lastSevenDays buckets every reservation by creation day, oldest day first
func lastSevenDays(reservations []models.Reservation, now time.Time) []models.DailyPoint {
	points := make([]models.DailyPoint, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := models.DateOf(now.AddDate(0, 0, i-6)).String()
		points[i].Date = day
		index[day] = i
	}

	for _, r := range reservations {
		i, ok := index[models.DateOf(r.CreatedAt.In(now.Location())).String()]
		if !ok {
			continue
		}
		points[i].Bookings++
		if r.PaymentStatus == models.PaymentStatusPaid {
			points[i].Revenue += r.TotalAmount
		}
	}
	for i := range points {
		points[i].Revenue = money(points[i].Revenue)
	}
	return points
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// within reports whether t falls in [from, to)
func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// money rounds to cents
func money(v float64) float64 {
	return math.Round(v*100) / 100
}
