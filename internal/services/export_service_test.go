package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/blob"
	"github.com/staydesk/backoffice-api/internal/models"
)

func TestRenderCSV(t *testing.T) {
	report := BuildReport(models.RangeThisMonth, reportReservations(), nil, nil, fixedNow)

	t.Run("Overview", func(t *testing.T) {
		body, err := RenderCSV(&report, SectionOverview)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		assert.Equal(t, "metric,value", lines[0])
		assert.Contains(t, lines, "totalRevenue,720.25")
		assert.Contains(t, lines, "totalBookings,4")
		assert.Contains(t, lines, "averageRate,180")
	})

	t.Run("Revenue By Source", func(t *testing.T) {
		body, err := RenderCSV(&report, SectionRevenueSource)
		require.NoError(t, err)
		assert.Equal(t, "source,revenue,share\nwebsite,600.25,83.3\nwalk-in,120.00,16.7\n", string(body))
	})

	t.Run("Room Types", func(t *testing.T) {
		body, err := RenderCSV(&report, SectionRoomTypes)
		require.NoError(t, err)
		assert.Equal(t, "roomType,bookings,revenue\ndeluxe,2,600.25\nstandard,2,120.00\n", string(body))
	})

	t.Run("Daily", func(t *testing.T) {
		body, err := RenderCSV(&report, SectionDaily)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		assert.Len(t, lines, 8)
		assert.Equal(t, "2024-06-15,1,400.00", lines[7])
	})

	t.Run("Unknown Section", func(t *testing.T) {
		_, err := RenderCSV(&report, "pie")
		assert.Error(t, err)
	})
}

func TestExportService_Export(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	store, err := blob.NewFilesystem(t.TempDir())
	require.NoError(t, err)

	guest := f.guest(t, "Ada", "Lovelace", false)
	room := f.room(t, "101", 1, models.RoomTypeDeluxe, models.RoomStatusOccupied)
	f.reservation(t, guest.ID, room.ID, models.ReservationStatusConfirmed, models.PaymentStatusPaid)

	svc := NewExportService(f.deps, NewReportService(f.deps, nil), store)

	t.Run("Room Types", func(t *testing.T) {
		res, err := svc.Export(ctx, models.RangeThisMonth, SectionRoomTypes)
		require.NoError(t, err)
		assert.Equal(t, "reports/thisMonth/room-types-20240615T103000Z.csv", res.Key)
		assert.Equal(t, blob.DriverFilesystem, res.Driver)

		rc, err := store.Get(ctx, res.Key)
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "roomType,bookings,revenue\ndeluxe,1,300.00\n", string(body))
		assert.Equal(t, int64(len(body)), res.Size)
	})

	t.Run("Same Key Twice Fails", func(t *testing.T) {
		_, err := svc.Export(ctx, models.RangeThisMonth, SectionRoomTypes)
		assert.True(t, errors.Is(err, blob.ErrExists))
	})

	t.Run("Invalid Section", func(t *testing.T) {
		_, err := svc.Export(ctx, models.RangeThisMonth, "summary")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "section")
	})

	t.Run("Export All", func(t *testing.T) {
		results, err := svc.ExportAll(ctx, models.RangeToday)
		require.NoError(t, err)
		require.Len(t, results, len(ExportSections))

		infos, err := store.List(ctx, "reports/today/")
		require.NoError(t, err)
		assert.Len(t, infos, len(ExportSections))
	})
}
