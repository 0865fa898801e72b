package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
)

// snapshot is a point-in-time read of every collection a page aggregates
type snapshot struct {
	Reservations []models.Reservation
	Rooms        []models.Room
	Guests       []models.Guest
	Tasks        []models.HousekeepingTask
}

// loadSnapshot lists the collections concurrently. Any failed list fails the
// whole load; a partial snapshot is never returned.
func loadSnapshot(ctx context.Context, store database.RecordStore, withTasks bool) (*snapshot, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.List(gctx, database.CollectionReservations, &snap.Reservations)
	})
	g.Go(func() error {
		return store.List(gctx, database.CollectionRooms, &snap.Rooms)
	})
	g.Go(func() error {
		return store.List(gctx, database.CollectionGuests, &snap.Guests)
	})
	if withTasks {
		g.Go(func() error {
			return store.List(gctx, database.CollectionTasks, &snap.Tasks)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dir := newDirectory(snap.Guests, snap.Rooms)
	for i := range snap.Reservations {
		dir.reservation(&snap.Reservations[i])
	}
	for i := range snap.Tasks {
		dir.task(&snap.Tasks[i])
	}
	return &snap, nil
}
