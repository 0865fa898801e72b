package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/lifecycle"
	"github.com/staydesk/backoffice-api/internal/models"
)

// ReservationService manages reservations and their guarded lifecycle
type ReservationService struct {
	Deps
	rooms  *RoomService
	guests *GuestService

	// coupleRooms makes check-in and check-out drive the room status
	coupleRooms bool
}

// NewReservationService creates a new reservation service
func NewReservationService(deps Deps, rooms *RoomService, guests *GuestService, coupleRooms bool) *ReservationService {
	return &ReservationService{
		Deps:        deps.withDefaults(),
		rooms:       rooms,
		guests:      guests,
		coupleRooms: coupleRooms,
	}
}

// List returns all reservations with display fields resolved, then filtered
func (s *ReservationService) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	var (
		reservations []models.Reservation
		guests       []models.Guest
		rooms        []models.Room
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Store.List(gctx, database.CollectionReservations, &reservations)
	})
	g.Go(func() error {
		return s.Store.List(gctx, database.CollectionGuests, &guests)
	})
	g.Go(func() error {
		return s.Store.List(gctx, database.CollectionRooms, &rooms)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dir := newDirectory(guests, rooms)
	for i := range reservations {
		dir.reservation(&reservations[i])
	}
	return FilterReservations(reservations, filter), nil
}

// Get returns a reservation by id with display fields resolved
func (s *ReservationService) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	r, err := s.raw(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReservationService) raw(ctx context.Context, id int64) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.Store.Get(ctx, database.CollectionReservations, id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReservationService) decorate(ctx context.Context, r *models.Reservation) error {
	var guests []models.Guest
	var rooms []models.Room

	guest, err := s.guests.Get(ctx, r.GuestID)
	switch {
	case err == nil:
		guests = append(guests, *guest)
	case !database.IsNotFound(err):
		return err
	}

	room, err := s.rooms.Get(ctx, r.RoomID)
	switch {
	case err == nil:
		rooms = append(rooms, *room)
	case !database.IsNotFound(err):
		return err
	}

	newDirectory(guests, rooms).reservation(r)
	return nil
}

// Create validates and stores a new reservation
func (s *ReservationService) Create(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("checkOutDate", err.Error())
	}
	if err := s.checkReferences(ctx, &req.GuestID, &req.RoomID); err != nil {
		return nil, err
	}

	fields := req.Fields()
	fields["createdAt"] = s.Clock().UTC()

	id, err := s.Store.Create(ctx, database.CollectionReservations, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	s.publish(ctx, database.CollectionReservations, ChangeCreated, id)
	return s.Get(ctx, id)
}

// CreateMany creates each reservation independently
func (s *ReservationService) CreateMany(ctx context.Context, reqs []models.CreateReservationRequest) ([]models.Reservation, error) {
	return createMany(ctx, reqs, s.Create)
}

func (s *ReservationService) checkReferences(ctx context.Context, guestID, roomID *int64) error {
	if guestID != nil {
		if _, err := s.guests.Get(ctx, *guestID); err != nil {
			return referenceCheck(err, "guestId", fmt.Sprintf("guest %d", *guestID))
		}
	}
	if roomID != nil {
		if _, err := s.rooms.Get(ctx, *roomID); err != nil {
			return referenceCheck(err, "roomId", fmt.Sprintf("room %d", *roomID))
		}
	}
	return nil
}

// Update applies a partial update. Status written here skips the lifecycle
// guards; date changes are checked against the stored counterpart.
func (s *ReservationService) Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.Reservation, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	fields := req.Fields()
	if err := requireFields(fields); err != nil {
		return nil, err
	}

	current, err := s.raw(ctx, id)
	if err != nil {
		return nil, err
	}

	checkIn, checkOut := current.CheckInDate, current.CheckOutDate
	if req.CheckInDate != nil {
		checkIn = *req.CheckInDate
	}
	if req.CheckOutDate != nil {
		checkOut = *req.CheckOutDate
	}
	if !checkOut.After(checkIn) {
		return nil, NewValidationError("checkOutDate", "checkOutDate must be after checkInDate")
	}
	if err := s.checkReferences(ctx, req.GuestID, req.RoomID); err != nil {
		return nil, err
	}

	if err := s.Store.Update(ctx, database.CollectionReservations, id, fields); err != nil {
		return nil, err
	}
	if req.Status != nil && models.ReservationStatus(*req.Status) != current.Status {
		s.publishTransition(ctx, database.CollectionReservations, id, "update", string(current.Status), *req.Status)
	} else {
		s.publish(ctx, database.CollectionReservations, ChangeUpdated, id)
	}
	return s.Get(ctx, id)
}

// Delete removes a reservation
func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Delete(ctx, database.CollectionReservations, id); err != nil {
		return err
	}
	s.publish(ctx, database.CollectionReservations, ChangeDeleted, id)
	return nil
}

// CheckIn moves a confirmed reservation to checked-in
func (s *ReservationService) CheckIn(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return s.Transition(ctx, id, lifecycle.ActionCheckIn)
}

// Cancel moves a confirmed reservation to cancelled
func (s *ReservationService) Cancel(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return s.Transition(ctx, id, lifecycle.ActionCancel)
}

// Confirm moves a pending reservation to confirmed
func (s *ReservationService) Confirm(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return s.Transition(ctx, id, lifecycle.ActionConfirm)
}

// CheckOut moves a checked-in reservation to checked-out
func (s *ReservationService) CheckOut(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return s.Transition(ctx, id, lifecycle.ActionCheckOut)
}

// Transition applies a guarded action. When the guard rejects it nothing is
// written, no error is returned, and the result has Changed set to false.
func (s *ReservationService) Transition(ctx context.Context, id int64, action lifecycle.Action) (*models.TransitionResult, error) {
	if !lifecycle.IsValidAction(action) {
		return nil, NewValidationError("action", fmt.Sprintf("unknown action %q", action))
	}

	current, err := s.raw(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := lifecycle.ApplyReservationAction(current.Status, action)
	if !ok {
		if err := s.decorate(ctx, current); err != nil {
			return nil, err
		}
		return &models.TransitionResult{Changed: false, From: current.Status, To: current.Status, Reservation: current}, nil
	}

	if err := s.Store.Update(ctx, database.CollectionReservations, id, models.Fields{"status": string(next)}); err != nil {
		return nil, err
	}
	s.publishTransition(ctx, database.CollectionReservations, id, string(action), string(current.Status), string(next))

	if s.coupleRooms {
		s.applyRoomCoupling(ctx, current, action)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.TransitionResult{Changed: true, From: current.Status, To: next, Reservation: updated}, nil
}

// applyRoomCoupling keeps the room and guest in step with a stay. Failures
// are logged; the reservation transition has already been committed.
func (s *ReservationService) applyRoomCoupling(ctx context.Context, r *models.Reservation, action lifecycle.Action) {
	var errs []error
	switch action {
	case lifecycle.ActionCheckIn:
		errs = append(errs, s.rooms.setStatus(ctx, r.RoomID, models.RoomStatusOccupied, string(action)))
	case lifecycle.ActionCheckOut:
		errs = append(errs, s.rooms.setStatus(ctx, r.RoomID, models.RoomStatusVacantDirty, string(action)))
		errs = append(errs, s.guests.AppendStay(ctx, r.GuestID, r.ID))
	}
	for _, err := range errs {
		if err != nil {
			s.Logger.WithFields(logrus.Fields{
				"reservation_id": r.ID,
				"action":         action,
				"error":          err.Error(),
			}).Warn("Room coupling failed")
		}
	}
}

// MarkOverduePayments flags unpaid reservations whose stay has ended.
// Returns how many reservations were updated.
func (s *ReservationService) MarkOverduePayments(ctx context.Context) (int, error) {
	var reservations []models.Reservation
	if err := s.Store.List(ctx, database.CollectionReservations, &reservations); err != nil {
		return 0, err
	}

	today := models.DateOf(s.Clock())
	marked := 0
	for _, r := range reservations {
		if r.PaymentStatus != models.PaymentStatusPending || r.Status == models.ReservationStatusCancelled {
			continue
		}
		if !r.CheckOutDate.Before(today) {
			continue
		}
		fields := models.Fields{"paymentStatus": string(models.PaymentStatusOverdue)}
		if err := s.Store.Update(ctx, database.CollectionReservations, r.ID, fields); err != nil {
			if database.IsNotFound(err) {
				continue
			}
			return marked, err
		}
		s.publish(ctx, database.CollectionReservations, ChangeUpdated, r.ID)
		marked++
	}
	return marked, nil
}

// Stats counts reservations per status
func (s *ReservationService) Stats(ctx context.Context) (*models.ReservationStats, error) {
	var reservations []models.Reservation
	if err := s.Store.List(ctx, database.CollectionReservations, &reservations); err != nil {
		return nil, err
	}
	stats := ComputeReservationStats(reservations)
	return &stats, nil
}
