package services

import (
	"context"
	"fmt"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/pkg/validator"
)

// GuestService manages guest profiles
type GuestService struct {
	Deps
	phones *validator.PhoneValidator
}

// NewGuestService creates a new guest service
func NewGuestService(deps Deps) *GuestService {
	return &GuestService{Deps: deps.withDefaults(), phones: validator.NewPhoneValidator()}
}

// List returns all guests matching filter
func (s *GuestService) List(ctx context.Context, filter models.GuestFilter) ([]models.Guest, error) {
	guests, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return FilterGuests(guests, filter), nil
}

func (s *GuestService) all(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.Store.List(ctx, database.CollectionGuests, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

// Get returns a guest by id
func (s *GuestService) Get(ctx context.Context, id int64) (*models.Guest, error) {
	var guest models.Guest
	if err := s.Store.Get(ctx, database.CollectionGuests, id, &guest); err != nil {
		return nil, err
	}
	return &guest, nil
}

// Create validates and stores a new guest. createdAt is stamped here and
// stayHistory always starts empty.
func (s *GuestService) Create(ctx context.Context, req *models.CreateGuestRequest) (*models.Guest, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	fields := req.Fields()
	phone, err := s.phones.Validate(req.Phone)
	if err != nil {
		return nil, NewValidationError("phone", err.Error())
	}
	fields["phone"] = phone
	fields["createdAt"] = s.Clock().UTC()
	fields["stayHistory"] = models.IDList{}

	id, err := s.Store.Create(ctx, database.CollectionGuests, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	s.publish(ctx, database.CollectionGuests, ChangeCreated, id)
	return s.Get(ctx, id)
}

// CreateMany creates each guest independently
func (s *GuestService) CreateMany(ctx context.Context, reqs []models.CreateGuestRequest) ([]models.Guest, error) {
	return createMany(ctx, reqs, s.Create)
}

// Update applies a partial update
func (s *GuestService) Update(ctx context.Context, id int64, req *models.UpdateGuestRequest) (*models.Guest, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	fields := req.Fields()
	if err := requireFields(fields); err != nil {
		return nil, err
	}
	if req.Phone != nil {
		phone, err := s.phones.Validate(*req.Phone)
		if err != nil {
			return nil, NewValidationError("phone", err.Error())
		}
		fields["phone"] = phone
	}

	if err := s.Store.Update(ctx, database.CollectionGuests, id, fields); err != nil {
		return nil, err
	}
	s.publish(ctx, database.CollectionGuests, ChangeUpdated, id)
	return s.Get(ctx, id)
}

// Delete removes a guest. Reservations that reference it keep the id and
// display as an unknown guest.
func (s *GuestService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Delete(ctx, database.CollectionGuests, id); err != nil {
		return err
	}
	s.publish(ctx, database.CollectionGuests, ChangeDeleted, id)
	return nil
}

// AppendStay records a completed reservation on the guest profile.
// Re-appending an id already present is a no-op.
func (s *GuestService) AppendStay(ctx context.Context, guestID, reservationID int64) error {
	guest, err := s.Get(ctx, guestID)
	if err != nil {
		return err
	}
	if guest.StayHistory.Contains(reservationID) {
		return nil
	}
	history := append(models.IDList{}, guest.StayHistory...)
	history = append(history, reservationID)
	if err := s.Store.Update(ctx, database.CollectionGuests, guestID, models.Fields{"stayHistory": history}); err != nil {
		return err
	}
	s.publish(ctx, database.CollectionGuests, ChangeUpdated, guestID)
	return nil
}

// Stats summarises the guest directory
func (s *GuestService) Stats(ctx context.Context) (*models.GuestStats, error) {
	guests, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeGuestStats(guests)
	return &stats, nil
}
