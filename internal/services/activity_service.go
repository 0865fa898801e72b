package services

import (
	"context"
	"fmt"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/internal/utils"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 200
)

// ActivityService records status transitions with the device that caused them
type ActivityService struct {
	Deps
}

// NewActivityService creates a new activity service
func NewActivityService(deps Deps) *ActivityService {
	return &ActivityService{Deps: deps.withDefaults()}
}

// OnChange appends an activity entry for every status transition.
// Plain creates, updates and deletes are not logged.
func (s *ActivityService) OnChange(ctx context.Context, ev ChangeEvent) error {
	if ev.Kind != ChangeTransition {
		return nil
	}

	entry := models.ActivityEntry{
		Collection: ev.Collection,
		RecordID:   ev.RecordID,
		Action:     ev.Action,
		FromStatus: ev.From,
		ToStatus:   ev.To,
		OccurredAt: ev.At,
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = s.Clock()
	}
	if client, ok := utils.ClientFromContext(ctx); ok {
		entry.ClientIP = client.IP
		entry.DeviceType = client.Device.DeviceType
		entry.Platform = client.Device.Platform
		entry.Browser = client.Device.Browser
	} else {
		entry.DeviceType = "system"
	}

	if _, err := s.Store.Create(ctx, database.CollectionActivity, entry.Fields()); err != nil {
		return fmt.Errorf("record %s on %s %d: %w", ev.Action, ev.Collection, ev.RecordID, err)
	}
	return nil
}

// Recent returns the newest entries first. limit is clamped to [1, 200]
// and defaults to 20.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}

	entries := []models.ActivityEntry{}
	if err := s.Store.Recent(ctx, database.CollectionActivity, limit, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
