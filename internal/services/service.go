package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
	"github.com/staydesk/backoffice-api/pkg/validator"
)

const (
	unknownGuest = "Unknown Guest"
	unknownRoom  = "Unknown Room"
	unknownType  = "Unknown Type"
)

// Deps carries what every entity service needs
type Deps struct {
	Store     database.RecordStore
	Events    *Notifier
	Validator *validator.StructValidator
	Logger    *logrus.Logger
	Clock     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Events == nil {
		d.Events = NewNotifier(d.Logger)
	}
	if d.Validator == nil {
		d.Validator = validator.NewStructValidator()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	return d
}

func (d Deps) validate(req interface{}) error {
	if err := d.Validator.ValidateStruct(req); err != nil {
		return &ValidationError{Fields: validator.Messages(err)}
	}
	return nil
}

func (d Deps) publish(ctx context.Context, coll string, kind ChangeKind, id int64) {
	d.Events.Publish(ctx, ChangeEvent{Collection: coll, Kind: kind, RecordID: id, At: d.Clock()})
}

func (d Deps) publishTransition(ctx context.Context, coll string, id int64, action, from, to string) {
	d.Events.Publish(ctx, ChangeEvent{
		Collection: coll,
		Kind:       ChangeTransition,
		RecordID:   id,
		Action:     action,
		From:       from,
		To:         to,
		At:         d.Clock(),
	})
}

func requireFields(f models.Fields) error {
	if len(f) == 0 {
		return NewValidationError("request", "at least one field must be provided")
	}
	return nil
}

// createMany runs create for each request and collects per-record failures
func createMany[R any, T any](ctx context.Context, reqs []R, create func(context.Context, *R) (*T, error)) ([]T, error) {
	created := make([]T, 0, len(reqs))
	var failures []RecordFailure
	for i := range reqs {
		item, err := create(ctx, &reqs[i])
		if err != nil {
			failure := RecordFailure{Index: i, Error: err.Error()}
			var verr *ValidationError
			if errors.As(err, &verr) {
				failure.Fields = verr.Fields
			}
			failures = append(failures, failure)
			continue
		}
		created = append(created, *item)
	}
	if len(failures) > 0 {
		return created, &PartialFailureError{Total: len(reqs), Failures: failures}
	}
	return created, nil
}

// referenceCheck turns a missing foreign record into a validation error
func referenceCheck(err error, field, what string) error {
	if err == nil {
		return nil
	}
	if database.IsNotFound(err) {
		return NewValidationError(field, what+" does not exist")
	}
	return err
}
