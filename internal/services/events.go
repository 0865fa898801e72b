package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ChangeKind classifies a mutation
type ChangeKind string

const (
	ChangeCreated    ChangeKind = "created"
	ChangeUpdated    ChangeKind = "updated"
	ChangeDeleted    ChangeKind = "deleted"
	ChangeTransition ChangeKind = "transition"
)

// ChangeEvent is published after every successful write
type ChangeEvent struct {
	Collection string
	Kind       ChangeKind
	RecordID   int64
	Action     string // transition name, empty otherwise
	From       string
	To         string
	At         time.Time
}

// ChangeListener reacts to committed changes
type ChangeListener interface {
	OnChange(ctx context.Context, ev ChangeEvent) error
}

// ChangeListenerFunc adapts a function to ChangeListener
type ChangeListenerFunc func(ctx context.Context, ev ChangeEvent) error

// OnChange calls f
func (f ChangeListenerFunc) OnChange(ctx context.Context, ev ChangeEvent) error {
	return f(ctx, ev)
}

// Notifier fans change events out to listeners. A failing listener is
// logged and never fails the write that produced the event.
type Notifier struct {
	mu        sync.RWMutex
	listeners []ChangeListener
	logger    *logrus.Logger
}

// NewNotifier creates a notifier with no listeners
func NewNotifier(logger *logrus.Logger) *Notifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Notifier{logger: logger}
}

// Subscribe registers a listener
func (n *Notifier) Subscribe(l ChangeListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// Publish delivers ev to every listener in subscription order
func (n *Notifier) Publish(ctx context.Context, ev ChangeEvent) {
	if n == nil {
		return
	}
	n.mu.RLock()
	listeners := append([]ChangeListener(nil), n.listeners...)
	n.mu.RUnlock()

	for _, l := range listeners {
		if err := l.OnChange(ctx, ev); err != nil {
			n.logger.WithFields(logrus.Fields{
				"collection": ev.Collection,
				"kind":       ev.Kind,
				"record_id":  ev.RecordID,
				"error":      err.Error(),
			}).Warn("Change listener failed")
		}
	}
}
