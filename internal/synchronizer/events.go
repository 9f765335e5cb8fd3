package synchronizer

import (
	"context"
	"time"
)

// Notifier receives one Event per finished persistence task.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

type Event struct {
	IdentityID string     `json:"identity_id,omitempty"`
	Entity     Entity     `json:"entity"`
	Status     string     `json:"status"`
	Remote     SinkStatus `json:"remote"`
	Cache      SinkStatus `json:"cache"`
	Message    string     `json:"message,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

const (
	StatusSynced   = "synced"
	StatusFallback = "fallback"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
)

func newEvent(identityID string, o Outcome, at time.Time) Event {
	ev := Event{
		IdentityID: identityID,
		Entity:     o.Entity,
		Remote:     o.Remote,
		Cache:      o.Cache,
		Timestamp:  at,
	}
	switch {
	case o.Remote == SinkSkipped && o.Cache == SinkSkipped && o.Err() == nil:
		ev.Status = StatusSkipped
	case !o.Durable():
		ev.Status = StatusFailed
	case o.RemoteErr != nil:
		ev.Status = StatusFallback
	default:
		ev.Status = StatusSynced
	}
	if err := o.Err(); err != nil {
		ev.Message = err.Error()
	}
	return ev
}
