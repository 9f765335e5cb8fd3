package synchronizer

import (
	"context"
	"errors"
)

type SinkStatus string

const (
	SinkSkipped SinkStatus = "skipped"
	SinkOK      SinkStatus = "ok"
	SinkFailed  SinkStatus = "failed"
)

// Outcome is the result of one background persistence attempt.
type Outcome struct {
	Entity    Entity
	Remote    SinkStatus
	Cache     SinkStatus
	RemoteErr error
	CacheErr  error
}

// Durable reports whether at least one sink holds the payload.
func (o Outcome) Durable() bool {
	return o.Remote == SinkOK || o.Cache == SinkOK
}

func (o Outcome) Err() error {
	return errors.Join(o.RemoteErr, o.CacheErr)
}

// Task is a handle on a background persistence attempt. Callers may wait on
// it or drop it; the attempt runs to completion either way.
type Task struct {
	done    chan struct{}
	outcome Outcome
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

func (t *Task) finish(o Outcome) {
	t.outcome = o
	close(t.done)
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the attempt finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-t.done:
		return t.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
