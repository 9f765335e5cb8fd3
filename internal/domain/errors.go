package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindValidation ErrorKind = "validation"
	KindPermission ErrorKind = "permission"
	KindNotFound   ErrorKind = "not_found"
)

// StoreError is what PersistentStore implementations return so callers can
// tell transient failures from permanent ones.
type StoreError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Transient reports whether repeating the call could succeed.
func (e *StoreError) Transient() bool {
	return e.Kind == KindNetwork
}

// IsTransient is true for network-class store errors and for errors that are
// not StoreErrors at all.
func IsTransient(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Transient()
	}
	return true
}
