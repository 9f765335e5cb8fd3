package server

import (
	"context"
	"errors"
	"sync"

	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/logger"
	"github.com/muhammadolammi/careercompass/internal/synchronizer"
)

// SessionFactory builds the synchronizer for one device.
type SessionFactory func(deviceID string) (*synchronizer.Synchronizer, error)

type session struct {
	once sync.Once
	sync *synchronizer.Synchronizer
	err  error
}

// Registry holds one synchronizer per device. A session is identified once,
// when it is first requested.
type Registry struct {
	factory SessionFactory
	log     *logger.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry(factory SessionFactory, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{factory: factory, log: log.With("service", "Registry"), sessions: map[string]*session{}}
}

// Get returns the device's synchronizer. A new one is identified with
// identity, or with a fresh anonymous identity when identity is nil.
func (r *Registry) Get(ctx context.Context, deviceID string, identity *domain.Identity) (*synchronizer.Synchronizer, error) {
	r.mu.Lock()
	s, ok := r.sessions[deviceID]
	if !ok {
		s = &session{}
		r.sessions[deviceID] = s
	}
	r.mu.Unlock()

	s.once.Do(func() {
		s.sync, s.err = r.factory(deviceID)
		if s.err != nil {
			return
		}
		if identity == nil {
			identity = domain.NewAnonymous()
		}
		s.sync.Identify(ctx, identity)
		r.log.Debug("session started", "device", deviceID, "identity", identity.ID, "anonymous", identity.Anonymous)
	})
	if s.err != nil {
		r.mu.Lock()
		if r.sessions[deviceID] == s {
			delete(r.sessions, deviceID)
		}
		r.mu.Unlock()
		return nil, s.err
	}
	return s.sync, nil
}

// Close flushes and closes every session.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[string]*session{}
	r.mu.Unlock()

	var errs []error
	for device, s := range sessions {
		// Waits for a session that is still being identified.
		s.once.Do(func() {})
		if s.sync == nil {
			continue
		}
		if err := s.sync.Close(ctx); err != nil {
			r.log.Warn("session did not close cleanly", "device", device, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
