package synchronizer

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/retry"
)

type remoteWrite func(ctx context.Context, ownerID string) error

// persist runs the write for entity in the background:
//
//	no identity or no store: local cache only
//	anonymous:               cache and remote concurrently
//	authenticated:           remote, then cache if the remote write failed
func (s *Synchronizer) persist(epoch uint64, identity *domain.Identity, entity Entity, payload any, remote remoteWrite) *Task {
	task := newTask()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		o := s.write(epoch, identity, entity, payload, remote)
		s.report(epoch, identity, o)
		task.finish(o)
	}()
	return task
}

func (s *Synchronizer) write(epoch uint64, identity *domain.Identity, entity Entity, payload any, remote remoteWrite) Outcome {
	o := Outcome{Entity: entity, Remote: SinkSkipped, Cache: SinkSkipped}
	switch {
	case identity == nil || s.store == nil:
		o.Cache, o.CacheErr = s.writeCacheEntry(epoch, entity, payload)
	case identity.Anonymous:
		var (
			g                   errgroup.Group
			cacheSt, remoteSt   SinkStatus
			cacheErr, remoteErr error
		)
		g.Go(func() error {
			cacheSt, cacheErr = s.writeCacheEntry(epoch, entity, payload)
			return nil
		})
		g.Go(func() error {
			remoteSt, remoteErr = s.writeRemote(identity, remote)
			return nil
		})
		_ = g.Wait()
		o.Cache, o.CacheErr = cacheSt, cacheErr
		o.Remote, o.RemoteErr = remoteSt, remoteErr
	default:
		o.Remote, o.RemoteErr = s.writeRemote(identity, remote)
		if o.RemoteErr != nil {
			o.Cache, o.CacheErr = s.writeCacheEntry(epoch, entity, payload)
		}
	}
	return o
}

func (s *Synchronizer) writeRemote(identity *domain.Identity, remote remoteWrite) (SinkStatus, error) {
	_, err := retry.Do(context.Background(), s.policy, func(ctx context.Context) (struct{}, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return struct{}{}, remote(ctx, identity.ID)
	})
	if err != nil {
		return SinkFailed, err
	}
	return SinkOK, nil
}

// report logs the outcome, surfaces remote failures in the state and
// publishes the sync event.
func (s *Synchronizer) report(epoch uint64, identity *domain.Identity, o Outcome) {
	if o.RemoteErr != nil {
		s.log.Warn("remote write failed",
			"entity", o.Entity,
			"identity", identityID(identity),
			"cache", o.Cache,
			"error", o.RemoteErr,
		)
		s.mu.Lock()
		if s.epoch == epoch {
			s.state = Reduce(s.state, RecordSyncError{Err: SyncError{
				Kind:    kindRemoteStore,
				Entity:  o.Entity,
				Message: o.RemoteErr.Error(),
			}})
		}
		s.mu.Unlock()
	}
	if o.CacheErr != nil {
		s.log.Error("local cache write failed", "entity", o.Entity, "error", o.CacheErr)
	}
	s.notify(identity, o)
}

func (s *Synchronizer) notify(identity *domain.Identity, o Outcome) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, newEvent(identityID(identity), o, s.now())); err != nil {
		s.log.Warn("failed to publish sync event", "entity", o.Entity, "error", err)
	}
}

// writeCacheEntry stores payload under entity in the user data blob. Writes
// from a superseded epoch are skipped.
func (s *Synchronizer) writeCacheEntry(epoch uint64, entity Entity, payload any) (SinkStatus, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return SinkFailed, err
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if !s.currentEpoch(epoch) {
		return SinkSkipped, nil
	}
	if err := s.updateBlob(context.Background(), string(entity), raw); err != nil {
		return SinkFailed, err
	}
	return SinkOK, nil
}

// mirrorTranscript writes the transcript as it stands now, so racing appends
// always leave the newest one in the cache.
func (s *Synchronizer) mirrorTranscript(epoch uint64) (SinkStatus, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return SinkSkipped, nil
	}
	history := append([]domain.ChatMessage{}, s.state.ChatHistory...)
	s.mu.Unlock()

	raw, err := json.Marshal(history)
	if err != nil {
		return SinkFailed, err
	}
	if err := s.updateBlob(context.Background(), string(EntityChat), raw); err != nil {
		return SinkFailed, err
	}
	return SinkOK, nil
}

func (s *Synchronizer) currentEpoch(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch == epoch
}

// updateBlob must be called with cacheMu held.
func (s *Synchronizer) updateBlob(ctx context.Context, key string, value json.RawMessage) error {
	blob, err := s.readBlob(ctx)
	if err != nil {
		return err
	}
	blob[key] = value
	out, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	return s.cache.Put(ctx, s.userDataKey(), out)
}

func (s *Synchronizer) readBlob(ctx context.Context) (map[string]json.RawMessage, error) {
	blob := map[string]json.RawMessage{}
	raw, ok, err := s.cache.Get(ctx, s.userDataKey())
	if err != nil || !ok {
		return blob, err
	}
	if err := json.Unmarshal(raw, &blob); err != nil || blob == nil {
		s.log.Warn("discarding unreadable cached user data", "error", err)
		return map[string]json.RawMessage{}, nil
	}
	return blob, nil
}

func (s *Synchronizer) userDataKey() string {
	return scopedKey(userDataKey, s.namespace)
}

func (s *Synchronizer) draftKey() string {
	return scopedKey(draftDataKey, s.namespace)
}

func scopedKey(base, namespace string) string {
	if namespace == "" {
		return base
	}
	return base + ":" + namespace
}
