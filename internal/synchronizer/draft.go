package synchronizer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

// SaveDraft records partially completed answers. The cache write is
// debounced; a newer draft replaces a pending one.
func (s *Synchronizer) SaveDraft(answers domain.ProfileAnswers) {
	a := answers.Clone()

	s.draftMu.Lock()
	defer s.draftMu.Unlock()
	if s.closed {
		return
	}
	s.pendingDraft = &a
	if s.draftTimer != nil && s.draftTimer.Stop() {
		s.draftTimer.Reset(s.draftDelay)
		return
	}
	s.wg.Add(1)
	s.draftTimer = time.AfterFunc(s.draftDelay, func() {
		defer s.wg.Done()
		if err := s.FlushDraft(context.Background()); err != nil {
			s.log.Warn("failed to save assessment draft", "error", err)
		}
	})
}

// FlushDraft writes the pending draft immediately.
func (s *Synchronizer) FlushDraft(ctx context.Context) error {
	s.draftIOMu.Lock()
	defer s.draftIOMu.Unlock()

	s.draftMu.Lock()
	pending := s.pendingDraft
	s.pendingDraft = nil
	s.draftMu.Unlock()
	if pending == nil {
		return nil
	}
	raw, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return s.cache.Put(ctx, s.draftKey(), raw)
}

// LoadDraft returns the newest draft, pending or cached. It returns nil when
// there is none.
func (s *Synchronizer) LoadDraft(ctx context.Context) (*domain.ProfileAnswers, error) {
	s.draftMu.Lock()
	if s.pendingDraft != nil {
		a := s.pendingDraft.Clone()
		s.draftMu.Unlock()
		return &a, nil
	}
	s.draftMu.Unlock()

	raw, ok, err := s.cache.Get(ctx, s.draftKey())
	if err != nil || !ok {
		return nil, err
	}
	var a domain.ProfileAnswers
	if err := json.Unmarshal(raw, &a); err != nil {
		s.log.Warn("ignoring unreadable assessment draft", "error", err)
		return nil, nil
	}
	return &a, nil
}

// discardDraft cancels a pending draft and removes the cached one.
func (s *Synchronizer) discardDraft() {
	s.draftMu.Lock()
	s.pendingDraft = nil
	s.stopDraftTimerLocked()
	s.draftMu.Unlock()

	s.draftIOMu.Lock()
	defer s.draftIOMu.Unlock()
	if err := s.cache.Delete(context.Background(), s.draftKey()); err != nil {
		s.log.Warn("failed to remove assessment draft", "error", err)
	}
}

func (s *Synchronizer) stopDraftTimerLocked() {
	if s.draftTimer != nil && s.draftTimer.Stop() {
		s.wg.Done()
	}
	s.draftTimer = nil
}
