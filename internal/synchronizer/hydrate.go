package synchronizer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

func (s *Synchronizer) hydrate(ctx context.Context, identity *domain.Identity) Snapshot {
	if identity != nil && !identity.Anonymous && s.store != nil {
		snap, err := s.hydrateRemote(ctx, identity.ID)
		if err == nil {
			return snap
		}
		s.log.Warn("remote hydration failed, falling back to local cache",
			"identity", identity.ID,
			"error", err,
		)
	}
	return s.hydrateCache(ctx)
}

// hydrateRemote loads the latest assessment and the recent chat history.
// Each stored exchange becomes a user message followed by an assistant reply.
func (s *Synchronizer) hydrateRemote(ctx context.Context, ownerID string) (Snapshot, error) {
	var snap Snapshot

	actx, cancel := context.WithTimeout(ctx, s.timeout)
	assessments, err := s.store.GetAssessments(actx, ownerID)
	cancel()
	if err != nil {
		return Snapshot{}, fmt.Errorf("load assessments: %w", err)
	}
	if len(assessments) > 0 {
		a := assessments[0].Answers.Clone()
		snap.Assessment = &a
		snap.AssessmentRecordID = assessments[0].ID
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	records, err := s.store.GetChatHistory(cctx, ownerID, s.chatLimit)
	cancel()
	if err != nil {
		return Snapshot{}, fmt.Errorf("load chat history: %w", err)
	}
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		snap.ChatHistory = append(snap.ChatHistory,
			domain.ChatMessage{ID: r.ID, Sender: domain.SenderUser, Text: r.Message, Timestamp: r.CreatedAt},
			domain.ChatMessage{ID: r.ID + "-response", Sender: domain.SenderAssistant, Text: r.Response, Timestamp: r.CreatedAt},
		)
	}
	return snap, nil
}

// hydrateCache reads the user data blob. Every entry is decoded on its own;
// a missing or unreadable entry is treated as absent.
func (s *Synchronizer) hydrateCache(ctx context.Context) Snapshot {
	var snap Snapshot

	s.cacheMu.Lock()
	blob, err := s.readBlob(ctx)
	s.cacheMu.Unlock()
	if err != nil {
		s.log.Warn("local cache unavailable during hydration", "error", err)
		return snap
	}

	var a domain.ProfileAnswers
	if s.decodeEntry(blob, EntityAssessment, &a) {
		snap.Assessment = &a
	}
	var recs []domain.Recommendation
	if s.decodeEntry(blob, EntityRecommendations, &recs) {
		if recs == nil {
			recs = []domain.Recommendation{}
		}
		snap.Recommendations = recs
	}
	var sa domain.SkillAnalysis
	if s.decodeEntry(blob, EntitySkillAnalysis, &sa) {
		snap.SkillAnalysis = &sa
	}
	var chat []domain.ChatMessage
	if s.decodeEntry(blob, EntityChat, &chat) {
		snap.ChatHistory = chat
	}
	return snap
}

func (s *Synchronizer) decodeEntry(blob map[string]json.RawMessage, entity Entity, dst any) bool {
	raw, ok := blob[string(entity)]
	if !ok || string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("ignoring unreadable cached entry", "entity", entity, "error", err)
		return false
	}
	return true
}
