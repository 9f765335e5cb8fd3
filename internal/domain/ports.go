package domain

import (
	"context"
	"time"
)

type AssessmentRecord struct {
	ID        string
	OwnerID   string
	Answers   ProfileAnswers
	CreatedAt time.Time
}

type ChatRecord struct {
	ID        string
	OwnerID   string
	Message   string
	Response  string
	Context   string
	CreatedAt time.Time
}

type RecommendationRecord struct {
	ID              string
	OwnerID         string
	AssessmentID    string
	Recommendations []Recommendation
	CreatedAt       time.Time
}

// PersistentStore is the remote relational store. Every method may fail with
// a *StoreError.
type PersistentStore interface {
	SaveAssessment(ctx context.Context, ownerID string, answers ProfileAnswers) (AssessmentRecord, error)
	// GetAssessments returns the owner's assessments, most recent first.
	GetAssessments(ctx context.Context, ownerID string) ([]AssessmentRecord, error)
	SaveChatMessage(ctx context.Context, ownerID, message, response string) (ChatRecord, error)
	// GetChatHistory returns at most limit records, most recent first.
	// Callers reverse it for chronological order.
	GetChatHistory(ctx context.Context, ownerID string, limit int) ([]ChatRecord, error)
	// SaveRecommendations links the set to assessmentID when it is non-empty.
	SaveRecommendations(ctx context.Context, ownerID, assessmentID string, list []Recommendation) (RecommendationRecord, error)
	// SaveSkillAnalysis replaces the owner's stored analysis.
	SaveSkillAnalysis(ctx context.Context, ownerID string, analysis SkillAnalysis) error
}

// LocalCache is a durable key/value blob store scoped to one device.
type LocalCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
