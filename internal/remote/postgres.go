// Package remote adapts the sqlc queries to domain.PersistentStore.
package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careercompass/internal/database"
	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/logger"
)

// Querier is the subset of *database.Queries the store uses.
type Querier interface {
	CreateAssessment(ctx context.Context, arg database.CreateAssessmentParams) (database.Assessment, error)
	GetAssessmentsByUser(ctx context.Context, userID uuid.UUID) ([]database.Assessment, error)
	CreateChatMessage(ctx context.Context, arg database.CreateChatMessageParams) (database.ChatHistory, error)
	GetChatHistoryByUser(ctx context.Context, arg database.GetChatHistoryByUserParams) ([]database.ChatHistory, error)
	CreateCareerRecommendations(ctx context.Context, arg database.CreateCareerRecommendationsParams) (database.CareerRecommendation, error)
	UpsertSkillAnalysis(ctx context.Context, arg database.UpsertSkillAnalysisParams) error
}

type Postgres struct {
	q   Querier
	log *logger.Logger
}

func NewPostgres(q Querier, log *logger.Logger) *Postgres {
	if log == nil {
		log = logger.Nop()
	}
	return &Postgres{q: q, log: log.With("service", "PostgresStore")}
}

func (p *Postgres) SaveAssessment(ctx context.Context, ownerID string, answers domain.ProfileAnswers) (domain.AssessmentRecord, error) {
	const op = "save assessment"
	owner, err := parseOwner(op, ownerID)
	if err != nil {
		return domain.AssessmentRecord{}, err
	}
	payload, err := json.Marshal(answers)
	if err != nil {
		return domain.AssessmentRecord{}, &domain.StoreError{Op: op, Kind: domain.KindValidation, Err: err}
	}
	row, err := p.q.CreateAssessment(ctx, database.CreateAssessmentParams{
		UserID:         owner,
		AssessmentData: payload,
	})
	if err != nil {
		return domain.AssessmentRecord{}, classify(op, err)
	}
	p.log.Debug("assessment saved", "owner", ownerID, "record", row.ID)
	return toAssessmentRecord(row)
}

func (p *Postgres) GetAssessments(ctx context.Context, ownerID string) ([]domain.AssessmentRecord, error) {
	const op = "get assessments"
	owner, err := parseOwner(op, ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := p.q.GetAssessmentsByUser(ctx, owner)
	if err != nil {
		return nil, classify(op, err)
	}
	out := make([]domain.AssessmentRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toAssessmentRecord(row)
		if err != nil {
			// one corrupt payload should not hide the rest of the history
			p.log.Warn("skipping unreadable assessment", "record", row.ID, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (p *Postgres) SaveChatMessage(ctx context.Context, ownerID, message, response string) (domain.ChatRecord, error) {
	const op = "save chat message"
	owner, err := parseOwner(op, ownerID)
	if err != nil {
		return domain.ChatRecord{}, err
	}
	row, err := p.q.CreateChatMessage(ctx, database.CreateChatMessageParams{
		UserID:   owner,
		Message:  message,
		Response: response,
	})
	if err != nil {
		return domain.ChatRecord{}, classify(op, err)
	}
	return toChatRecord(row), nil
}

func (p *Postgres) GetChatHistory(ctx context.Context, ownerID string, limit int) ([]domain.ChatRecord, error) {
	const op = "get chat history"
	owner, err := parseOwner(op, ownerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.q.GetChatHistoryByUser(ctx, database.GetChatHistoryByUserParams{
		UserID: owner,
		Limit:  int32(limit),
	})
	if err != nil {
		return nil, classify(op, err)
	}
	out := make([]domain.ChatRecord, len(rows))
	for i, row := range rows {
		out[i] = toChatRecord(row)
	}
	return out, nil
}

func (p *Postgres) SaveRecommendations(ctx context.Context, ownerID, assessmentID string, list []domain.Recommendation) (domain.RecommendationRecord, error) {
	const op = "save recommendations"
	owner, err := parseOwner(op, ownerID)
	if err != nil {
		return domain.RecommendationRecord{}, err
	}
	var ref uuid.NullUUID
	if assessmentID != "" {
		id, err := uuid.Parse(assessmentID)
		if err != nil {
			return domain.RecommendationRecord{}, &domain.StoreError{Op: op, Kind: domain.KindValidation, Err: fmt.Errorf("assessment id: %w", err)}
		}
		ref = uuid.NullUUID{UUID: id, Valid: true}
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return domain.RecommendationRecord{}, &domain.StoreError{Op: op, Kind: domain.KindValidation, Err: err}
	}
	row, err := p.q.CreateCareerRecommendations(ctx, database.CreateCareerRecommendationsParams{
		UserID:          owner,
		AssessmentID:    ref,
		Recommendations: payload,
	})
	if err != nil {
		return domain.RecommendationRecord{}, classify(op, err)
	}
	rec := domain.RecommendationRecord{
		ID:              row.ID.String(),
		OwnerID:         row.UserID.String(),
		Recommendations: domain.CloneRecommendations(list),
		CreatedAt:       row.CreatedAt,
	}
	if row.AssessmentID.Valid {
		rec.AssessmentID = row.AssessmentID.UUID.String()
	}
	return rec, nil
}

func (p *Postgres) SaveSkillAnalysis(ctx context.Context, ownerID string, analysis domain.SkillAnalysis) error {
	const op = "save skill analysis"
	owner, err := parseOwner(op, ownerID)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return &domain.StoreError{Op: op, Kind: domain.KindValidation, Err: err}
	}
	err = p.q.UpsertSkillAnalysis(ctx, database.UpsertSkillAnalysisParams{
		UserID:   owner,
		Analysis: payload,
	})
	return classify(op, err)
}

func parseOwner(op, ownerID string) (uuid.UUID, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return uuid.Nil, &domain.StoreError{Op: op, Kind: domain.KindValidation, Err: fmt.Errorf("owner id %q: %w", ownerID, err)}
	}
	return id, nil
}

func toAssessmentRecord(row database.Assessment) (domain.AssessmentRecord, error) {
	var answers domain.ProfileAnswers
	if err := json.Unmarshal(row.AssessmentData, &answers); err != nil {
		return domain.AssessmentRecord{}, fmt.Errorf("decode assessment %s: %w", row.ID, err)
	}
	return domain.AssessmentRecord{
		ID:        row.ID.String(),
		OwnerID:   row.UserID.String(),
		Answers:   answers,
		CreatedAt: row.CreatedAt,
	}, nil
}

func toChatRecord(row database.ChatHistory) domain.ChatRecord {
	return domain.ChatRecord{
		ID:        row.ID.String(),
		OwnerID:   row.UserID.String(),
		Message:   row.Message,
		Response:  row.Response,
		Context:   row.Context.String,
		CreatedAt: row.CreatedAt,
	}
}
