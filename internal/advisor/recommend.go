package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

// Recommend asks the generator for career recommendations. It always returns
// a list: the local fallback is used when generation fails or yields nothing
// usable.
func (a *Advisor) Recommend(ctx context.Context, answers domain.ProfileAnswers) []domain.Recommendation {
	if a.gen == nil {
		return a.Fallback(answers)
	}
	text, err := a.gen.Generate(ctx, careerPrompt(answers, a.resumeText(ctx, answers)))
	if err != nil {
		a.log.Warn("recommendation generation failed, using fallback", "error", err)
		return a.Fallback(answers)
	}
	recs, err := ParseRecommendations(text)
	if err != nil {
		a.log.Warn("unparseable recommendations, using fallback", "error", err)
		return a.Fallback(answers)
	}
	return recs
}

func (a *Advisor) resumeText(ctx context.Context, answers domain.ProfileAnswers) string {
	if a.resumes == nil || answers.ResumeKey == "" {
		return ""
	}
	text, err := a.resumes.ResumeText(ctx, answers.ResumeKey, answers.ResumeMime)
	if err != nil {
		a.log.Warn("resume not included in prompt", "key", answers.ResumeKey, "error", err)
		return ""
	}
	return text
}

// ParseRecommendations decodes generator output: a JSON array, or an object
// with a "recommendations" array, optionally inside a markdown code fence.
func ParseRecommendations(text string) ([]domain.Recommendation, error) {
	clean := CleanJSON(text)

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(clean), &recs); err != nil {
		var wrapped struct {
			Recommendations []domain.Recommendation `json:"recommendations"`
		}
		if werr := json.Unmarshal([]byte(clean), &wrapped); werr != nil {
			return nil, fmt.Errorf("decode recommendations: %w", err)
		}
		recs = wrapped.Recommendations
	}
	if len(recs) == 0 {
		return nil, errors.New("no recommendations in response")
	}
	for i := range recs {
		if recs[i].ID == 0 {
			recs[i].ID = i + 1
		}
		recs[i].Match = clamp(recs[i].Match, 0, 100)
	}
	return recs, nil
}

// CleanJSON strips a surrounding ``` or ```json fence from model output.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
