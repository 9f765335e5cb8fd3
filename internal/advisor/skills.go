package advisor

import (
	"fmt"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

// AnalyzeSkills splits the target's required skills into the ones the user
// already has and the ones to learn, with a learning path for the latter.
func (a *Advisor) AnalyzeSkills(userSkills []string, target domain.Recommendation) domain.SkillAnalysis {
	analysis := domain.SkillAnalysis{
		Existing:     []string{},
		Missing:      []string{},
		LearningPath: []domain.LearningStep{},
	}
	for _, skill := range target.Skills {
		if anyOverlap(userSkills, []string{skill}) {
			analysis.Existing = append(analysis.Existing, skill)
		} else {
			analysis.Missing = append(analysis.Missing, skill)
		}
	}
	for _, skill := range analysis.Missing {
		analysis.LearningPath = append(analysis.LearningPath, a.learningStep(skill))
	}
	return analysis
}

func (a *Advisor) learningStep(skill string) domain.LearningStep {
	if e, ok := a.resources[skill]; ok {
		return domain.LearningStep{
			Skill:        skill,
			Priority:     e.Priority,
			TimeEstimate: e.TimeEstimate,
			Resources:    append([]domain.Resource(nil), e.Resources...),
		}
	}
	return domain.LearningStep{
		Skill:        skill,
		Priority:     domain.PriorityMedium,
		TimeEstimate: "2-3 months",
		Resources: []domain.Resource{
			{Name: fmt.Sprintf("Learn %s - Official Docs", skill), Type: "Free", URL: "#", Rating: 4.5},
			{Name: fmt.Sprintf("%s Complete Course (Udemy)", skill), Type: "Paid", URL: "#", Rating: 4.6},
			{Name: fmt.Sprintf("%s Tutorial (YouTube)", skill), Type: "Free", URL: "#", Rating: 4.4},
		},
	}
}
