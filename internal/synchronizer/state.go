package synchronizer

import (
	"fmt"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

type Step string

const (
	StepHome            Step = "home"
	StepAssessment      Step = "assessment"
	StepRecommendations Step = "recommendations"
	StepSkills          Step = "skills"
	StepDashboard       Step = "dashboard"
	StepChat            Step = "chat"
)

func ParseStep(s string) (Step, error) {
	switch Step(s) {
	case StepHome, StepAssessment, StepRecommendations, StepSkills, StepDashboard, StepChat:
		return Step(s), nil
	}
	return "", fmt.Errorf("unknown step %q", s)
}

// Entity names a persisted piece of state. The values double as the keys of
// the local cache blob.
type Entity string

const (
	EntityAssessment      Entity = "assessmentData"
	EntityRecommendations Entity = "recommendations"
	EntitySkillAnalysis   Entity = "skillAnalysis"
	EntityChat            Entity = "chatHistory"
)

type SyncError struct {
	Kind    string `json:"kind"`
	Entity  Entity `json:"entity,omitempty"`
	Message string `json:"message"`
}

// State is one client's in-memory session. Nil Assessment, Recommendations
// and SkillAnalysis mean "not generated yet".
type State struct {
	Identity        *domain.Identity
	Assessment      *domain.ProfileAnswers
	Recommendations []domain.Recommendation
	SkillAnalysis   *domain.SkillAnalysis
	ChatHistory     []domain.ChatMessage
	Step            Step
	Loading         bool
	Err             *SyncError
}

func InitialState() State {
	return State{Step: StepHome}
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	c := s
	c.Identity = cloneIdentity(s.Identity)
	if s.Assessment != nil {
		a := s.Assessment.Clone()
		c.Assessment = &a
	}
	c.Recommendations = domain.CloneRecommendations(s.Recommendations)
	if s.SkillAnalysis != nil {
		sa := s.SkillAnalysis.Clone()
		c.SkillAnalysis = &sa
	}
	if s.ChatHistory != nil {
		c.ChatHistory = append([]domain.ChatMessage(nil), s.ChatHistory...)
	}
	if s.Err != nil {
		e := *s.Err
		c.Err = &e
	}
	return c
}

func cloneIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
