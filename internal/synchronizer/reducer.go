package synchronizer

import "github.com/muhammadolammi/careercompass/internal/domain"

// Intent is a state transition request. The set is closed: only the types
// in this file implement it.
type Intent interface{ intent() }

type SetAssessment struct{ Answers domain.ProfileAnswers }
type SetRecommendations struct{ List []domain.Recommendation }
type SetSkillAnalysis struct{ Analysis domain.SkillAnalysis }
type AddChatMessage struct{ Message domain.ChatMessage }
type SetStep struct{ Step Step }
type SetLoading struct{ Loading bool }

// SetError records a user-visible failure and stops the loading indicator.
type SetError struct{ Err SyncError }

// RecordSyncError records a background persistence failure. It leaves the
// loading indicator alone.
type RecordSyncError struct{ Err SyncError }
type ClearError struct{}

// ResetUserData drops every derived entity and keeps only Identity.
type ResetUserData struct{ Identity *domain.Identity }

// Hydrated swaps in a new identity together with whatever was loaded for it.
type Hydrated struct {
	Identity *domain.Identity
	Snapshot Snapshot
}

// Snapshot is the state recovered from a durable sink. Nil fields were not
// found.
type Snapshot struct {
	Assessment         *domain.ProfileAnswers
	AssessmentRecordID string
	Recommendations    []domain.Recommendation
	SkillAnalysis      *domain.SkillAnalysis
	ChatHistory        []domain.ChatMessage
}

func (SetAssessment) intent()      {}
func (SetRecommendations) intent() {}
func (SetSkillAnalysis) intent()   {}
func (AddChatMessage) intent()     {}
func (SetStep) intent()            {}
func (SetLoading) intent()         {}
func (SetError) intent()           {}
func (RecordSyncError) intent()    {}
func (ClearError) intent()         {}
func (ResetUserData) intent()      {}
func (Hydrated) intent()           {}

// Reduce is the pure transition function. It never mutates s; every slice or
// pointer it changes is replaced with a fresh copy.
func Reduce(s State, in Intent) State {
	switch in := in.(type) {
	case SetAssessment:
		a := in.Answers.Clone()
		s.Assessment = &a
		s.Step = StepRecommendations
	case SetRecommendations:
		list := domain.CloneRecommendations(in.List)
		if list == nil {
			list = []domain.Recommendation{}
		}
		s.Recommendations = list
		s.Step = StepSkills
	case SetSkillAnalysis:
		a := in.Analysis.Clone()
		s.SkillAnalysis = &a
	case AddChatMessage:
		history := make([]domain.ChatMessage, len(s.ChatHistory), len(s.ChatHistory)+1)
		copy(history, s.ChatHistory)
		s.ChatHistory = append(history, in.Message)
	case SetStep:
		s.Step = in.Step
	case SetLoading:
		s.Loading = in.Loading
	case SetError:
		e := in.Err
		s.Err = &e
		s.Loading = false
	case RecordSyncError:
		e := in.Err
		s.Err = &e
	case ClearError:
		s.Err = nil
	case ResetUserData:
		next := InitialState()
		next.Identity = cloneIdentity(in.Identity)
		return next
	case Hydrated:
		next := InitialState()
		next.Identity = cloneIdentity(in.Identity)
		next.Loading = s.Loading
		snap := in.Snapshot
		if snap.Assessment != nil {
			next = Reduce(next, SetAssessment{Answers: *snap.Assessment})
		}
		if snap.Recommendations != nil {
			next = Reduce(next, SetRecommendations{List: snap.Recommendations})
		}
		if snap.SkillAnalysis != nil {
			next = Reduce(next, SetSkillAnalysis{Analysis: *snap.SkillAnalysis})
		}
		if len(snap.ChatHistory) > 0 {
			next.ChatHistory = append([]domain.ChatMessage(nil), snap.ChatHistory...)
		}
		return next
	}
	return s
}
