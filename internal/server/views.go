package server

import (
	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/synchronizer"
)

type stateView struct {
	Identity        *domain.Identity        `json:"identity"`
	Assessment      *domain.ProfileAnswers  `json:"assessmentData"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	SkillAnalysis   *domain.SkillAnalysis   `json:"skillAnalysis"`
	ChatHistory     []domain.ChatMessage    `json:"chatHistory"`
	Step            synchronizer.Step       `json:"currentStep"`
	Loading         bool                    `json:"loading"`
	Error           *synchronizer.SyncError `json:"error"`
}

func newStateView(st synchronizer.State) stateView {
	chat := st.ChatHistory
	if chat == nil {
		chat = []domain.ChatMessage{}
	}
	return stateView{
		Identity:        st.Identity,
		Assessment:      st.Assessment,
		Recommendations: st.Recommendations,
		SkillAnalysis:   st.SkillAnalysis,
		ChatHistory:     chat,
		Step:            st.Step,
		Loading:         st.Loading,
		Error:           st.Err,
	}
}

type dashboardView struct {
	Identity        *domain.Identity           `json:"identity"`
	Progress        domain.Progress            `json:"progress"`
	Stats           domain.RecommendationStats `json:"stats"`
	HasSkillGap     bool                       `json:"hasSkillAnalysis"`
	ChatMessages    int                        `json:"chatMessages"`
	Step            synchronizer.Step          `json:"currentStep"`
	Recommendations []domain.Recommendation    `json:"recommendations"`
}

func newDashboardView(st synchronizer.State) dashboardView {
	recs := st.Recommendations
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return dashboardView{
		Identity:        st.Identity,
		Progress:        domain.AssessmentProgress(st.Assessment),
		Stats:           domain.Stats(st.Recommendations),
		HasSkillGap:     st.SkillAnalysis != nil,
		ChatMessages:    len(st.ChatHistory),
		Step:            st.Step,
		Recommendations: recs,
	}
}
