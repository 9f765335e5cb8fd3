package domain

type Recommendation struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Match            int      `json:"match"`
	Description      string   `json:"description"`
	Skills           []string `json:"skills"`
	SalaryRange      string   `json:"salaryRange"`
	Growth           string   `json:"growth"`
	Companies        []string `json:"companies"`
	TimeToEntry      string   `json:"timeToEntry"`
	Reasoning        string   `json:"reasoning"`
	CareerPath       string   `json:"careerPath"`
	Responsibilities []string `json:"responsibilities"`
	IndustryOutlook  string   `json:"industryOutlook"`
	JobOpenings      string   `json:"jobOpenings"`
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Resource struct {
	Name   string  `json:"name" yaml:"name"`
	Type   string  `json:"type" yaml:"type"`
	URL    string  `json:"url" yaml:"url"`
	Rating float64 `json:"rating" yaml:"rating"`
}

type LearningStep struct {
	Skill        string     `json:"skill"`
	Priority     Priority   `json:"priority"`
	TimeEstimate string     `json:"timeEstimate"`
	Resources    []Resource `json:"resources"`
}

type SkillAnalysis struct {
	Existing     []string       `json:"existing"`
	Missing      []string       `json:"missing"`
	LearningPath []LearningStep `json:"learningPath"`
}

func CloneRecommendations(in []Recommendation) []Recommendation {
	if in == nil {
		return nil
	}
	out := make([]Recommendation, len(in))
	for i, r := range in {
		r.Skills = cloneStrings(r.Skills)
		r.Companies = cloneStrings(r.Companies)
		r.Responsibilities = cloneStrings(r.Responsibilities)
		out[i] = r
	}
	return out
}

func (s SkillAnalysis) Clone() SkillAnalysis {
	c := SkillAnalysis{
		Existing: cloneStrings(s.Existing),
		Missing:  cloneStrings(s.Missing),
	}
	if s.LearningPath != nil {
		c.LearningPath = make([]LearningStep, len(s.LearningPath))
		for i, step := range s.LearningPath {
			step.Resources = append([]Resource(nil), step.Resources...)
			c.LearningPath[i] = step
		}
	}
	return c
}
