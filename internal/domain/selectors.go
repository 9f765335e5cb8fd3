package domain

import "math"

var progressFields = []string{"name", "age", "education", "careerInterests"}

type Progress struct {
	Percent  float64 `json:"progress"`
	Complete bool    `json:"isComplete"`
}

// AssessmentProgress scores how many of the headline fields are filled in.
func AssessmentProgress(a *ProfileAnswers) Progress {
	if a == nil {
		return Progress{}
	}
	done := 0
	for _, name := range progressFields {
		if !a.Field(name).Empty() {
			done++
		}
	}
	return Progress{
		Percent:  float64(done) / float64(len(progressFields)) * 100,
		Complete: done == len(progressFields),
	}
}

type RecommendationStats struct {
	Total        int             `json:"totalRecommendations"`
	AverageMatch int             `json:"averageMatch"`
	TopMatch     *Recommendation `json:"topMatch"`
}

func Stats(list []Recommendation) RecommendationStats {
	if len(list) == 0 {
		return RecommendationStats{}
	}
	sum := 0
	top := list[0]
	for _, r := range list {
		sum += r.Match
		if r.Match > top.Match {
			top = r
		}
	}
	return RecommendationStats{
		Total:        len(list),
		AverageMatch: int(math.Round(float64(sum) / float64(len(list)))),
		TopMatch:     &top,
	}
}
