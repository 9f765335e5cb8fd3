package advisor

import (
	"hash/fnv"
	"slices"
	"strings"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

const (
	fallbackCount = 5
	minScore      = 30
)

// Fallback ranks the static career table against answers.
//
// Scoring: a related interest adds 40, a matching skill 35, a preferred field
// of study 15 and any projects or internships 10. Careers scoring above 30
// are kept; if fewer than five remain the first five careers are used. The
// match percentage stays within 70-95 and is offset by a hash of the title so
// the same answers always give the same ranking.
func (a *Advisor) Fallback(answers domain.ProfileAnswers) []domain.Recommendation {
	skills := withoutNone(answers.ProgrammingLanguages, answers.Frameworks, answers.ToolsAndTech)

	type scored struct {
		c     career
		match int
	}
	var picked []scored
	for _, c := range a.careers {
		score := 0
		if anyOverlap(answers.CareerInterests, c.RelatedInterests) {
			score += 40
		}
		if anyOverlap(skills, c.Skills) {
			score += 35
		}
		if answers.FieldOfStudy != "" && slices.Contains(c.PreferredEducation, answers.FieldOfStudy) {
			score += 15
		}
		if answers.Projects != "" || answers.Internships != "" {
			score += 10
		}
		if score > minScore {
			picked = append(picked, scored{c: c, match: clamp(score+int(titleHash(c.Title)%10), 70, 95)})
		}
	}

	if len(picked) < fallbackCount {
		picked = picked[:0]
		for _, c := range a.careers[:min(fallbackCount, len(a.careers))] {
			picked = append(picked, scored{c: c, match: 70 + int(titleHash(c.Title)%25)})
		}
	}

	slices.SortStableFunc(picked, func(x, y scored) int { return y.match - x.match })
	if len(picked) > fallbackCount {
		picked = picked[:fallbackCount]
	}

	out := make([]domain.Recommendation, len(picked))
	for i, p := range picked {
		out[i] = p.c.recommendation(i+1, p.match)
	}
	return out
}

func titleHash(title string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(title))
	return h.Sum32()
}

// matches reports whether either string contains the other, ignoring case.
func matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func anyOverlap(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if matches(h, w) {
				return true
			}
		}
	}
	return false
}

func withoutNone(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if s != "None" {
				out = append(out, s)
			}
		}
	}
	return out
}
