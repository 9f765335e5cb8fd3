package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

type stubResumes struct {
	text string
	err  error
}

func (r stubResumes) ResumeText(context.Context, string, string) (string, error) {
	return r.text, r.err
}

func newAdvisor(t *testing.T, gen Generator, resumes ResumeSource) *Advisor {
	t.Helper()
	a, err := New(gen, resumes, nil)
	require.NoError(t, err)
	return a
}

func profile() domain.ProfileAnswers {
	return domain.ProfileAnswers{
		Name:                 "Asha",
		Age:                  21,
		Education:            "Graduate",
		FieldOfStudy:         "Computer Science/IT",
		ProgrammingLanguages: []string{"JavaScript", "Python"},
		Frameworks:           []string{"None"},
		Databases:            []string{"PostgreSQL"},
		CareerInterests:      []string{"Software Development", "Web Development", "Data Science & Analytics"},
		Projects:             "Expense tracker",
	}
}

func TestNew_LoadsTables(t *testing.T) {
	a := newAdvisor(t, nil, nil)
	assert.Len(t, a.careers, 5)
	assert.Contains(t, a.resources, "React")
	assert.Equal(t, domain.PriorityMedium, a.resources["Supabase"].Priority)
}

func TestRecommend_ParsesFencedArray(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n[{\"title\":\"Cloud Engineer\",\"match\":88},{\"id\":7,\"title\":\"SRE\",\"match\":140}]\n```"}
	a := newAdvisor(t, gen, stubResumes{text: "Built a Go CLI"})

	answers := profile()
	answers.ResumeKey = "resumes/asha.pdf"
	recs := a.Recommend(context.Background(), answers)

	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].ID)
	assert.Equal(t, "Cloud Engineer", recs[0].Title)
	assert.Equal(t, 7, recs[1].ID)
	assert.Equal(t, 100, recs[1].Match)
	assert.Contains(t, gen.prompt, "Name: Asha")
	assert.Contains(t, gen.prompt, "Frameworks: None")
	assert.Contains(t, gen.prompt, "Built a Go CLI")
}

func TestRecommend_WrappedObject(t *testing.T) {
	recs, err := ParseRecommendations(`{"recommendations":[{"title":"Data Analyst","match":80}]}`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Data Analyst", recs[0].Title)
}

func TestRecommend_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{"no generator", nil},
		{"generator error", &stubGenerator{err: errors.New("quota exceeded")}},
		{"not json", &stubGenerator{reply: "Here are some careers you might like"}},
		{"empty array", &stubGenerator{reply: "[]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdvisor(t, tt.gen, nil)
			got := a.Recommend(context.Background(), profile())
			assert.Equal(t, a.Fallback(profile()), got)
			assert.Len(t, got, 5)
		})
	}
}

func TestRecommend_ResumeFailureIsIgnored(t *testing.T) {
	gen := &stubGenerator{reply: `[{"title":"Backend Developer","match":90}]`}
	a := newAdvisor(t, gen, stubResumes{err: errors.New("no such key")})

	answers := profile()
	answers.ResumeKey = "missing.pdf"
	recs := a.Recommend(context.Background(), answers)
	require.Len(t, recs, 1)
	assert.NotContains(t, gen.prompt, "Resume:")
}

func TestFallback_DeterministicAndRanked(t *testing.T) {
	a := newAdvisor(t, nil, nil)

	first := a.Fallback(profile())
	second := a.Fallback(profile())
	assert.Equal(t, first, second)

	require.NotEmpty(t, first)
	for i, r := range first {
		assert.Equal(t, i+1, r.ID)
		assert.GreaterOrEqual(t, r.Match, 70)
		assert.LessOrEqual(t, r.Match, 95)
		if i > 0 {
			assert.GreaterOrEqual(t, first[i-1].Match, r.Match)
		}
	}
}

func TestFallback_WeakProfileGetsFiveCareers(t *testing.T) {
	a := newAdvisor(t, nil, nil)
	recs := a.Fallback(domain.ProfileAnswers{Name: "Ravi"})
	require.Len(t, recs, 5)
	titles := make([]string, 0, len(recs))
	for _, r := range recs {
		titles = append(titles, r.Title)
	}
	assert.ElementsMatch(t, []string{"Full Stack Developer", "Data Scientist", "Product Manager", "UI/UX Designer", "Backend Developer"}, titles)
}

func TestAnalyzeSkills(t *testing.T) {
	a := newAdvisor(t, nil, nil)
	target := domain.Recommendation{Title: "Full Stack Developer", Skills: []string{"JavaScript", "React", "Node.js", "Supabase"}}

	got := a.AnalyzeSkills([]string{"javascript", "Node"}, target)

	assert.Equal(t, []string{"JavaScript", "Node.js"}, got.Existing)
	assert.Equal(t, []string{"React", "Supabase"}, got.Missing)
	require.Len(t, got.LearningPath, 2)
	assert.Equal(t, domain.PriorityHigh, got.LearningPath[0].Priority)
	assert.Equal(t, "1-2 months", got.LearningPath[1].TimeEstimate)
	assert.Len(t, got.LearningPath[1].Resources, 3)
}

func TestAnalyzeSkills_DefaultLearningStep(t *testing.T) {
	a := newAdvisor(t, nil, nil)
	got := a.AnalyzeSkills(nil, domain.Recommendation{Skills: []string{"Figma"}})

	require.Len(t, got.LearningPath, 1)
	step := got.LearningPath[0]
	assert.Equal(t, domain.PriorityMedium, step.Priority)
	assert.Equal(t, "2-3 months", step.TimeEstimate)
	assert.Equal(t, "Learn Figma - Official Docs", step.Resources[0].Name)
	assert.Empty(t, got.Existing)
}

func TestReply(t *testing.T) {
	history := []domain.ChatMessage{
		{Sender: domain.SenderUser, Text: "m1"},
		{Sender: domain.SenderAssistant, Text: "m2"},
		{Sender: domain.SenderUser, Text: "m3"},
		{Sender: domain.SenderAssistant, Text: "m4"},
		{Sender: domain.SenderUser, Text: "m5"},
		{Sender: domain.SenderAssistant, Text: "m6"},
	}
	p := profile()

	gen := &stubGenerator{reply: "  Focus on Go and PostgreSQL.  "}
	a := newAdvisor(t, gen, nil)
	assert.Equal(t, "Focus on Go and PostgreSQL.", a.Reply(context.Background(), "what next?", history, &p))
	assert.NotContains(t, gen.prompt, "m1")
	assert.Contains(t, gen.prompt, "assistant: m6")
	assert.Contains(t, gen.prompt, "User Profile: Asha, Graduate")
}

func TestReply_CannedFallbacks(t *testing.T) {
	a := newAdvisor(t, &stubGenerator{err: errors.New("timeout")}, nil)
	p := profile()

	tests := []struct {
		message string
		want    string
	}{
		{"Can you review my CV?", "resume tips"},
		{"How do I prepare for an interview?", "prepare for interviews"},
		{"Which course should I learn next?", "build skills"},
		{"hello", "help with your career questions"},
	}
	for _, tt := range tests {
		got := a.Reply(context.Background(), tt.message, nil, &p)
		assert.Contains(t, got, tt.want, tt.message)
		assert.Contains(t, got, "Computer Science/IT", tt.message)
	}

	anon := a.Reply(context.Background(), "hello", nil, nil)
	assert.True(t, strings.HasSuffix(anon, "Complete the career assessment to get personalized recommendations!"))
}

func TestWelcome(t *testing.T) {
	p := profile()
	assert.True(t, strings.HasPrefix(Welcome(&p), "Hi Asha!"))
	assert.True(t, strings.HasPrefix(Welcome(nil), "Hi! "))
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1]`, CleanJSON("```\n[1]```"))
	assert.Equal(t, `[1]`, CleanJSON("  [1]  "))
}
