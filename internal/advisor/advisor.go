// Package advisor builds career recommendations, skill-gap analyses and chat
// replies. Every operation degrades to a deterministic local answer when the
// generator is missing or fails.
package advisor

import (
	"context"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/logger"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Generator turns a prompt into free-form text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ResumeSource fetches the plain text of an uploaded resume.
type ResumeSource interface {
	ResumeText(ctx context.Context, key, mime string) (string, error)
}

type career struct {
	Title              string   `yaml:"title"`
	Description        string   `yaml:"description"`
	Skills             []string `yaml:"skills"`
	SalaryRange        string   `yaml:"salaryRange"`
	Growth             string   `yaml:"growth"`
	Companies          []string `yaml:"companies"`
	TimeToEntry        string   `yaml:"timeToEntry"`
	Reasoning          string   `yaml:"reasoning"`
	CareerPath         string   `yaml:"careerPath"`
	Responsibilities   []string `yaml:"responsibilities"`
	IndustryOutlook    string   `yaml:"industryOutlook"`
	JobOpenings        string   `yaml:"jobOpenings"`
	RelatedInterests   []string `yaml:"relatedInterests"`
	PreferredEducation []string `yaml:"preferredEducation"`
}

func (c career) recommendation(id, match int) domain.Recommendation {
	return domain.Recommendation{
		ID:               id,
		Title:            c.Title,
		Match:            match,
		Description:      c.Description,
		Skills:           append([]string(nil), c.Skills...),
		SalaryRange:      c.SalaryRange,
		Growth:           c.Growth,
		Companies:        append([]string(nil), c.Companies...),
		TimeToEntry:      c.TimeToEntry,
		Reasoning:        c.Reasoning,
		CareerPath:       c.CareerPath,
		Responsibilities: append([]string(nil), c.Responsibilities...),
		IndustryOutlook:  c.IndustryOutlook,
		JobOpenings:      c.JobOpenings,
	}
}

type learningEntry struct {
	Priority     domain.Priority   `yaml:"priority"`
	TimeEstimate string            `yaml:"timeEstimate"`
	Resources    []domain.Resource `yaml:"resources"`
}

type Advisor struct {
	gen       Generator
	resumes   ResumeSource
	log       *logger.Logger
	careers   []career
	resources map[string]learningEntry
}

// New loads the embedded tables. gen and resumes may be nil.
func New(gen Generator, resumes ResumeSource, log *logger.Logger) (*Advisor, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &Advisor{gen: gen, resumes: resumes, log: log.With("service", "Advisor")}
	if err := loadYAML("data/careers.yaml", &a.careers); err != nil {
		return nil, err
	}
	if err := loadYAML("data/resources.yaml", &a.resources); err != nil {
		return nil, err
	}
	return a, nil
}

func loadYAML(name string, dst any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
