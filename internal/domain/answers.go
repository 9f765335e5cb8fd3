package domain

import (
	"strconv"
	"time"
)

// ProfileAnswers holds one completed (or drafted) assessment. Field names on
// the wire match the catalog field names.
type ProfileAnswers struct {
	ID          string    `json:"id,omitempty"`
	CompletedAt time.Time `json:"completedAt,omitzero"`

	Name         string `json:"name,omitempty"`
	Age          int    `json:"age,omitempty"`
	Education    string `json:"education,omitempty"`
	Location     string `json:"location,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`

	ProgrammingLanguages []string `json:"programmingLanguages,omitempty"`
	Frameworks           []string `json:"frameworks,omitempty"`
	Databases            []string `json:"databases,omitempty"`
	CloudPlatforms       []string `json:"cloudPlatforms,omitempty"`
	ToolsAndTech         []string `json:"toolsAndTech,omitempty"`

	CareerInterests []string `json:"careerInterests,omitempty"`
	WorkEnvironment string   `json:"workEnvironment,omitempty"`
	WorkStyle       string   `json:"workStyle,omitempty"`
	CareerGoals     string   `json:"careerGoals,omitempty"`

	Internships    string   `json:"internships,omitempty"`
	Projects       string   `json:"projects,omitempty"`
	Certifications string   `json:"certifications,omitempty"`
	Achievements   string   `json:"achievements,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Languages      []string `json:"languages,omitempty"`

	// Optional uploaded resume (object key in the resume bucket).
	ResumeKey  string `json:"resumeKey,omitempty"`
	ResumeMime string `json:"resumeMime,omitempty"`
}

// Value is the catalog-typed view of one answer.
type Value struct {
	Kind FieldKind
	Text string
	Num  int
	List []string
}

func (v Value) Empty() bool {
	switch v.Kind {
	case FieldNumber:
		return v.Num == 0
	case FieldMultiSelect:
		return len(v.List) == 0
	default:
		return v.Text == ""
	}
}

func (v Value) String() string {
	if v.Kind == FieldNumber {
		return strconv.Itoa(v.Num)
	}
	return v.Text
}

// Field returns the answer stored under a catalog field name. Unknown names
// yield a zero Value.
func (a ProfileAnswers) Field(name string) Value {
	switch name {
	case "name":
		return Value{Kind: FieldText, Text: a.Name}
	case "age":
		return Value{Kind: FieldNumber, Num: a.Age}
	case "education":
		return Value{Kind: FieldSelect, Text: a.Education}
	case "location":
		return Value{Kind: FieldText, Text: a.Location}
	case "fieldOfStudy":
		return Value{Kind: FieldSelect, Text: a.FieldOfStudy}
	case "programmingLanguages":
		return Value{Kind: FieldMultiSelect, List: a.ProgrammingLanguages}
	case "frameworks":
		return Value{Kind: FieldMultiSelect, List: a.Frameworks}
	case "databases":
		return Value{Kind: FieldMultiSelect, List: a.Databases}
	case "cloudPlatforms":
		return Value{Kind: FieldMultiSelect, List: a.CloudPlatforms}
	case "toolsAndTech":
		return Value{Kind: FieldMultiSelect, List: a.ToolsAndTech}
	case "careerInterests":
		return Value{Kind: FieldMultiSelect, List: a.CareerInterests}
	case "workEnvironment":
		return Value{Kind: FieldSelect, Text: a.WorkEnvironment}
	case "workStyle":
		return Value{Kind: FieldSelect, Text: a.WorkStyle}
	case "careerGoals":
		return Value{Kind: FieldTextArea, Text: a.CareerGoals}
	case "internships":
		return Value{Kind: FieldTextArea, Text: a.Internships}
	case "projects":
		return Value{Kind: FieldTextArea, Text: a.Projects}
	case "certifications":
		return Value{Kind: FieldTextArea, Text: a.Certifications}
	case "achievements":
		return Value{Kind: FieldTextArea, Text: a.Achievements}
	case "strengths":
		return Value{Kind: FieldMultiSelect, List: a.Strengths}
	case "languages":
		return Value{Kind: FieldMultiSelect, List: a.Languages}
	}
	return Value{}
}

// Skills is every technical skill the user selected, without the "None"
// placeholder.
func (a ProfileAnswers) Skills() []string {
	var out []string
	for _, group := range [][]string{a.ProgrammingLanguages, a.Frameworks, a.Databases, a.CloudPlatforms, a.ToolsAndTech} {
		for _, s := range group {
			if s != "None" && s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Clone returns a deep copy.
func (a ProfileAnswers) Clone() ProfileAnswers {
	c := a
	c.ProgrammingLanguages = cloneStrings(a.ProgrammingLanguages)
	c.Frameworks = cloneStrings(a.Frameworks)
	c.Databases = cloneStrings(a.Databases)
	c.CloudPlatforms = cloneStrings(a.CloudPlatforms)
	c.ToolsAndTech = cloneStrings(a.ToolsAndTech)
	c.CareerInterests = cloneStrings(a.CareerInterests)
	c.Strengths = cloneStrings(a.Strengths)
	c.Languages = cloneStrings(a.Languages)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
