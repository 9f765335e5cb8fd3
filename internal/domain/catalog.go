package domain

import (
	"fmt"
	"slices"
)

type FieldKind string

const (
	FieldText        FieldKind = "text"
	FieldNumber      FieldKind = "number"
	FieldSelect      FieldKind = "select"
	FieldMultiSelect FieldKind = "multiselect"
	FieldTextArea    FieldKind = "textarea"
)

type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Min         int       `json:"min,omitempty"`
	Max         int       `json:"max,omitempty"`
	MinSelected int       `json:"minSelected,omitempty"`
	MaxSelected int       `json:"maxSelected,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

type Section struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

// Catalog is the fixed assessment questionnaire.
var Catalog = []Section{
	{
		ID:          "personal",
		Title:       "Personal Information",
		Description: "Tell us about yourself to get personalized recommendations",
		Fields: []Field{
			{Name: "name", Label: "Full Name", Kind: FieldText, Required: true, Placeholder: "Enter your full name"},
			{Name: "age", Label: "Age", Kind: FieldNumber, Required: true, Min: 16, Max: 35},
			{Name: "education", Label: "Current Education Level", Kind: FieldSelect, Required: true, Options: []string{
				"12th Grade (Science)", "12th Grade (Commerce)", "12th Grade (Arts)", "Diploma",
				"Undergraduate (1st Year)", "Undergraduate (2nd Year)", "Undergraduate (3rd Year)",
				"Undergraduate (Final Year)", "Graduate", "Postgraduate", "PhD",
			}},
			{Name: "location", Label: "Location (City, State)", Kind: FieldText, Required: true, Placeholder: "e.g., Bangalore, Karnataka"},
			{Name: "fieldOfStudy", Label: "Field of Study", Kind: FieldSelect, Required: true, Options: []string{
				"Computer Science/IT", "Electronics & Communication", "Mechanical Engineering",
				"Civil Engineering", "Electrical Engineering", "Chemical Engineering", "Biotechnology",
				"Mathematics", "Physics", "Chemistry", "Commerce/Business", "Economics",
				"Arts/Humanities", "Other",
			}},
		},
	},
	{
		ID:          "skills",
		Title:       "Technical Skills & Experience",
		Description: "Help us understand your current technical capabilities",
		Fields: []Field{
			{Name: "programmingLanguages", Label: "Programming Languages", Kind: FieldMultiSelect, Options: []string{
				"Python", "Java", "JavaScript", "C++", "C#", "C", "Go", "Rust",
				"PHP", "Swift", "Kotlin", "R", "MATLAB", "Scala", "Ruby", "None",
			}},
			{Name: "frameworks", Label: "Frameworks & Libraries", Kind: FieldMultiSelect, Options: []string{
				"React", "Angular", "Vue.js", "Node.js", "Django", "Flask", "Spring Boot", "Express.js",
				"Laravel", "ASP.NET", "Flutter", "React Native", "TensorFlow", "PyTorch", "None",
			}},
			{Name: "databases", Label: "Database Experience", Kind: FieldMultiSelect, Options: []string{
				"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "Oracle", "SQL Server",
				"Cassandra", "Firebase", "None",
			}},
			{Name: "cloudPlatforms", Label: "Cloud Platforms", Kind: FieldMultiSelect, Options: []string{
				"AWS", "Supabase", "Microsoft Azure", "Firebase", "Heroku", "DigitalOcean",
				"Vercel", "Netlify", "None",
			}},
			{Name: "toolsAndTech", Label: "Tools & Technologies", Kind: FieldMultiSelect, Options: []string{
				"Git/GitHub", "Docker", "Kubernetes", "Jenkins", "Figma", "Adobe Creative Suite",
				"Tableau", "Power BI", "Excel", "Jira", "Slack", "VS Code", "IntelliJ", "None",
			}},
		},
	},
	{
		ID:          "interests",
		Title:       "Career Interests & Preferences",
		Description: "What type of work excites you the most?",
		Fields: []Field{
			{Name: "careerInterests", Label: "Career Areas of Interest", Kind: FieldMultiSelect, Required: true, MinSelected: 3, Options: []string{
				"Software Development", "Web Development", "Mobile App Development",
				"Data Science & Analytics", "Artificial Intelligence/Machine Learning",
				"Cybersecurity", "Cloud Computing", "DevOps", "Product Management",
				"Project Management", "Business Analysis", "Digital Marketing", "Content Creation",
				"Social Media Marketing", "UI/UX Design", "Graphic Design", "Game Development",
				"Quality Assurance/Testing", "Technical Writing", "Consulting",
				"Sales & Business Development", "Human Resources", "Finance",
			}},
			{Name: "workEnvironment", Label: "Preferred Work Environment", Kind: FieldSelect, Required: true, Options: []string{
				"Early-stage Startup (High risk, high reward)", "Growth-stage Startup (Scaling phase)",
				"Large Corporation (Established processes)", "Government/Public Sector",
				"Freelance/Consulting", "Remote Work", "Hybrid Work", "No Preference",
			}},
			{Name: "workStyle", Label: "Preferred Work Style", Kind: FieldSelect, Required: true, Options: []string{
				"Individual contributor (Working independently)",
				"Team collaboration (Working closely with others)",
				"Leadership role (Managing teams)",
				"Client-facing (Direct customer interaction)",
				"Behind-the-scenes (Focus on technical work)",
				"Mixed approach",
			}},
			{Name: "careerGoals", Label: "Short-term Career Goals (1-2 years)", Kind: FieldTextArea, Required: true},
		},
	},
	{
		ID:          "experience",
		Title:       "Experience & Background",
		Description: "Share your experience and achievements",
		Fields: []Field{
			{Name: "internships", Label: "Internship & Work Experience", Kind: FieldTextArea},
			{Name: "projects", Label: "Personal/Academic Projects", Kind: FieldTextArea, Required: true},
			{Name: "certifications", Label: "Certifications & Courses", Kind: FieldTextArea},
			{Name: "achievements", Label: "Achievements & Awards", Kind: FieldTextArea},
			{Name: "strengths", Label: "Key Strengths", Kind: FieldMultiSelect, Required: true, MaxSelected: 5, Options: []string{
				"Problem Solving", "Analytical Thinking", "Creative Thinking", "Leadership",
				"Team Collaboration", "Communication", "Time Management", "Adaptability",
				"Learning Agility", "Technical Writing", "Presentation Skills", "Attention to Detail",
				"Project Management", "Customer Service", "Innovation",
			}},
			{Name: "languages", Label: "Languages Known", Kind: FieldMultiSelect, Required: true, Options: []string{
				"English", "Hindi", "Tamil", "Telugu", "Kannada", "Malayalam", "Bengali", "Marathi",
				"Gujarati", "Punjabi", "Urdu", "Odia", "French", "German", "Spanish", "Japanese", "Mandarin",
			}},
		},
	},
}

// Validate checks answers against the catalog and returns field name to
// message for every problem. An empty map means the answers are complete.
func Validate(a ProfileAnswers) map[string]string {
	errs := map[string]string{}
	for _, section := range Catalog {
		for _, f := range section.Fields {
			if msg := f.check(a.Field(f.Name)); msg != "" {
				errs[f.Name] = msg
			}
		}
	}
	return errs
}

func (f Field) check(v Value) string {
	if v.Empty() {
		if f.Required {
			return fmt.Sprintf("%s is required", f.Label)
		}
		return ""
	}
	switch f.Kind {
	case FieldNumber:
		if (f.Min != 0 && v.Num < f.Min) || (f.Max != 0 && v.Num > f.Max) {
			return fmt.Sprintf("%s must be between %d and %d", f.Label, f.Min, f.Max)
		}
	case FieldSelect:
		if !slices.Contains(f.Options, v.Text) {
			return fmt.Sprintf("%s has an unknown option %q", f.Label, v.Text)
		}
	case FieldMultiSelect:
		for _, item := range v.List {
			if !slices.Contains(f.Options, item) {
				return fmt.Sprintf("%s has an unknown option %q", f.Label, item)
			}
		}
		if f.MinSelected > 0 && len(v.List) < f.MinSelected {
			return fmt.Sprintf("Please select at least %d options for %s", f.MinSelected, f.Label)
		}
		if f.MaxSelected > 0 && len(v.List) > f.MaxSelected {
			return fmt.Sprintf("Please select at most %d options for %s", f.MaxSelected, f.Label)
		}
	}
	return ""
}
