package advisor

import (
	"fmt"
	"strings"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

const recommendationFormat = `
REQUIREMENTS:
1. Provide exactly 5 career recommendations
2. Focus on realistic opportunities in India
3. Include salary ranges in INR (Lakhs Per Annum)
4. Provide match percentage (70-95% range)
5. Include specific reasoning for each recommendation

Return ONLY a valid JSON array of objects with the keys
id, title, match, description, skills, salaryRange, growth, companies,
timeToEntry, reasoning, careerPath, responsibilities, industryOutlook, jobOpenings.
Do not include any text before or after the JSON array.
`

func careerPrompt(a domain.ProfileAnswers, resume string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Based on the following student profile, recommend exactly 5 suitable career paths.

STUDENT PROFILE:
Name: %s
Age: %d
Education: %s
Field of Study: %s
Location: %s

Technical Skills:
- Programming Languages: %s
- Frameworks: %s
- Databases: %s
- Cloud Platforms: %s
- Tools: %s

Career Interests: %s
Work Environment Preference: %s
Work Style: %s
Career Goals: %s

Experience:
- Internships: %s
- Projects: %s
- Certifications: %s
- Achievements: %s

Strengths: %s
Languages: %s
`,
		a.Name, a.Age, a.Education, a.FieldOfStudy, a.Location,
		listOrNone(a.ProgrammingLanguages),
		listOrNone(a.Frameworks),
		listOrNone(a.Databases),
		listOrNone(a.CloudPlatforms),
		listOrNone(a.ToolsAndTech),
		strings.Join(a.CareerInterests, ", "), a.WorkEnvironment, a.WorkStyle, a.CareerGoals,
		orNone(a.Internships), orNone(a.Projects), orNone(a.Certifications), orNone(a.Achievements),
		strings.Join(a.Strengths, ", "), strings.Join(a.Languages, ", "),
	)
	if resume != "" {
		fmt.Fprintf(&b, "\nResume:\n%s\n", resume)
	}
	b.WriteString(recommendationFormat)
	return b.String()
}

// chatContext is the number of earlier transcript messages included in a
// chat prompt.
const chatContext = 5

func chatPrompt(message string, history []domain.ChatMessage, profile *domain.ProfileAnswers) string {
	if len(history) > chatContext {
		history = history[len(history)-chatContext:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Text))
	}

	var b strings.Builder
	b.WriteString("You are CareerAI, a helpful career advisor for Indian students.\n\n")
	if profile != nil {
		fmt.Fprintf(&b, "User Profile: %s, %s, interested in %s\n\n",
			profile.Name, profile.Education, strings.Join(profile.CareerInterests, ", "))
	}
	fmt.Fprintf(&b, "Previous conversation:\n%s\n\nCurrent question: %s\n\n", strings.Join(lines, "\n"), message)
	b.WriteString(`Provide helpful, actionable advice specific to the Indian job market and education system.
Be conversational, supportive, and practical. Keep responses concise but informative.
Reply in plain text, not JSON.`)
	return b.String()
}
