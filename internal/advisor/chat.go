package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadolammi/careercompass/internal/domain"
)

// Reply answers message in the context of the recent transcript. Generator
// failures fall back to a canned answer picked by keyword.
func (a *Advisor) Reply(ctx context.Context, message string, history []domain.ChatMessage, profile *domain.ProfileAnswers) string {
	if a.gen != nil {
		text, err := a.gen.Generate(ctx, chatPrompt(message, history, profile))
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if err != nil {
			a.log.Warn("chat generation failed, using canned reply", "error", err)
		}
	}
	return cannedReply(message, profile)
}

// Welcome is the assistant's opening line for an empty transcript.
func Welcome(profile *domain.ProfileAnswers) string {
	if profile != nil && profile.Name != "" {
		return fmt.Sprintf("Hi %s! I'm your AI career advisor. I can help you with resume tips, course suggestions, interview preparation, and career guidance based on your profile. What would you like to know?", profile.Name)
	}
	return "Hi! I'm your AI career advisor. I can help you with resume tips, course suggestions, interview preparation, and career guidance. What would you like to know?"
}

func cannedReply(message string, profile *domain.ProfileAnswers) string {
	lower := strings.ToLower(message)
	field := ""
	if profile != nil {
		field = profile.FieldOfStudy
	}

	switch {
	case strings.Contains(lower, "resume") || strings.Contains(lower, "cv"):
		reply := `Here are key resume tips for Indian students:

• Keep it concise: 1-2 pages maximum, focus on relevant information
• Technical skills section: list programming languages, frameworks, and tools prominently
• Project showcase: include 2-3 key projects with technologies used and outcomes
• Quantify achievements: use numbers wherever possible
• ATS-friendly format: use simple formatting and avoid graphics
• Contact information: professional email, LinkedIn profile, GitHub for tech roles`
		if field != "" {
			reply += fmt.Sprintf("\n\nBased on your profile in %s, make sure to highlight relevant projects and skills!", field)
		}
		return reply

	case strings.Contains(lower, "interview"):
		reply := `To prepare for interviews:

• Revise fundamentals: data structures, algorithms, and your core subjects
• Practise explaining your projects end to end, including trade-offs you made
• Do mock interviews with friends or on platforms like Pramp
• Research the company and the role before each round
• Prepare a few questions of your own for the interviewer`
		if field != "" {
			reply += fmt.Sprintf("\n\nFor %s roles, expect technical questions drawn from your coursework.", field)
		}
		return reply

	case strings.Contains(lower, "skill") || strings.Contains(lower, "learn") || strings.Contains(lower, "course"):
		reply := `A practical way to build skills:

• Pick one target role and list the skills it asks for
• Learn one skill at a time with a small project to prove it
• Use free resources first: official docs, freeCodeCamp, YouTube courses
• Publish your work on GitHub and write about what you learned`
		if field != "" {
			reply += fmt.Sprintf("\n\nOpen the skills view to see a learning path tailored to your %s background.", field)
		}
		return reply
	}

	reply := `I'm here to help with your career questions! I can assist with:

• Career recommendations based on your skills and interests
• Skill development guidance and learning resources
• Resume and interview preparation tips
• Job market insights for the Indian tech industry

What specific area would you like to explore?`
	if field != "" {
		return reply + fmt.Sprintf("\n\nI have your assessment data and can provide personalized advice based on your background in %s.", field)
	}
	return reply + "\n\nComplete the career assessment to get personalized recommendations!"
}
