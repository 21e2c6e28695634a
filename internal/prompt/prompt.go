package prompt

import (
	"fmt"
	"strings"
)

// Input carries everything the prompt is rendered from.
type Input struct {
	Content string
	Vibe    string
	// VibeDescription is set when the vibe is a known catalog entry.
	VibeDescription string
	// Language is the detected content language; empty or English adds nothing.
	Language string
}

// Prompt holds the two rendered sections.
type Prompt struct {
	System string
	User   string
}

// Text joins both sections into the single user message sent upstream.
func (p Prompt) Text() string {
	return p.System + "\n\n" + p.User
}

const schema = `{
  "contentType": "Brief description of content type (e.g., 'Long-form lecture', 'Research paper summary', 'Workshop guide')",
  "keyTopics": ["Array", "of", "3-5", "key", "topics"],
  "learningObjectives": ["Array", "of", "3-5", "specific", "learning", "objectives"],
  "suggestedInteractions": ["Array", "of", "4-6", "specific", "interactive", "elements"],
  "valueProposition": "A compelling 1-2 sentence value proposition for this learning experience",
  "targetAudience": "Description of the ideal learner for this content",
  "estimatedDuration": "Estimated time to complete (e.g., '45 minutes', '2 hours')",
  "difficulty": "Beginner, Intermediate, or Advanced"
}`

// Build renders the prompt. It is a pure function of in.
func Build(in Input) Prompt {
	var sys strings.Builder
	sys.WriteString("You are an expert educational content analyst and instructional designer. ")
	sys.WriteString("Your role is to analyze educational content and provide comprehensive recommendations for creating interactive learning experiences.\n\n")
	sys.WriteString("Analyze the provided educational content and return a JSON response with the following structure:\n")
	sys.WriteString(schema)
	sys.WriteString("\n\n")
	fmt.Fprintf(&sys, "Focus on practical, implementable suggestions that align with the %s design aesthetic.", in.Vibe)
	if d := strings.TrimSpace(in.VibeDescription); d != "" {
		fmt.Fprintf(&sys, " The %s aesthetic means: %s.", in.Vibe, strings.TrimSuffix(d, "."))
	}
	if lang := strings.TrimSpace(in.Language); lang != "" && !strings.EqualFold(lang, "english") {
		fmt.Fprintf(&sys, " The content is written in %s; write every field value in %s but keep the JSON keys in English.", lang, lang)
	}

	user := fmt.Sprintf("Analyze this educational content and provide recommendations:\n\n%s\n\nDesign Style: %s", in.Content, in.Vibe)

	return Prompt{System: sys.String(), User: user}
}
