package usecase

import (
	"unicode/utf8"

	"LessonAnalyzer/internal/domain"
)

const (
	shortFormLimit   = 500
	shortSessionSize = 1000

	// DemoMessage explains why a mock result was returned.
	DemoMessage = "Demo mode - Add credits to Anthropic account for real AI analysis"
)

// DemoFallback is returned when the model service is unusable. It is a fixed
// template; only the content length influences it.
func DemoFallback(req domain.AnalysisRequest) domain.AnalysisResult {
	length := utf8.RuneCountInString(req.Content)

	contentType := "Short-form educational content"
	if length > shortFormLimit {
		contentType = "Long-form educational content"
	}
	duration := "30-45 minutes"
	if length > shortSessionSize {
		duration = "60-90 minutes"
	}

	return domain.AnalysisResult{
		ContentType: contentType,
		KeyTopics:   []string{"Educational Technology", "Interactive Learning", "Content Design"},
		LearningObjectives: []string{
			"Understand core concepts from the material",
			"Apply knowledge to practical scenarios",
			"Evaluate learning outcomes effectively",
		},
		SuggestedInteractions: []string{
			"Interactive quizzes and assessments",
			"Progress tracking dashboard",
			"Peer discussion forums",
			"AI-powered Q&A system",
		},
		ValueProposition:  "Transform static educational content into dynamic, personalized learning experiences using AI-driven analysis.",
		TargetAudience:    "Educators and learners seeking interactive educational experiences",
		EstimatedDuration: duration,
		Difficulty:        domain.DifficultyIntermediate,
		Vibe:              req.Vibe,
		IsMock:            true,
		MockMessage:       DemoMessage,
	}
}

// GenericFallback is returned when the model answered without a usable object.
func GenericFallback(req domain.AnalysisRequest) domain.AnalysisResult {
	contentType := "Short-form content"
	if utf8.RuneCountInString(req.Content) > shortFormLimit {
		contentType = "Long-form content"
	}

	return domain.AnalysisResult{
		ContentType: contentType,
		KeyTopics:   []string{"Educational Content", "Learning Design", "AI Integration"},
		LearningObjectives: []string{
			"Understand key concepts from the material",
			"Apply knowledge to practical scenarios",
			"Evaluate learning outcomes",
		},
		SuggestedInteractions: []string{
			"Interactive quizzes",
			"Progress tracking",
			"Discussion forums",
			"AI-powered Q&A",
		},
		ValueProposition:  "Transform educational content into engaging, interactive learning experiences.",
		TargetAudience:    "General learners",
		EstimatedDuration: "Varies",
		Difficulty:        domain.DifficultyIntermediate,
		Vibe:              req.Vibe,
	}
}
