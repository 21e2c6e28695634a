package usecase

import (
	"strings"

	"LessonAnalyzer/internal/domain"
)

// Normalize forces the requested vibe onto result and fills any empty
// required field from the generic template, so every exit path has the same
// shape.
func Normalize(result domain.AnalysisResult, req domain.AnalysisRequest) domain.AnalysisResult {
	tmpl := GenericFallback(req)

	result.ContentType = orDefault(result.ContentType, tmpl.ContentType)
	result.KeyTopics = listOrDefault(result.KeyTopics, tmpl.KeyTopics)
	result.LearningObjectives = listOrDefault(result.LearningObjectives, tmpl.LearningObjectives)
	result.SuggestedInteractions = listOrDefault(result.SuggestedInteractions, tmpl.SuggestedInteractions)
	result.ValueProposition = orDefault(result.ValueProposition, tmpl.ValueProposition)
	result.TargetAudience = orDefault(result.TargetAudience, tmpl.TargetAudience)
	result.EstimatedDuration = orDefault(result.EstimatedDuration, tmpl.EstimatedDuration)
	result.Difficulty = canonicalDifficulty(result.Difficulty)
	result.Vibe = req.Vibe

	if !result.IsMock {
		result.MockMessage = ""
	}
	return result
}

func canonicalDifficulty(d domain.Difficulty) domain.Difficulty {
	for _, known := range []domain.Difficulty{
		domain.DifficultyBeginner,
		domain.DifficultyIntermediate,
		domain.DifficultyAdvanced,
	} {
		if strings.EqualFold(strings.TrimSpace(string(d)), string(known)) {
			return known
		}
	}
	return domain.DifficultyIntermediate
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func listOrDefault(items, def []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
