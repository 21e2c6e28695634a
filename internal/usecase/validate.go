package usecase

import (
	"fmt"
	"strings"

	"LessonAnalyzer/internal/domain"
)

// Validate turns raw input into a request. Missing, blank or non-string
// fields fail with domain.ErrValidation.
func Validate(in domain.RawInput) (domain.AnalysisRequest, error) {
	content, ok := nonEmptyString(in.Content)
	if !ok {
		return domain.AnalysisRequest{}, fmt.Errorf("content: %w", domain.ErrValidation)
	}
	vibe, ok := nonEmptyString(in.Vibe)
	if !ok {
		return domain.AnalysisRequest{}, fmt.Errorf("vibe: %w", domain.ErrValidation)
	}
	return domain.AnalysisRequest{Content: content, Vibe: vibe}, nil
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
