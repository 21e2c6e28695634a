package ports

import (
	"context"

	"LessonAnalyzer/internal/domain"
	"LessonAnalyzer/internal/prompt"
)

// ModelClient sends a rendered prompt to the text-generation service.
// Non-2xx responses are reported as a failure outcome, not as an error.
type ModelClient interface {
	Complete(ctx context.Context, p prompt.Prompt) (domain.Outcome, error)
}

// ContentPreparer cleans raw content before it is placed into a prompt.
type ContentPreparer interface {
	Prepare(content string) domain.ContentProfile
}

// Analyzer is the inbound port used by the HTTP layer and the CLI.
type Analyzer interface {
	Analyze(ctx context.Context, in domain.RawInput) (domain.AnalysisResult, error)
}
