package domain

// RawInput is the unvalidated body of an analyze call. Fields stay untyped
// so that non-string values can be rejected by validation.
type RawInput struct {
	Content any `json:"content"`
	Vibe    any `json:"vibe"`
}

// AnalysisRequest is a validated call into the analysis pipeline.
type AnalysisRequest struct {
	Content string
	Vibe    string
}

// Difficulty grades the expected learner level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// AnalysisResult is the single shape returned on every successful path.
type AnalysisResult struct {
	ContentType           string     `json:"contentType"`
	KeyTopics             []string   `json:"keyTopics"`
	LearningObjectives    []string   `json:"learningObjectives"`
	SuggestedInteractions []string   `json:"suggestedInteractions"`
	ValueProposition      string     `json:"valueProposition"`
	TargetAudience        string     `json:"targetAudience"`
	EstimatedDuration     string     `json:"estimatedDuration"`
	Difficulty            Difficulty `json:"difficulty"`
	Vibe                  string     `json:"vibe"`
	IsMock                bool       `json:"isMock,omitempty"`
	MockMessage           string     `json:"mockMessage,omitempty"`
}

// Outcome is the raw result of one call to the text-generation service.
// Exactly one of Success or Failure is set.
type Outcome struct {
	Success *Success
	Failure *Failure
}

// Success carries the first text segment of the model reply.
type Success struct {
	Text string
}

// Failure describes a non-2xx upstream response.
type Failure struct {
	Status int
	// Body is nil when the upstream error body could not be parsed.
	Body *ErrorBody
}

// ErrorBody is the upstream error descriptor.
type ErrorBody struct {
	Type    string
	Message string
}

// Succeeded builds a success outcome.
func Succeeded(text string) Outcome {
	return Outcome{Success: &Success{Text: text}}
}

// Failed builds a failure outcome.
func Failed(status int, body *ErrorBody) Outcome {
	return Outcome{Failure: &Failure{Status: status, Body: body}}
}

// ContentProfile describes content after preparation for prompting.
type ContentProfile struct {
	Text     string
	Language string
	FromHTML bool
}
