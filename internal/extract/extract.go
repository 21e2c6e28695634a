package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"LessonAnalyzer/internal/domain"
)

// Analysis finds the first balanced JSON object in text that decodes into an
// analysis. Surrounding prose and trailing braces are ignored. Fields are not
// checked for completeness here.
func Analysis(text string) (domain.AnalysisResult, error) {
	candidates := objects(text)
	if len(candidates) == 0 {
		return domain.AnalysisResult{}, fmt.Errorf("no json object in response: %w", domain.ErrParse)
	}

	var lastErr error
	for _, candidate := range candidates {
		var raw payload
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			lastErr = err
			continue
		}
		return raw.result(), nil
	}

	return domain.AnalysisResult{}, fmt.Errorf("decode json object: %v: %w", lastErr, domain.ErrParse)
}

type payload struct {
	ContentType           scalar     `json:"contentType"`
	KeyTopics             stringList `json:"keyTopics"`
	LearningObjectives    stringList `json:"learningObjectives"`
	SuggestedInteractions stringList `json:"suggestedInteractions"`
	ValueProposition      scalar     `json:"valueProposition"`
	TargetAudience        scalar     `json:"targetAudience"`
	EstimatedDuration     scalar     `json:"estimatedDuration"`
	Difficulty            scalar     `json:"difficulty"`
	Vibe                  scalar     `json:"vibe"`
}

func (p payload) result() domain.AnalysisResult {
	return domain.AnalysisResult{
		ContentType:           string(p.ContentType),
		KeyTopics:             p.KeyTopics,
		LearningObjectives:    p.LearningObjectives,
		SuggestedInteractions: p.SuggestedInteractions,
		ValueProposition:      string(p.ValueProposition),
		TargetAudience:        string(p.TargetAudience),
		EstimatedDuration:     string(p.EstimatedDuration),
		Difficulty:            domain.Difficulty(p.Difficulty),
		Vibe:                  string(p.Vibe),
	}
}

// scalar accepts a JSON string or number. Other values decode to empty so a
// single odd scalar does not discard the whole object.
type scalar string

func (t *scalar) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		*t = scalar(val)
	case float64:
		*t = scalar(bytes.TrimSpace(data))
	default:
		*t = ""
	}
	return nil
}

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = stringList{one}
	return nil
}

// objects returns every top-level brace-balanced span of s, skipping braces
// that appear inside JSON strings. A '{' that is never closed is treated as
// prose and scanning resumes right after it. ASCII delimiters never occur
// inside multi-byte UTF-8 sequences, so a byte scan is safe.
func objects(s string) []string {
	var out []string
	for from := 0; from < len(s); {
		found, open := scan(s[from:])
		out = append(out, found...)
		if open < 0 {
			break
		}
		from += open + 1
	}
	return out
}

// scan collects balanced spans of s and reports where an unclosed span
// started, or -1 when every '{' was closed.
func scan(s string) ([]string, int) {
	var (
		out      []string
		depth    int
		start    = -1
		inString bool
		escape   bool
	)

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			switch b {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			// quotes outside an object are prose
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, s[start:i+1])
				start = -1
			}
		}
	}

	if depth > 0 {
		return out, start
	}
	return out, -1
}
