package usecase

import (
	"net/http"
	"strings"

	"LessonAnalyzer/internal/domain"
)

// Verdict is the decision taken for an upstream failure.
type Verdict int

const (
	// VerdictTerminal surfaces the failure to the caller.
	VerdictTerminal Verdict = iota
	// VerdictRecoverable hides the failure behind the demo fallback.
	VerdictRecoverable
)

func (v Verdict) String() string {
	if v == VerdictRecoverable {
		return "recoverable"
	}
	return "terminal"
}

// Classify treats rate limiting, billing and model-access problems as
// recoverable; everything else is terminal.
func Classify(f domain.Failure) Verdict {
	switch f.Status {
	case http.StatusTooManyRequests, http.StatusPaymentRequired, http.StatusNotFound:
		return VerdictRecoverable
	}

	if f.Body == nil {
		return VerdictTerminal
	}
	switch f.Body.Type {
	case "not_found_error":
		return VerdictRecoverable
	case "invalid_request_error":
		if strings.Contains(f.Body.Message, "credit") {
			return VerdictRecoverable
		}
	}
	return VerdictTerminal
}

// TerminalError converts a failure into the error surfaced to the caller.
func TerminalError(f domain.Failure) *domain.ServiceError {
	msg := "Unknown error"
	if f.Body != nil && f.Body.Message != "" {
		msg = f.Body.Message
	}
	return &domain.ServiceError{Status: f.Status, Message: msg}
}
