package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller input that cannot be analysed.
	ErrValidation = errors.New("content and vibe required")
	// ErrConfiguration marks a deployment without the model credential.
	ErrConfiguration = errors.New("model credential not configured")
	// ErrParse marks model output without a usable structured object.
	ErrParse = errors.New("model output not parsable")
)

// ServiceError is an upstream failure that must be surfaced to the caller.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Status, e.Message)
}
