package exception

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is a domain error that maps directly onto the HTTP envelope.
type AppError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func Validation(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

// Upstream wraps a failure from the LLM or embedding service. There is
// no retry layer; the provider error surfaces as-is.
func Upstream(service string, err error) *AppError {
	return &AppError{
		Code:    fiber.StatusBadGateway,
		Message: fmt.Sprintf("%s request failed: %v", service, err),
	}
}

// AmbiguousResumeError carries enough information for the caller to
// resolve a low-confidence resume match. It is a structured payload,
// not a hard failure.
type AmbiguousResumeError struct {
	BestMatchName string  `json:"best_match_name"`
	Score         float32 `json:"similarity_score"`
	Threshold     float32 `json:"threshold"`
}

func (e *AmbiguousResumeError) Error() string {
	return fmt.Sprintf("no resume matched confidently: best match %q scored %.2f (threshold %.2f)",
		e.BestMatchName, e.Score, e.Threshold)
}
