package services

import (
	"fmt"
	"unicode/utf8"
)

// MaxPromptLength is the longest prompt accepted, counted in Unicode code
// points (not bytes or UTF-16 units).
const MaxPromptLength = 1000

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ValidatePrompt checks that prompt holds between 1 and MaxPromptLength characters.
func ValidatePrompt(prompt string) *ValidationError {
	n := utf8.RuneCountInString(prompt)
	if n == 0 {
		return NewFieldError("prompt", "Prompt is required")
	}
	if n > MaxPromptLength {
		return NewFieldError("prompt", fmt.Sprintf("Prompt must be at most %d characters", MaxPromptLength))
	}
	return nil
}
