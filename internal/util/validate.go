package util

import (
	"fmt"
	"regexp"
)

// ValidationError represents a single field validation failure with enough
// detail to produce a human-readable report.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// namePattern is the canonical identifier shape for dynamically registered
// agents: lowercase letter first, then lowercase letters, digits, underscores
// or hyphens.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidName reports whether name matches the canonical agent name pattern.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// NamePatternString returns the pattern source for error messages.
func NamePatternString() string { return namePattern.String() }
