package registry

import (
	"fmt"
	"strings"
)

// DuplicateNameError is returned by Register when an entry with the same
// name already exists. Registration never overwrites silently; run-time
// precedence over static agents is Materialize's job, not Register's.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("dynamic agent '%s' is already registered", e.Name)
}

// ValidationError reports every field constraint an entry violated, not just
// the first, so a caller can fix all issues in one pass.
type ValidationError struct {
	Name       string
	Violations []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid dynamic agent '%s': %s", e.Name, strings.Join(e.Violations, "; "))
}
