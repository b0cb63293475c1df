package hook

import "fmt"

// DuplicateNameError is returned by Dispatcher.Register when a plugin with
// the same name is already registered. Plugin names are a cross-plugin
// invariant, never resolved silently.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("plugin '%s' is already registered", e.Name)
}
