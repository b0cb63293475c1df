package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/agentgrid/internal/util"
	"github.com/hupe1980/agentgrid/model"
	"github.com/hupe1980/agentgrid/role"
)

const (
	minDescriptionLen = 10
	minPromptLen      = 20
)

// DefaultCapabilities is the default allowed-capability set for dynamic
// entries, mirroring the framework's built-in tool names.
var DefaultCapabilities = []string{
	"search",
	"web_fetch",
	"files",
	"code_exec",
	"math",
	"summarize",
	"memory",
	"shell",
}

// Entry is one dynamically registered agent definition.
type Entry struct {
	// Name uniquely identifies the entry (pattern ^[a-z][a-z0-9_-]*$).
	Name string `json:"name"`

	// Description documents the agent (at least 10 characters).
	Description string `json:"description"`

	// Capabilities the agent may use; non-empty, each drawn from the
	// registry's allowed set.
	Capabilities []string `json:"capabilities"`

	// PromptText is the agent prompt (at least 20 characters).
	PromptText string `json:"prompt_text"`

	// Tier selects the model tier the agent runs on.
	Tier model.Tier `json:"model_tier"`
}

// Options configures a Registry.
type Options struct {
	// AllowedCapabilities bounds what dynamic entries may declare.
	// Defaults to DefaultCapabilities.
	AllowedCapabilities []string
}

// WithAllowedCapabilities replaces the allowed-capability set.
func WithAllowedCapabilities(caps ...string) func(o *Options) {
	return func(o *Options) { o.AllowedCapabilities = caps }
}

// Registry is a mutable, concurrency-safe table of dynamic agent entries.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	allowed map[string]bool
}

// New creates an empty registry.
func New(optFns ...func(o *Options)) *Registry {
	opts := Options{AllowedCapabilities: DefaultCapabilities}
	for _, fn := range optFns {
		fn(&opts)
	}
	allowed := make(map[string]bool, len(opts.AllowedCapabilities))
	for _, c := range opts.AllowedCapabilities {
		allowed[c] = true
	}
	return &Registry{entries: map[string]Entry{}, allowed: allowed}
}

// Register validates every field of the entry and inserts it. It fails with
// a *ValidationError enumerating all violated constraints if any field is
// invalid, and with a *DuplicateNameError if the name is taken.
func (r *Registry) Register(name, description string, capabilities []string, promptText string, tier model.Tier) error {
	entry := Entry{
		Name:         name,
		Description:  description,
		Capabilities: append([]string(nil), capabilities...),
		PromptText:   promptText,
		Tier:         tier,
	}
	if violations := r.validate(entry); len(violations) > 0 {
		return &ValidationError{Name: name, Violations: violations}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	r.entries[name] = entry
	return nil
}

// validate returns all field constraint violations for an entry.
func (r *Registry) validate(e Entry) []string {
	var violations []string
	if !util.ValidName(e.Name) {
		violations = append(violations, (&util.ValidationError{
			Field:   "name",
			Value:   e.Name,
			Message: fmt.Sprintf("must match pattern %s", util.NamePatternString()),
		}).Error())
	}
	if len(e.Description) < minDescriptionLen {
		violations = append(violations, (&util.ValidationError{
			Field:   "description",
			Value:   e.Description,
			Message: fmt.Sprintf("must be at least %d characters", minDescriptionLen),
		}).Error())
	}
	if len(e.Capabilities) == 0 {
		violations = append(violations, (&util.ValidationError{
			Field:   "capabilities",
			Message: "must not be empty",
		}).Error())
	}
	for _, c := range e.Capabilities {
		if !r.allowed[c] {
			violations = append(violations, (&util.ValidationError{
				Field:   "capabilities",
				Value:   c,
				Message: fmt.Sprintf("capability '%s' is not in the allowed set", c),
			}).Error())
		}
	}
	if len(e.PromptText) < minPromptLen {
		violations = append(violations, (&util.ValidationError{
			Field:   "prompt_text",
			Value:   e.PromptText,
			Message: fmt.Sprintf("must be at least %d characters", minPromptLen),
		}).Error())
	}
	if !e.Tier.Valid() {
		violations = append(violations, (&util.ValidationError{
			Field:   "model_tier",
			Value:   string(e.Tier),
			Message: "must be one of tier1, tier2, tier3",
		}).Error())
	}
	return violations
}

// Unregister removes the named entry, reporting whether one existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[name]
	delete(r.entries, name)
	return ok
}

// Get returns the named entry if present.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns a copy of all entries keyed by name.
func (r *Registry) Entries() map[string]Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Entry, len(r.entries))
	for name, e := range r.entries {
		out[name] = e
	}
	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes all entries.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = map[string]Entry{}
}

// Materialize merges the registry's entries over the statically declared
// agent set, keyed by name. A dynamic entry replaces a static agent of the
// same name in place; entries without a static counterpart are appended in
// sorted-name order. Materialized dynamic agents carry an empty RoleID: they
// bypass role typing by design.
func (r *Registry) Materialize(static []role.Agent) []role.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]role.Agent, 0, len(static)+len(r.entries))
	used := map[string]bool{}
	for _, a := range static {
		if e, ok := r.entries[a.Name]; ok {
			out = append(out, e.toAgent())
			used[a.Name] = true
			continue
		}
		out = append(out, a)
	}

	extra := make([]string, 0, len(r.entries))
	for name := range r.entries {
		if !used[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, r.entries[name].toAgent())
	}
	return out
}

func (e Entry) toAgent() role.Agent {
	return role.Agent{
		Name:              e.Name,
		Description:       e.Description,
		Capabilities:      append([]string(nil), e.Capabilities...),
		PromptText:        e.PromptText,
		ModelTierOverride: string(e.Tier),
	}
}
