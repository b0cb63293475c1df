package role

import "fmt"

// SemanticType classifies what an abstract role contributes to an
// orchestration pattern. The validator does not interpret semantic types;
// they exist so patterns and tooling can reason about topology shape.
type SemanticType string

const (
	TypeCoordinator SemanticType = "coordinator"
	TypeWorker      SemanticType = "worker"
	TypeProcessor   SemanticType = "processor"
	TypeSynthesizer SemanticType = "synthesizer"
	TypeCritic      SemanticType = "critic"
	TypeJudge       SemanticType = "judge"
	TypeSpecialist  SemanticType = "specialist"
	TypeAdvocate    SemanticType = "advocate"
	TypeMapper      SemanticType = "mapper"
	TypeReducer     SemanticType = "reducer"
	TypeExecutor    SemanticType = "executor"
	TypeReflector   SemanticType = "reflector"
)

// semanticTypes is the closed set of recognized semantic types.
var semanticTypes = map[SemanticType]bool{
	TypeCoordinator: true,
	TypeWorker:      true,
	TypeProcessor:   true,
	TypeSynthesizer: true,
	TypeCritic:      true,
	TypeJudge:       true,
	TypeSpecialist:  true,
	TypeAdvocate:    true,
	TypeMapper:      true,
	TypeReducer:     true,
	TypeExecutor:    true,
	TypeReflector:   true,
}

// Valid reports whether t is a recognized semantic type.
func (t SemanticType) Valid() bool { return semanticTypes[t] }

// ParseSemanticType converts a configuration literal into a SemanticType.
func ParseSemanticType(s string) (SemanticType, error) {
	t := SemanticType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown semantic type '%s'", s)
	}
	return t, nil
}

// Cardinality bounds how many concrete agents may bind to one role.
type Cardinality string

const (
	ExactlyOne Cardinality = "exactly_one"
	OneOrMore  Cardinality = "one_or_more"
	ZeroOrMore Cardinality = "zero_or_more"
	ZeroOrOne  Cardinality = "zero_or_one"
)

// Valid reports whether c is a recognized cardinality.
func (c Cardinality) Valid() bool {
	switch c {
	case ExactlyOne, OneOrMore, ZeroOrMore, ZeroOrOne:
		return true
	}
	return false
}

// String returns the configuration literal for the cardinality.
func (c Cardinality) String() string { return string(c) }

// Allows reports whether count agents satisfy the cardinality bound.
func (c Cardinality) Allows(count int) bool {
	switch c {
	case ExactlyOne:
		return count == 1
	case OneOrMore:
		return count >= 1
	case ZeroOrOne:
		return count <= 1
	case ZeroOrMore:
		return true
	}
	return false
}

// Expected describes the accepted agent count for violation messages.
func (c Cardinality) Expected() string {
	switch c {
	case ExactlyOne:
		return "exactly 1"
	case OneOrMore:
		return "at least 1"
	case ZeroOrOne:
		return "at most 1"
	case ZeroOrMore:
		return "any number of"
	}
	return "unknown"
}

// ParseCardinality converts a configuration literal into a Cardinality.
func ParseCardinality(s string) (Cardinality, error) {
	c := Cardinality(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown cardinality '%s'", s)
	}
	return c, nil
}

// Schema declaratively describes an abstract participant in an orchestration
// pattern. Schemas are immutable once registered for the lifetime of a
// pattern instance; the validator treats them as read-only.
type Schema struct {
	// ID is the role identifier agents reference (map key in the role map).
	ID string `json:"id"`

	// Type is the semantic classification of the role.
	Type SemanticType `json:"type"`

	// Description documents the role for humans and prompts.
	Description string `json:"description,omitempty"`

	// RequiredCapabilities must all be declared by every bound agent.
	RequiredCapabilities []string `json:"required_capabilities,omitempty"`

	// OptionalCapabilities may additionally be declared by bound agents.
	// Together with RequiredCapabilities they form the closed world of
	// capabilities an instance of this role may use.
	OptionalCapabilities []string `json:"optional_capabilities,omitempty"`

	// Cardinality bounds the number of agents bound to this role.
	Cardinality Cardinality `json:"cardinality"`

	// DefaultModelTier names the model tier used when an agent declares no
	// override.
	DefaultModelTier string `json:"default_model_tier,omitempty"`

	// PromptRef references an external prompt template for this role.
	PromptRef string `json:"prompt_ref,omitempty"`
}

// Agent is a concrete, named participant declared by an application. It is
// created by configuration, never mutated after validation and consumed once
// to materialize the running agent set.
type Agent struct {
	// Name uniquely identifies the agent within one declaration.
	Name string `json:"name"`

	// RoleID must resolve in the active role map. Agents materialized from
	// the dynamic registry carry an empty RoleID: they bypass role typing by
	// design.
	RoleID string `json:"role_id,omitempty"`

	// Description documents the agent.
	Description string `json:"description,omitempty"`

	// Capabilities the agent declares; checked against its role's
	// required/optional sets.
	Capabilities []string `json:"capabilities,omitempty"`

	// PromptText is the inline agent prompt.
	PromptText string `json:"prompt_text,omitempty"`

	// PromptRef references an external prompt template.
	PromptRef string `json:"prompt_ref,omitempty"`

	// ModelTierOverride overrides the role's default model tier when set.
	ModelTierOverride string `json:"model_tier_override,omitempty"`

	// Metadata holds passive application attributes.
	Metadata map[string]any `json:"metadata,omitempty"`
}
