package testutil

import (
	"github.com/hupe1980/agentgrid/role"
)

// RoleBuilder helps construct role schemas with fluent chaining for tests.
// Example:
//
//	schema := NewRoleBuilder("worker").Type(role.TypeWorker).Cardinality(role.OneOrMore).Requires("search").Build()
type RoleBuilder struct {
	schema role.Schema
}

// NewRoleBuilder creates a builder for a role with the given id. Defaults to
// a zero_or_more worker.
func NewRoleBuilder(id string) *RoleBuilder {
	return &RoleBuilder{schema: role.Schema{
		ID:          id,
		Type:        role.TypeWorker,
		Cardinality: role.ZeroOrMore,
	}}
}

// Type sets the semantic type (chainable).
func (b *RoleBuilder) Type(t role.SemanticType) *RoleBuilder {
	b.schema.Type = t
	return b
}

// Cardinality sets the cardinality bound (chainable).
func (b *RoleBuilder) Cardinality(c role.Cardinality) *RoleBuilder {
	b.schema.Cardinality = c
	return b
}

// Requires appends required capabilities (chainable).
func (b *RoleBuilder) Requires(caps ...string) *RoleBuilder {
	b.schema.RequiredCapabilities = append(b.schema.RequiredCapabilities, caps...)
	return b
}

// Optionals appends optional capabilities (chainable).
func (b *RoleBuilder) Optionals(caps ...string) *RoleBuilder {
	b.schema.OptionalCapabilities = append(b.schema.OptionalCapabilities, caps...)
	return b
}

// Tier sets the default model tier (chainable).
func (b *RoleBuilder) Tier(tier string) *RoleBuilder {
	b.schema.DefaultModelTier = tier
	return b
}

// Build returns the assembled role.Schema.
func (b *RoleBuilder) Build() role.Schema { return b.schema }

// AgentBuilder helps construct agent declarations with fluent chaining.
type AgentBuilder struct {
	agent role.Agent
}

// NewAgentBuilder creates a builder for an agent bound to the given role.
func NewAgentBuilder(name, roleID string) *AgentBuilder {
	return &AgentBuilder{agent: role.Agent{Name: name, RoleID: roleID}}
}

// Capabilities appends declared capabilities (chainable).
func (b *AgentBuilder) Capabilities(caps ...string) *AgentBuilder {
	b.agent.Capabilities = append(b.agent.Capabilities, caps...)
	return b
}

// Prompt sets the inline prompt text (chainable).
func (b *AgentBuilder) Prompt(text string) *AgentBuilder {
	b.agent.PromptText = text
	return b
}

// Tier sets the model tier override (chainable).
func (b *AgentBuilder) Tier(tier string) *AgentBuilder {
	b.agent.ModelTierOverride = tier
	return b
}

// Build returns the assembled role.Agent.
func (b *AgentBuilder) Build() role.Agent { return b.agent }

// Roles assembles a role map from schemas, keyed by schema ID.
func Roles(schemas ...role.Schema) map[string]role.Schema {
	m := make(map[string]role.Schema, len(schemas))
	for _, s := range schemas {
		m[s.ID] = s
	}
	return m
}
