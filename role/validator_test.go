package role

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workerRoles() map[string]Schema {
	return map[string]Schema{
		"worker": {
			ID:                   "worker",
			Type:                 TypeWorker,
			RequiredCapabilities: []string{"search"},
			OptionalCapabilities: []string{"summarize"},
			Cardinality:          OneOrMore,
		},
	}
}

func TestValidate_ValidTopology(t *testing.T) {
	agents := []Agent{
		{Name: "w1", RoleID: "worker", Capabilities: []string{"search"}},
	}
	assert.Empty(t, Validate(workerRoles(), agents))
}

func TestValidate_MissingRequiredRole(t *testing.T) {
	violations := Validate(workerRoles(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "worker")
	assert.Contains(t, violations[0], "one_or_more")
}

func TestValidate_UnknownRole(t *testing.T) {
	agents := []Agent{
		{Name: "w1", RoleID: "worker", Capabilities: []string{"search"}},
		{Name: "x1", RoleID: "ghost"},
	}
	violations := Validate(workerRoles(), agents)
	require.Len(t, violations, 1)
	assert.Equal(t, "agent 'x1' references unknown role 'ghost'", violations[0])
}

func TestValidate_DuplicateAgentName(t *testing.T) {
	agents := []Agent{
		{Name: "w1", RoleID: "worker", Capabilities: []string{"search"}},
		{Name: "w1", RoleID: "worker", Capabilities: []string{"search"}},
	}
	violations := Validate(workerRoles(), agents)
	require.Len(t, violations, 1)
	assert.Equal(t, "duplicate agent name 'w1'", violations[0])
}

func TestValidate_CardinalityExactlyOne(t *testing.T) {
	roles := map[string]Schema{
		"synthesizer": {
			ID:          "synthesizer",
			Type:        TypeSynthesizer,
			Cardinality: ExactlyOne,
		},
	}
	synth := func(name string) Agent {
		return Agent{Name: name, RoleID: "synthesizer"}
	}

	tests := []struct {
		name       string
		agents     []Agent
		violations int
	}{
		{name: "zero agents", agents: nil, violations: 1},
		{name: "one agent", agents: []Agent{synth("s1")}, violations: 0},
		{name: "two agents", agents: []Agent{synth("s1"), synth("s2")}, violations: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate(roles, tt.agents)
			require.Len(t, violations, tt.violations)
			if tt.violations > 0 {
				assert.Contains(t, violations[0], "synthesizer")
				assert.Contains(t, violations[0], "exactly_one")
			}
		})
	}
}

func TestValidate_CardinalityBounds(t *testing.T) {
	tests := []struct {
		cardinality Cardinality
		count       int
		ok          bool
	}{
		{ExactlyOne, 0, false},
		{ExactlyOne, 1, true},
		{ExactlyOne, 2, false},
		{OneOrMore, 0, false},
		{OneOrMore, 3, true},
		{ZeroOrMore, 0, true},
		{ZeroOrMore, 5, true},
		{ZeroOrOne, 0, true},
		{ZeroOrOne, 1, true},
		{ZeroOrOne, 2, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.cardinality.Allows(tt.count), "%s with %d agents", tt.cardinality, tt.count)
	}
}

func TestValidate_MissingRequiredCapability(t *testing.T) {
	agents := []Agent{
		{Name: "w1", RoleID: "worker", Capabilities: []string{"summarize"}},
	}
	violations := Validate(workerRoles(), agents)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "w1")
	assert.Contains(t, violations[0], "search")
}

func TestValidate_UndeclaredCapabilityClosedWorld(t *testing.T) {
	agents := []Agent{
		{Name: "w1", RoleID: "worker", Capabilities: []string{"search", "telepathy"}},
	}
	violations := Validate(workerRoles(), agents)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "telepathy")
	assert.Contains(t, violations[0], "not allowed")
}

func TestValidate_OptionalCapabilityAllowed(t *testing.T) {
	agents := []Agent{
		{Name: "w1", RoleID: "worker", Capabilities: []string{"search", "summarize"}},
	}
	assert.Empty(t, Validate(workerRoles(), agents))
}

func TestValidate_Idempotent(t *testing.T) {
	roles := map[string]Schema{
		"coordinator": {ID: "coordinator", Type: TypeCoordinator, Cardinality: ExactlyOne},
		"worker":      {ID: "worker", Type: TypeWorker, RequiredCapabilities: []string{"search"}, Cardinality: OneOrMore},
		"critic":      {ID: "critic", Type: TypeCritic, Cardinality: ZeroOrOne},
	}
	agents := []Agent{
		{Name: "w1", RoleID: "worker"},
		{Name: "w1", RoleID: "worker"},
		{Name: "c1", RoleID: "critic"},
		{Name: "c2", RoleID: "critic"},
		{Name: "x", RoleID: "ghost"},
	}

	first := Validate(roles, agents)
	second := Validate(roles, agents)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestValidate_AggregatesAllViolations(t *testing.T) {
	roles := map[string]Schema{
		"coordinator": {ID: "coordinator", Type: TypeCoordinator, Cardinality: ExactlyOne},
		"worker":      {ID: "worker", Type: TypeWorker, RequiredCapabilities: []string{"search"}, Cardinality: OneOrMore},
	}
	agents := []Agent{
		{Name: "w1", RoleID: "worker", Capabilities: []string{"shell"}},
		{Name: "w1", RoleID: "ghost"},
	}

	violations := Validate(roles, agents)
	joined := strings.Join(violations, "\n")
	// Unknown role, duplicate name, missing coordinator, missing required
	// capability and the undeclared capability must all be reported in one
	// pass, not one at a time.
	assert.Contains(t, joined, "unknown role 'ghost'")
	assert.Contains(t, joined, "duplicate agent name 'w1'")
	assert.Contains(t, joined, "coordinator")
	assert.Contains(t, joined, "missing required capability 'search'")
	assert.Contains(t, joined, "capability 'shell'")
	assert.Len(t, violations, 5)
}

func TestParseEnums(t *testing.T) {
	c, err := ParseCardinality("zero_or_one")
	require.NoError(t, err)
	assert.Equal(t, ZeroOrOne, c)
	assert.Equal(t, "zero_or_one", c.String())
	_, err = ParseCardinality("some")
	assert.Error(t, err)

	st, err := ParseSemanticType("reducer")
	require.NoError(t, err)
	assert.Equal(t, TypeReducer, st)
	_, err = ParseSemanticType("wizard")
	assert.Error(t, err)
}
