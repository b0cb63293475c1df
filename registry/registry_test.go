package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgrid/model"
	"github.com/hupe1980/agentgrid/role"
)

const validPrompt = "You are a focused research assistant."

func register(t *testing.T, r *Registry, name string) {
	t.Helper()
	err := r.Register(name, "ad-hoc research agent", []string{"search"}, validPrompt, model.Tier2)
	require.NoError(t, err)
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()
	register(t, r, "researcher")

	e, ok := r.Get("researcher")
	require.True(t, ok)
	assert.Equal(t, "researcher", e.Name)
	assert.Equal(t, model.Tier2, e.Tier)

	assert.Equal(t, []string{"researcher"}, r.Names())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New()
	register(t, r, "researcher")

	err := r.Register("researcher", "another description", []string{"search"}, validPrompt, model.Tier1)
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "researcher", dup.Name)

	// The original entry is untouched.
	e, _ := r.Get("researcher")
	assert.Equal(t, model.Tier2, e.Tier)
}

func TestRegistry_ValidationEnumeratesAllViolations(t *testing.T) {
	r := New()

	err := r.Register("Bad Name", "short", nil, "tiny", model.Tier("tier9"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// name, description, empty capabilities, prompt and tier all reported
	// in one pass.
	assert.Len(t, verr.Violations, 5)
	joined := strings.Join(verr.Violations, "\n")
	assert.Contains(t, joined, "name")
	assert.Contains(t, joined, "description")
	assert.Contains(t, joined, "capabilities")
	assert.Contains(t, joined, "prompt_text")
	assert.Contains(t, joined, "model_tier")

	assert.Equal(t, 0, r.Len())
}

func TestRegistry_NamePattern(t *testing.T) {
	r := New()

	for _, name := range []string{"w1", "deep-diver", "map_reduce_9"} {
		require.NoError(t, r.Register(name, "ad-hoc research agent", []string{"search"}, validPrompt, model.Tier3), name)
	}
	for _, name := range []string{"W1", "9lives", "_x", ""} {
		err := r.Register(name, "ad-hoc research agent", []string{"search"}, validPrompt, model.Tier3)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, name)
	}
}

func TestRegistry_AllowedCapabilitySet(t *testing.T) {
	r := New(WithAllowedCapabilities("search", "summarize"))

	err := r.Register("scout", "ad-hoc research agent", []string{"search", "shell"}, validPrompt, model.Tier2)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Contains(t, verr.Violations[0], "shell")

	require.NoError(t, r.Register("scout", "ad-hoc research agent", []string{"search", "summarize"}, validPrompt, model.Tier2))
}

func TestRegistry_UnregisterAndClear(t *testing.T) {
	r := New()
	register(t, r, "researcher")

	assert.True(t, r.Unregister("researcher"))
	assert.False(t, r.Unregister("researcher"))

	register(t, r, "a")
	register(t, r, "b")
	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Entries())
}

func TestRegistry_MaterializeOverride(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("w1", "dynamic replacement", []string{"search", "summarize"}, validPrompt, model.Tier1))

	static := []role.Agent{
		{Name: "coord", RoleID: "coordinator", PromptText: "coordinate"},
		{Name: "w1", RoleID: "worker", Capabilities: []string{"search"}, PromptText: "static prompt", ModelTierOverride: "tier3"},
	}

	out := r.Materialize(static)
	require.Len(t, out, 2)

	// Static order preserved; dynamic fields win for the collision.
	assert.Equal(t, "coord", out[0].Name)
	assert.Equal(t, "w1", out[1].Name)
	assert.Equal(t, validPrompt, out[1].PromptText)
	assert.Equal(t, "tier1", out[1].ModelTierOverride)
	assert.Equal(t, []string{"search", "summarize"}, out[1].Capabilities)
	// Dynamic entries bypass role typing.
	assert.Empty(t, out[1].RoleID)
}

func TestRegistry_MaterializeAppendsNewEntries(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("zeta", "dynamic agent zeta", []string{"search"}, validPrompt, model.Tier2))
	require.NoError(t, r.Register("alpha", "dynamic agent alpha", []string{"search"}, validPrompt, model.Tier2))

	static := []role.Agent{{Name: "coord", RoleID: "coordinator"}}
	out := r.Materialize(static)

	require.Len(t, out, 3)
	assert.Equal(t, "coord", out[0].Name)
	// Unmatched dynamic entries appended in sorted-name order.
	assert.Equal(t, "alpha", out[1].Name)
	assert.Equal(t, "zeta", out[2].Name)
}

func TestRegistry_MaterializeEmpty(t *testing.T) {
	r := New()
	assert.Empty(t, r.Materialize(nil))
}
