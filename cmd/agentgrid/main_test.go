package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
roles:
  coordinator:
    type: coordinator
    cardinality: exactly_one
  worker:
    type: worker
    required_capabilities: [search]
    cardinality: one_or_more
agents:
  - name: coord
    role: coordinator
    prompt_text: Plan the work and delegate.
  - name: w1
    role: worker
    capabilities: [search]
    prompt_text: Research the assigned topic.
registry:
  allowed_capabilities: [search, summarize]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agentgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the CLI with fresh flag state and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	materialized = false
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestValidateCmd_Valid(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	out, err := execute(t, "validate", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "configuration is valid")
}

func TestValidateCmd_ReportsAllViolations(t *testing.T) {
	path := writeConfig(t, `
roles:
  coordinator:
    type: coordinator
    cardinality: exactly_one
agents:
  - name: w1
    role: ghost
  - name: w1
    role: ghost
`)

	out, err := execute(t, "validate", "-c", path)
	require.Error(t, err)
	assert.Contains(t, out, "unknown role 'ghost'")
	assert.Contains(t, out, "duplicate agent name 'w1'")
	assert.Contains(t, out, "violates cardinality 'exactly_one'")
}

func TestAgentsCmd_Declared(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	out, err := execute(t, "agents", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "coord\trole=coordinator")
	assert.Contains(t, out, "w1\trole=worker")
}

func TestAgentsCmd_Materialized(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	out, err := execute(t, "agents", "--materialized", "-c", path)
	require.NoError(t, err)
	// A freshly loaded registry holds no dynamic entries, so the merged view
	// equals the static declarations in declaration order.
	assert.Contains(t, out, "coord\trole=coordinator")
	assert.Contains(t, out, "w1\trole=worker\tcapabilities=[search]")
}

func TestRolesCmd_SortedListing(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	out, err := execute(t, "roles", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "coordinator\ttype=coordinator\tcardinality=exactly_one")
	assert.Contains(t, out, "worker\ttype=worker\tcardinality=one_or_more\trequired=[search]")
	assert.Less(t, indexOf(out, "coordinator"), indexOf(out, "worker"))
}

func indexOf(s, sub string) int {
	return bytes.Index([]byte(s), []byte(sub))
}
