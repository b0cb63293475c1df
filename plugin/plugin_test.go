package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/hook"
	"github.com/hupe1980/agentgrid/logging"
)

func TestLoggingPlugin_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	p := NewLoggingPlugin(logger)
	sc := core.NewSessionContext("fan_out")
	ctx := context.Background()

	require.NoError(t, p.SessionStart(ctx, sc))
	require.NoError(t, p.ToolCall(ctx, sc, hook.ToolCall{AgentName: "w1", Tool: "search"}))
	require.NoError(t, p.ToolResult(ctx, sc, hook.ToolResult{AgentName: "w1", Tool: "search", Err: errors.New("timeout")}))
	assert.True(t, p.OnError(ctx, sc, errors.New("quota")))
	require.NoError(t, p.SessionEnd(ctx, sc))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 5)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[2], &entry))
	assert.Equal(t, "tool failed", entry["msg"])
	assert.Equal(t, "timeout", entry["error"])
}

func TestMetricsPlugin_NoopProvider(t *testing.T) {
	// Without SDK wiring the global provider is a no-op; the plugin must
	// still work end to end.
	p, err := NewMetricsPlugin()
	require.NoError(t, err)
	assert.Equal(t, "metrics", p.Name())

	sc := core.NewSessionContext("map_reduce")
	ctx := context.Background()

	require.NoError(t, p.SessionStart(ctx, sc))
	req, err := p.AgentSpawn(ctx, sc, hook.SpawnRequest{AgentName: "m1", AgentType: "mapper", Prompt: "map"})
	require.NoError(t, err)
	assert.Equal(t, "map", req.Prompt)
	require.NoError(t, p.ToolCall(ctx, sc, hook.ToolCall{Tool: "search"}))
	require.NoError(t, p.ToolResult(ctx, sc, hook.ToolResult{Tool: "search", Err: errors.New("boom")}))
	require.NoError(t, p.SessionEnd(ctx, sc))

	// Start time bookkeeping is cleaned up on session end.
	p.mu.Lock()
	assert.Empty(t, p.starts)
	p.mu.Unlock()
}

func TestCostPlugin_AccumulatesWithoutTransforming(t *testing.T) {
	p := NewCostPlugin()
	sc := core.NewSessionContext("single")
	ctx := context.Background()

	prompt := "summarize the quarterly report" // 30 chars -> 8 tokens
	out, err := p.BeforeExecute(ctx, sc, prompt)
	require.NoError(t, err)
	assert.Equal(t, prompt, out)

	result := "the report shows steady growth overall." // 39 chars -> 10 tokens
	out, err = p.AfterExecute(ctx, sc, result)
	require.NoError(t, err)
	assert.Equal(t, result, out)

	promptTokens, completionTokens := p.Totals(sc)
	assert.Equal(t, 8, promptTokens)
	assert.Equal(t, 10, completionTokens)

	// Second round accumulates.
	_, err = p.BeforeExecute(ctx, sc, prompt)
	require.NoError(t, err)
	promptTokens, _ = p.Totals(sc)
	assert.Equal(t, 16, promptTokens)
}

func TestCostPlugin_InDispatcherFold(t *testing.T) {
	d := hook.NewDispatcher()
	require.NoError(t, d.Register(NewCostPlugin()))

	sc := core.NewSessionContext("single")
	out, err := d.TriggerBeforeExecute(context.Background(), sc, "abcd")
	require.NoError(t, err)
	assert.Equal(t, "abcd", out)

	v, ok := sc.SharedState.Get(CostPromptTokensKey)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestErrorBudgetPlugin_VetoesAfterBudget(t *testing.T) {
	p := NewErrorBudgetPlugin(2)
	sc := core.NewSessionContext("loop")
	ctx := context.Background()
	runErr := errors.New("tool crashed")

	assert.True(t, p.OnError(ctx, sc, runErr))
	assert.True(t, p.OnError(ctx, sc, runErr))
	assert.False(t, p.OnError(ctx, sc, runErr))

	v, ok := sc.SharedState.Get(ErrorBudgetKey)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestErrorBudgetPlugin_ZeroBudget(t *testing.T) {
	p := NewErrorBudgetPlugin(0)
	sc := core.NewSessionContext("loop")
	assert.False(t, p.OnError(context.Background(), sc, errors.New("first")))
}
