package plugin

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/hook"
)

// MetricsPlugin records session, spawn and tool activity as OpenTelemetry
// metrics. It uses the global MeterProvider, so without SDK wiring the
// instruments are no-ops and the plugin stays inert (tests rely on this).
type MetricsPlugin struct {
	sessionCounter metric.Int64Counter
	spawnCounter   metric.Int64Counter
	toolCounter    metric.Int64Counter
	toolFailures   metric.Int64Counter
	sessionSeconds metric.Float64Histogram

	mu     sync.Mutex
	starts map[string]time.Time
}

var (
	_ hook.Plugin           = (*MetricsPlugin)(nil)
	_ hook.SessionStartHook = (*MetricsPlugin)(nil)
	_ hook.SessionEndHook   = (*MetricsPlugin)(nil)
	_ hook.AgentSpawnHook   = (*MetricsPlugin)(nil)
	_ hook.ToolCallHook     = (*MetricsPlugin)(nil)
	_ hook.ToolResultHook   = (*MetricsPlugin)(nil)
)

// NewMetricsPlugin creates a metrics plugin backed by the global meter.
func NewMetricsPlugin() (*MetricsPlugin, error) {
	meter := otel.Meter("agentgrid/plugin")

	sessionCounter, err := meter.Int64Counter(
		"agentgrid.sessions.total",
		metric.WithDescription("Sessions started by pattern"),
	)
	if err != nil {
		return nil, err
	}
	spawnCounter, err := meter.Int64Counter(
		"agentgrid.agent_spawns.total",
		metric.WithDescription("Agent spawn requests by agent type"),
	)
	if err != nil {
		return nil, err
	}
	toolCounter, err := meter.Int64Counter(
		"agentgrid.tool_calls.total",
		metric.WithDescription("Tool invocations by tool name"),
	)
	if err != nil {
		return nil, err
	}
	toolFailures, err := meter.Int64Counter(
		"agentgrid.tool_failures.total",
		metric.WithDescription("Failed tool invocations by tool name"),
	)
	if err != nil {
		return nil, err
	}
	sessionSeconds, err := meter.Float64Histogram(
		"agentgrid.session.duration_seconds",
		metric.WithDescription("Session wall-clock duration"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsPlugin{
		sessionCounter: sessionCounter,
		spawnCounter:   spawnCounter,
		toolCounter:    toolCounter,
		toolFailures:   toolFailures,
		sessionSeconds: sessionSeconds,
		starts:         map[string]time.Time{},
	}, nil
}

// Name implements hook.Plugin.
func (p *MetricsPlugin) Name() string { return "metrics" }

// SessionStart counts the session and records its start time.
func (p *MetricsPlugin) SessionStart(ctx context.Context, sc *core.SessionContext) error {
	p.mu.Lock()
	p.starts[sc.ID] = time.Now()
	p.mu.Unlock()
	p.sessionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("pattern", sc.Pattern)))
	return nil
}

// SessionEnd records the session duration.
func (p *MetricsPlugin) SessionEnd(ctx context.Context, sc *core.SessionContext) error {
	p.mu.Lock()
	start, ok := p.starts[sc.ID]
	delete(p.starts, sc.ID)
	p.mu.Unlock()
	if ok {
		p.sessionSeconds.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("pattern", sc.Pattern)))
	}
	return nil
}

// AgentSpawn counts the spawn and passes the request through unchanged.
func (p *MetricsPlugin) AgentSpawn(ctx context.Context, _ *core.SessionContext, req hook.SpawnRequest) (hook.SpawnRequest, error) {
	p.spawnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("agent_type", req.AgentType)))
	return req, nil
}

// ToolCall counts the invocation.
func (p *MetricsPlugin) ToolCall(ctx context.Context, _ *core.SessionContext, call hook.ToolCall) error {
	p.toolCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", call.Tool)))
	return nil
}

// ToolResult counts failures.
func (p *MetricsPlugin) ToolResult(ctx context.Context, _ *core.SessionContext, res hook.ToolResult) error {
	if res.Err != nil {
		p.toolFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", res.Tool)))
	}
	return nil
}
