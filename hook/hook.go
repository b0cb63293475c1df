package hook

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
)

// Point identifies a specific extension point in the session lifecycle.
type Point string

const (
	// PointSessionStart fires once when a session begins. Broadcast.
	PointSessionStart Point = "session_start"

	// PointSessionEnd fires once when a session finishes. Broadcast.
	PointSessionEnd Point = "session_end"

	// PointBeforeExecute fires immediately before a prompt is dispatched to
	// a model, folding the prompt through registered plugins.
	PointBeforeExecute Point = "before_execute"

	// PointAfterExecute fires immediately after a model result arrives,
	// folding the result through registered plugins.
	PointAfterExecute Point = "after_execute"

	// PointAgentSpawn fires before a worker agent task begins, folding the
	// spawn request.
	PointAgentSpawn Point = "agent_spawn"

	// PointAgentComplete fires after a worker agent task finishes, folding
	// the agent result.
	PointAgentComplete Point = "agent_complete"

	// PointToolCall fires immediately before a tool runs. Broadcast.
	PointToolCall Point = "tool_call"

	// PointToolResult fires immediately after a tool returns. Broadcast.
	PointToolResult Point = "tool_result"

	// PointError fires when the session encounters a runtime error and
	// collects a continue/abort vote from registered plugins.
	PointError Point = "on_error"
)

// Plugin is the minimal identity contract every observer satisfies. The
// extension points themselves are optional capability interfaces below,
// resolved per call by type assertion, so a plugin only implements the hooks
// it needs.
//
// Names are unique across the dispatcher; registering a second plugin with
// the same name fails.
type Plugin interface {
	// Name returns the unique plugin identifier (snake_case recommended).
	Name() string
}

// SpawnRequest describes an agent about to be spawned by the execution
// engine. Fold plugins may rewrite the prompt or annotate the request.
type SpawnRequest struct {
	AgentName string         `json:"agent_name"`
	AgentType string         `json:"agent_type"`
	Prompt    string         `json:"prompt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AgentResult describes a completed agent task.
type AgentResult struct {
	AgentName string `json:"agent_name"`
	Output    string `json:"output"`
}

// ToolCall describes a tool invocation about to run on behalf of an agent.
type ToolCall struct {
	AgentName string         `json:"agent_name"`
	Tool      string         `json:"tool"`
	Input     map[string]any `json:"input,omitempty"`
}

// ToolResult describes a finished tool invocation.
type ToolResult struct {
	AgentName string `json:"agent_name"`
	Tool      string `json:"tool"`
	Result    any    `json:"result,omitempty"`
	Err       error  `json:"-"`
}

// BeforeExecuteHook transforms the in-flight prompt before model dispatch.
type BeforeExecuteHook interface {
	BeforeExecute(ctx context.Context, sc *core.SessionContext, prompt string) (string, error)
}

// AfterExecuteHook transforms the model result after execution.
type AfterExecuteHook interface {
	AfterExecute(ctx context.Context, sc *core.SessionContext, result string) (string, error)
}

// AgentSpawnHook transforms a spawn request before the worker task begins.
type AgentSpawnHook interface {
	AgentSpawn(ctx context.Context, sc *core.SessionContext, req SpawnRequest) (SpawnRequest, error)
}

// AgentCompleteHook transforms an agent result after the worker task ends.
type AgentCompleteHook interface {
	AgentComplete(ctx context.Context, sc *core.SessionContext, res AgentResult) (AgentResult, error)
}

// SessionStartHook observes session start. Side effects only.
type SessionStartHook interface {
	SessionStart(ctx context.Context, sc *core.SessionContext) error
}

// SessionEndHook observes session end. Side effects only.
type SessionEndHook interface {
	SessionEnd(ctx context.Context, sc *core.SessionContext) error
}

// ToolCallHook observes tool invocations. Side effects only.
type ToolCallHook interface {
	ToolCall(ctx context.Context, sc *core.SessionContext, call ToolCall) error
}

// ToolResultHook observes tool results. Side effects only.
type ToolResultHook interface {
	ToolResult(ctx context.Context, sc *core.SessionContext, res ToolResult) error
}

// ErrorHook votes on whether the session should continue after a runtime
// error raised by the surrounding session (not by a hook). Returning false
// vetoes continuation; plugins that do not implement ErrorHook abstain.
type ErrorHook interface {
	OnError(ctx context.Context, sc *core.SessionContext, runErr error) bool
}
