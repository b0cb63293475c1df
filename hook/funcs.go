package hook

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
)

// FuncPlugin adapts plain functions to the plugin contract so simple,
// stateless observers do not need a dedicated type. Unset fields behave like
// unimplemented hooks: fold fields default to identity, broadcast fields to
// no-ops and OnError to an abstaining true.
//
// Example:
//
//	tracer := &hook.FuncPlugin{
//	    PluginName: "tracer",
//	    OnBeforeExecute: func(ctx context.Context, sc *core.SessionContext, prompt string) (string, error) {
//	        return "[trace:" + sc.ID + "] " + prompt, nil
//	    },
//	}
type FuncPlugin struct {
	PluginName string

	OnBeforeExecute func(ctx context.Context, sc *core.SessionContext, prompt string) (string, error)
	OnAfterExecute  func(ctx context.Context, sc *core.SessionContext, result string) (string, error)
	OnAgentSpawn    func(ctx context.Context, sc *core.SessionContext, req SpawnRequest) (SpawnRequest, error)
	OnAgentComplete func(ctx context.Context, sc *core.SessionContext, res AgentResult) (AgentResult, error)
	OnSessionStart  func(ctx context.Context, sc *core.SessionContext) error
	OnSessionEnd    func(ctx context.Context, sc *core.SessionContext) error
	OnToolCall      func(ctx context.Context, sc *core.SessionContext, call ToolCall) error
	OnToolResult    func(ctx context.Context, sc *core.SessionContext, res ToolResult) error
	OnErrorFunc     func(ctx context.Context, sc *core.SessionContext, runErr error) bool
}

var (
	_ Plugin            = (*FuncPlugin)(nil)
	_ BeforeExecuteHook = (*FuncPlugin)(nil)
	_ AfterExecuteHook  = (*FuncPlugin)(nil)
	_ AgentSpawnHook    = (*FuncPlugin)(nil)
	_ AgentCompleteHook = (*FuncPlugin)(nil)
	_ SessionStartHook  = (*FuncPlugin)(nil)
	_ SessionEndHook    = (*FuncPlugin)(nil)
	_ ToolCallHook      = (*FuncPlugin)(nil)
	_ ToolResultHook    = (*FuncPlugin)(nil)
	_ ErrorHook         = (*FuncPlugin)(nil)
)

// Name returns the configured plugin name.
func (f *FuncPlugin) Name() string { return f.PluginName }

// BeforeExecute delegates to OnBeforeExecute or passes the prompt through.
func (f *FuncPlugin) BeforeExecute(ctx context.Context, sc *core.SessionContext, prompt string) (string, error) {
	if f.OnBeforeExecute == nil {
		return prompt, nil
	}
	return f.OnBeforeExecute(ctx, sc, prompt)
}

// AfterExecute delegates to OnAfterExecute or passes the result through.
func (f *FuncPlugin) AfterExecute(ctx context.Context, sc *core.SessionContext, result string) (string, error) {
	if f.OnAfterExecute == nil {
		return result, nil
	}
	return f.OnAfterExecute(ctx, sc, result)
}

// AgentSpawn delegates to OnAgentSpawn or passes the request through.
func (f *FuncPlugin) AgentSpawn(ctx context.Context, sc *core.SessionContext, req SpawnRequest) (SpawnRequest, error) {
	if f.OnAgentSpawn == nil {
		return req, nil
	}
	return f.OnAgentSpawn(ctx, sc, req)
}

// AgentComplete delegates to OnAgentComplete or passes the result through.
func (f *FuncPlugin) AgentComplete(ctx context.Context, sc *core.SessionContext, res AgentResult) (AgentResult, error) {
	if f.OnAgentComplete == nil {
		return res, nil
	}
	return f.OnAgentComplete(ctx, sc, res)
}

// SessionStart delegates to OnSessionStart if set.
func (f *FuncPlugin) SessionStart(ctx context.Context, sc *core.SessionContext) error {
	if f.OnSessionStart == nil {
		return nil
	}
	return f.OnSessionStart(ctx, sc)
}

// SessionEnd delegates to OnSessionEnd if set.
func (f *FuncPlugin) SessionEnd(ctx context.Context, sc *core.SessionContext) error {
	if f.OnSessionEnd == nil {
		return nil
	}
	return f.OnSessionEnd(ctx, sc)
}

// ToolCall delegates to OnToolCall if set.
func (f *FuncPlugin) ToolCall(ctx context.Context, sc *core.SessionContext, call ToolCall) error {
	if f.OnToolCall == nil {
		return nil
	}
	return f.OnToolCall(ctx, sc, call)
}

// ToolResult delegates to OnToolResult if set.
func (f *FuncPlugin) ToolResult(ctx context.Context, sc *core.SessionContext, res ToolResult) error {
	if f.OnToolResult == nil {
		return nil
	}
	return f.OnToolResult(ctx, sc, res)
}

// OnError delegates to OnErrorFunc or abstains (true).
func (f *FuncPlugin) OnError(ctx context.Context, sc *core.SessionContext, runErr error) bool {
	if f.OnErrorFunc == nil {
		return true
	}
	return f.OnErrorFunc(ctx, sc, runErr)
}
