package plugin

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/hook"
	"github.com/hupe1980/agentgrid/logging"
)

// LoggingPlugin logs session, tool and error lifecycle events through a
// logging.Logger. It observes broadcast points only and never perturbs the
// values being observed.
type LoggingPlugin struct {
	logger logging.Logger
}

var (
	_ hook.Plugin           = (*LoggingPlugin)(nil)
	_ hook.SessionStartHook = (*LoggingPlugin)(nil)
	_ hook.SessionEndHook   = (*LoggingPlugin)(nil)
	_ hook.ToolCallHook     = (*LoggingPlugin)(nil)
	_ hook.ToolResultHook   = (*LoggingPlugin)(nil)
	_ hook.ErrorHook        = (*LoggingPlugin)(nil)
)

// NewLoggingPlugin creates a logging plugin. A nil logger falls back to
// slog.Default().
func NewLoggingPlugin(logger logging.Logger) *LoggingPlugin {
	if logger == nil {
		logger = logging.NewDefaultSlogLogger()
	}
	return &LoggingPlugin{logger: logger}
}

// Name implements hook.Plugin.
func (p *LoggingPlugin) Name() string { return "logging" }

// SessionStart logs the beginning of a session.
func (p *LoggingPlugin) SessionStart(_ context.Context, sc *core.SessionContext) error {
	p.logger.Info("session started", "session_id", sc.ID, "pattern", sc.Pattern)
	return nil
}

// SessionEnd logs the end of a session.
func (p *LoggingPlugin) SessionEnd(_ context.Context, sc *core.SessionContext) error {
	p.logger.Info("session ended", "session_id", sc.ID, "pattern", sc.Pattern)
	return nil
}

// ToolCall logs an imminent tool invocation.
func (p *LoggingPlugin) ToolCall(_ context.Context, sc *core.SessionContext, call hook.ToolCall) error {
	p.logger.Debug("tool call", "session_id", sc.ID, "agent", call.AgentName, "tool", call.Tool)
	return nil
}

// ToolResult logs a finished tool invocation.
func (p *LoggingPlugin) ToolResult(_ context.Context, sc *core.SessionContext, res hook.ToolResult) error {
	if res.Err != nil {
		p.logger.Warn("tool failed", "session_id", sc.ID, "agent", res.AgentName, "tool", res.Tool, "error", res.Err)
		return nil
	}
	p.logger.Debug("tool result", "session_id", sc.ID, "agent", res.AgentName, "tool", res.Tool)
	return nil
}

// OnError logs the runtime error and abstains from the vote.
func (p *LoggingPlugin) OnError(_ context.Context, sc *core.SessionContext, runErr error) bool {
	p.logger.Error("session runtime error", "session_id", sc.ID, "error", runErr)
	return true
}
