// Package hook implements the typed extension pipeline that lets
// cross-cutting plugins (metrics, cost accounting, retries, logging) observe
// and modify a running session without the execution engine knowing about
// them.
//
// A plugin implements whichever extension points it cares about by satisfying
// the corresponding optional interface; unimplemented points are no-ops. The
// Dispatcher invokes registered plugins in registration order using one of
// three strategies:
//
//   - Fold (BeforeExecute, AfterExecute, AgentSpawn, AgentComplete): each
//     plugin receives the previous plugin's output and returns a transformed
//     value. A plugin error abandons the fold and propagates to the caller.
//   - Broadcast (SessionStart, SessionEnd, ToolCall, ToolResult): every
//     plugin sees the same unmodified input; errors and panics are isolated
//     per plugin, logged and never propagated.
//   - Veto (OnError): plugins vote on whether the session should continue
//     after a runtime error; the first false short-circuits the vote.
//
// Triggers for different extension points, or for the same point on behalf
// of different concurrently running agents, run concurrently. Within one
// trigger call plugins are never reordered or parallelized.
package hook
