package plugin

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/hook"
)

// ErrorBudgetKey is the SharedState key holding the per-session error count.
const ErrorBudgetKey = "error_budget.count"

// ErrorBudgetPlugin vetoes continuation once a session has seen more runtime
// errors than its budget allows. The count lives in SharedState so other
// plugins (and reports) can read it.
type ErrorBudgetPlugin struct {
	budget int
}

var (
	_ hook.Plugin    = (*ErrorBudgetPlugin)(nil)
	_ hook.ErrorHook = (*ErrorBudgetPlugin)(nil)
)

// NewErrorBudgetPlugin creates a plugin allowing up to budget runtime errors
// per session; the next error is vetoed. A budget of 0 vetoes the first
// error.
func NewErrorBudgetPlugin(budget int) *ErrorBudgetPlugin {
	return &ErrorBudgetPlugin{budget: budget}
}

// Name implements hook.Plugin.
func (p *ErrorBudgetPlugin) Name() string { return "error_budget" }

// OnError counts the error and votes false once the budget is exhausted.
func (p *ErrorBudgetPlugin) OnError(_ context.Context, sc *core.SessionContext, _ error) bool {
	count := sc.SharedState.Update(ErrorBudgetKey, func(old any, ok bool) any {
		if !ok {
			return 1
		}
		n, _ := old.(int)
		return n + 1
	}).(int)
	return count <= p.budget
}
