package plugin

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/hook"
)

// SharedState keys written by CostPlugin.
const (
	CostPromptTokensKey     = "cost.prompt_tokens"
	CostCompletionTokensKey = "cost.completion_tokens"
)

// Rough chars-per-token ratio used for estimation when no provider usage
// data is available.
const charsPerToken = 4

// CostPlugin estimates token consumption at the execute fold points. It is
// an identity transformer: prompts and results pass through unchanged while
// running totals accumulate in SessionContext.SharedState via Update, the
// sanctioned atomic primitive for concurrent writers.
type CostPlugin struct{}

var (
	_ hook.Plugin            = (*CostPlugin)(nil)
	_ hook.BeforeExecuteHook = (*CostPlugin)(nil)
	_ hook.AfterExecuteHook  = (*CostPlugin)(nil)
)

// NewCostPlugin creates a cost accounting plugin.
func NewCostPlugin() *CostPlugin { return &CostPlugin{} }

// Name implements hook.Plugin.
func (p *CostPlugin) Name() string { return "cost" }

// BeforeExecute accounts the prompt and passes it through unchanged.
func (p *CostPlugin) BeforeExecute(_ context.Context, sc *core.SessionContext, prompt string) (string, error) {
	addTokens(sc, CostPromptTokensKey, estimateTokens(prompt))
	return prompt, nil
}

// AfterExecute accounts the result and passes it through unchanged.
func (p *CostPlugin) AfterExecute(_ context.Context, sc *core.SessionContext, result string) (string, error) {
	addTokens(sc, CostCompletionTokensKey, estimateTokens(result))
	return result, nil
}

// Totals returns the accumulated prompt and completion token estimates for
// the session.
func (p *CostPlugin) Totals(sc *core.SessionContext) (prompt, completion int) {
	if v, ok := sc.SharedState.Get(CostPromptTokensKey); ok {
		prompt, _ = v.(int)
	}
	if v, ok := sc.SharedState.Get(CostCompletionTokensKey); ok {
		completion, _ = v.(int)
	}
	return prompt, completion
}

func addTokens(sc *core.SessionContext, key string, n int) {
	sc.SharedState.Update(key, func(old any, ok bool) any {
		if !ok {
			return n
		}
		total, _ := old.(int)
		return total + n
	})
}

func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}
