package hook

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// Options configures a Dispatcher.
type Options struct {
	// Logger receives isolated broadcast plugin faults. Defaults to NoOp.
	Logger logging.Logger
}

// Dispatcher owns the ordered list of registered plugins and exposes one
// trigger operation per extension point.
//
// Concurrency contract:
//   - Registration and unregistration are mutually exclusive with in-flight
//     trigger iteration (each trigger snapshots the plugin list under RLock).
//   - Triggers for different extension points, or for the same point on
//     behalf of different agents, run concurrently without dispatcher-imposed
//     ordering.
//   - Within one trigger call plugins run strictly in registration order and
//     are never parallelized with each other; fold correctness depends on it.
//   - SessionContext.SharedState mutations made by plugins are the plugin's
//     own responsibility to make safe (use SharedState.Update).
type Dispatcher struct {
	mu      sync.RWMutex
	plugins []Plugin
	byName  map[string]Plugin
	logger  logging.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(optFns ...func(o *Options)) *Dispatcher {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{byName: map[string]Plugin{}, logger: opts.Logger}
}

// Register appends a plugin to the dispatch order. It fails with a
// *DuplicateNameError if a plugin with the same name is already registered.
func (d *Dispatcher) Register(p Plugin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	name := p.Name()
	if _, exists := d.byName[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	d.plugins = append(d.plugins, p)
	d.byName[name] = p
	return nil
}

// Unregister removes the plugin (matched by name) and reports whether one
// was found.
func (d *Dispatcher) Unregister(p Plugin) bool {
	return d.UnregisterByName(p.Name())
}

// UnregisterByName removes the named plugin and reports whether one was found.
func (d *Dispatcher) UnregisterByName(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byName[name]; !exists {
		return false
	}
	delete(d.byName, name)
	for i, p := range d.plugins {
		if p.Name() == name {
			d.plugins = append(d.plugins[:i], d.plugins[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the named plugin if registered.
func (d *Dispatcher) Get(name string) (Plugin, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.byName[name]
	return p, ok
}

// Plugins returns a copy of the plugin list in registration order.
func (d *Dispatcher) Plugins() []Plugin {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Plugin, len(d.plugins))
	copy(out, d.plugins)
	return out
}

// Len returns the number of registered plugins.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.plugins)
}

// snapshot returns the plugin list for one trigger iteration. Registration
// happening after the snapshot is not observed by the in-flight trigger.
func (d *Dispatcher) snapshot() []Plugin {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Plugin, len(d.plugins))
	copy(out, d.plugins)
	return out
}

// TriggerSessionStart broadcasts session start to all plugins.
func (d *Dispatcher) TriggerSessionStart(ctx context.Context, sc *core.SessionContext) {
	for _, p := range d.snapshot() {
		h, ok := p.(SessionStartHook)
		if !ok {
			continue
		}
		d.broadcast(PointSessionStart, p.Name(), func() error { return h.SessionStart(ctx, sc) })
	}
}

// TriggerSessionEnd broadcasts session end to all plugins.
func (d *Dispatcher) TriggerSessionEnd(ctx context.Context, sc *core.SessionContext) {
	for _, p := range d.snapshot() {
		h, ok := p.(SessionEndHook)
		if !ok {
			continue
		}
		d.broadcast(PointSessionEnd, p.Name(), func() error { return h.SessionEnd(ctx, sc) })
	}
}

// TriggerToolCall broadcasts an imminent tool invocation to all plugins.
func (d *Dispatcher) TriggerToolCall(ctx context.Context, sc *core.SessionContext, call ToolCall) {
	for _, p := range d.snapshot() {
		h, ok := p.(ToolCallHook)
		if !ok {
			continue
		}
		d.broadcast(PointToolCall, p.Name(), func() error { return h.ToolCall(ctx, sc, call) })
	}
}

// TriggerToolResult broadcasts a finished tool invocation to all plugins.
func (d *Dispatcher) TriggerToolResult(ctx context.Context, sc *core.SessionContext, res ToolResult) {
	for _, p := range d.snapshot() {
		h, ok := p.(ToolResultHook)
		if !ok {
			continue
		}
		d.broadcast(PointToolResult, p.Name(), func() error { return h.ToolResult(ctx, sc, res) })
	}
}

// TriggerBeforeExecute folds the prompt through all plugins in registration
// order and returns the final accumulator. On plugin error the fold is
// abandoned mid-chain and the error propagates; the partially folded value is
// never returned and callers must fall back to the untransformed prompt or
// abort.
func (d *Dispatcher) TriggerBeforeExecute(ctx context.Context, sc *core.SessionContext, prompt string) (string, error) {
	acc := prompt
	for _, p := range d.snapshot() {
		h, ok := p.(BeforeExecuteHook)
		if !ok {
			continue
		}
		next, err := h.BeforeExecute(ctx, sc, acc)
		if err != nil {
			return "", foldError(PointBeforeExecute, p.Name(), err)
		}
		acc = next
	}
	return acc, nil
}

// TriggerAfterExecute folds the model result through all plugins. Same
// semantics as TriggerBeforeExecute.
func (d *Dispatcher) TriggerAfterExecute(ctx context.Context, sc *core.SessionContext, result string) (string, error) {
	acc := result
	for _, p := range d.snapshot() {
		h, ok := p.(AfterExecuteHook)
		if !ok {
			continue
		}
		next, err := h.AfterExecute(ctx, sc, acc)
		if err != nil {
			return "", foldError(PointAfterExecute, p.Name(), err)
		}
		acc = next
	}
	return acc, nil
}

// TriggerAgentSpawn folds a spawn request through all plugins. Same
// semantics as TriggerBeforeExecute.
func (d *Dispatcher) TriggerAgentSpawn(ctx context.Context, sc *core.SessionContext, req SpawnRequest) (SpawnRequest, error) {
	acc := req
	for _, p := range d.snapshot() {
		h, ok := p.(AgentSpawnHook)
		if !ok {
			continue
		}
		next, err := h.AgentSpawn(ctx, sc, acc)
		if err != nil {
			return SpawnRequest{}, foldError(PointAgentSpawn, p.Name(), err)
		}
		acc = next
	}
	return acc, nil
}

// TriggerAgentComplete folds an agent result through all plugins. Same
// semantics as TriggerBeforeExecute.
func (d *Dispatcher) TriggerAgentComplete(ctx context.Context, sc *core.SessionContext, res AgentResult) (AgentResult, error) {
	acc := res
	for _, p := range d.snapshot() {
		h, ok := p.(AgentCompleteHook)
		if !ok {
			continue
		}
		next, err := h.AgentComplete(ctx, sc, acc)
		if err != nil {
			return AgentResult{}, foldError(PointAgentComplete, p.Name(), err)
		}
		acc = next
	}
	return acc, nil
}

// TriggerError collects a continue/abort vote after a session runtime error.
// Plugins vote in registration order; the first false short-circuits the
// vote and skips the remaining plugins. Plugins without an ErrorHook
// abstain. Returns true only when no plugin vetoed.
func (d *Dispatcher) TriggerError(ctx context.Context, sc *core.SessionContext, runErr error) bool {
	for _, p := range d.snapshot() {
		h, ok := p.(ErrorHook)
		if !ok {
			continue
		}
		if !h.OnError(ctx, sc, runErr) {
			d.logger.Info("plugin vetoed continuation", "point", string(PointError), "plugin", p.Name(), "error", runErr)
			return false
		}
	}
	return true
}

// pluginFaultLogger is the optional logger capability for recording isolated
// plugin faults with structured fields. logging.GridLogger implements it;
// plain Loggers fall back to Warn/Error.
type pluginFaultLogger interface {
	LogPluginFault(point, plugin string, err error)
}

// broadcast runs one plugin call with full fault isolation: a returned error
// or a panic is logged as a non-fatal plugin fault and never propagates, so
// a misbehaving observer cannot corrupt the primary session.
func (d *Dispatcher) broadcast(point Point, plugin string, call func() error) {
	defer func() {
		if r := recover(); r != nil {
			if fl, ok := d.logger.(pluginFaultLogger); ok {
				fl.LogPluginFault(string(point), plugin, fmt.Errorf("panic: %v", r))
				return
			}
			d.logger.Error("plugin panicked during broadcast", "point", string(point), "plugin", plugin, "panic", fmt.Sprintf("%v", r))
		}
	}()
	if err := call(); err != nil {
		if fl, ok := d.logger.(pluginFaultLogger); ok {
			fl.LogPluginFault(string(point), plugin, err)
			return
		}
		d.logger.Warn("plugin failed during broadcast", "point", string(point), "plugin", plugin, "error", err)
	}
}

func foldError(point Point, plugin string, err error) error {
	return fmt.Errorf("%s: plugin '%s': %w", point, plugin, err)
}
