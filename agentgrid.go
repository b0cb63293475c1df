// Package agentgrid provides a high-level façade over the hook dispatcher,
// role validator and dynamic registry that together form the extensibility
// and validation control plane of a multi-agent orchestration framework.
// Most applications interact with this package by:
//  1. Creating a ControlPlane via New() (or FromConfig) with the declared
//     role map and agent list
//  2. Registering cross-cutting plugins (Use)
//  3. Calling Validate() before any session work and treating a non-empty
//     result as a fatal configuration error
//  4. Handing the Dispatcher's trigger surface to the execution engine and
//     Materialize()'s output to agent startup
//
// The façade owns no scheduling: which agents run when is the orchestration
// pattern's concern. It only guarantees that declared topologies are
// structurally valid and that plugins observe the session lifecycle with
// deterministic ordering.
package agentgrid

import (
	"context"

	"github.com/hupe1980/agentgrid/config"
	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/hook"
	"github.com/hupe1980/agentgrid/logging"
	"github.com/hupe1980/agentgrid/registry"
	"github.com/hupe1980/agentgrid/role"
)

// Options configures the ControlPlane instance.
type Options struct {
	// Roles is the role map agents are validated against.
	Roles map[string]role.Schema

	// Agents is the statically declared agent list.
	Agents []role.Agent

	// Registry holds dynamic agent entries (defaults to an empty registry
	// with the default allowed-capability set).
	Registry *registry.Registry

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// ControlPlane aggregates the dispatcher, the static topology and the
// dynamic registry for one orchestration pattern instance.
type ControlPlane struct {
	dispatcher *hook.Dispatcher
	roles      map[string]role.Schema
	agents     []role.Agent
	registry   *registry.Registry
	logger     logging.Logger
}

// New creates a ControlPlane with optional overrides. Any unset service is
// initialized with a safe default.
func New(optFns ...func(o *Options)) *ControlPlane {
	opts := Options{
		Registry: registry.New(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	dispatcher := hook.NewDispatcher(func(o *hook.Options) {
		o.Logger = opts.Logger
	})

	return &ControlPlane{
		dispatcher: dispatcher,
		roles:      opts.Roles,
		agents:     opts.Agents,
		registry:   opts.Registry,
		logger:     opts.Logger,
	}
}

// FromConfig builds a ControlPlane from a loaded configuration document.
func FromConfig(cfg *config.Config, optFns ...func(o *Options)) (*ControlPlane, error) {
	roles, err := cfg.RoleSchemas()
	if err != nil {
		return nil, err
	}

	base := func(o *Options) {
		o.Roles = roles
		o.Agents = cfg.AgentSpecs()
		if len(cfg.Registry.AllowedCapabilities) > 0 {
			o.Registry = registry.New(registry.WithAllowedCapabilities(cfg.Registry.AllowedCapabilities...))
		}
	}
	return New(append([]func(o *Options){base}, optFns...)...), nil
}

// Use registers a plugin on the dispatcher.
func (c *ControlPlane) Use(p hook.Plugin) error {
	return c.dispatcher.Register(p)
}

// Dispatcher exposes the trigger surface consumed by the execution engine.
func (c *ControlPlane) Dispatcher() *hook.Dispatcher { return c.dispatcher }

// Registry exposes the dynamic agent registry.
func (c *ControlPlane) Registry() *registry.Registry { return c.registry }

// Roles returns the active role map.
func (c *ControlPlane) Roles() map[string]role.Schema { return c.roles }

// Validate checks the statically declared agents against the role map and
// returns all violations. Callers should run this before session start and
// treat a non-empty result as fatal.
func (c *ControlPlane) Validate() []string {
	violations := role.Validate(c.roles, c.agents)
	if len(violations) > 0 {
		c.logger.Error("topology validation failed", "violations", len(violations))
	}
	return violations
}

// Materialize merges dynamic registry entries over the statically declared
// agents into the final agent set for a session.
func (c *ControlPlane) Materialize() []role.Agent {
	return c.registry.Materialize(c.agents)
}

// StartSession creates a session context for the pattern and broadcasts
// session start to all plugins.
func (c *ControlPlane) StartSession(ctx context.Context, pattern string) *core.SessionContext {
	sc := core.NewSessionContext(pattern)
	c.dispatcher.TriggerSessionStart(ctx, sc)
	return sc
}

// EndSession broadcasts session end to all plugins. The context is discarded
// afterwards; the control plane keeps no reference.
func (c *ControlPlane) EndSession(ctx context.Context, sc *core.SessionContext) {
	c.dispatcher.TriggerSessionEnd(ctx, sc)
}
