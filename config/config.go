// Package config loads AgentGrid topology and runtime settings from YAML
// files with environment variable overrides, and converts the declarative
// role/agent sections into the validator's types.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hupe1980/agentgrid/role"
)

// envPrefix namespaces environment overrides (AGENTGRID_LOG_LEVEL -> log.level).
const envPrefix = "AGENTGRID_"

// Config is the root configuration document.
type Config struct {
	Log      LogConfig             `koanf:"log"`
	Provider string                `koanf:"provider"` // anthropic, openai
	Roles    map[string]RoleConfig `koanf:"roles"`
	Agents   []AgentConfig         `koanf:"agents"`
	Registry RegistryConfig        `koanf:"registry"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

// RoleConfig is the declarative shape of one role schema.
type RoleConfig struct {
	Type                 string   `koanf:"type"`
	Description          string   `koanf:"description"`
	RequiredCapabilities []string `koanf:"required_capabilities"`
	OptionalCapabilities []string `koanf:"optional_capabilities"`
	Cardinality          string   `koanf:"cardinality"`
	DefaultModelTier     string   `koanf:"default_model_tier"`
	PromptRef            string   `koanf:"prompt_ref"`
}

// AgentConfig is the declarative shape of one agent instance.
type AgentConfig struct {
	Name         string         `koanf:"name"`
	Role         string         `koanf:"role"`
	Description  string         `koanf:"description"`
	Capabilities []string       `koanf:"capabilities"`
	PromptText   string         `koanf:"prompt_text"`
	PromptRef    string         `koanf:"prompt_ref"`
	ModelTier    string         `koanf:"model_tier"`
	Metadata     map[string]any `koanf:"metadata"`
}

// RegistryConfig configures the dynamic registry.
type RegistryConfig struct {
	AllowedCapabilities []string `koanf:"allowed_capabilities"`
}

// Load reads configuration from the optional YAML file at path, then applies
// AGENTGRID_* environment overrides on top of defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	_ = k.Set("log.level", "info")
	_ = k.Set("log.format", "json")
	_ = k.Set("provider", "anthropic")

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// 2. Load from ENV (AGENTGRID_LOG_LEVEL -> log.level)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// RoleSchemas converts the roles section into validator schemas. Unknown
// enum literals are load errors, not validation violations: a typo in a
// cardinality must fail fast rather than silently relax a constraint.
func (c *Config) RoleSchemas() (map[string]role.Schema, error) {
	schemas := make(map[string]role.Schema, len(c.Roles))

	ids := make([]string, 0, len(c.Roles))
	for id := range c.Roles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rc := c.Roles[id]
		semanticType, err := role.ParseSemanticType(rc.Type)
		if err != nil {
			return nil, fmt.Errorf("role '%s': %w", id, err)
		}
		cardinality, err := role.ParseCardinality(rc.Cardinality)
		if err != nil {
			return nil, fmt.Errorf("role '%s': %w", id, err)
		}
		schemas[id] = role.Schema{
			ID:                   id,
			Type:                 semanticType,
			Description:          rc.Description,
			RequiredCapabilities: rc.RequiredCapabilities,
			OptionalCapabilities: rc.OptionalCapabilities,
			Cardinality:          cardinality,
			DefaultModelTier:     rc.DefaultModelTier,
			PromptRef:            rc.PromptRef,
		}
	}
	return schemas, nil
}

// AgentSpecs converts the agents section into declared agent instances, in
// declaration order.
func (c *Config) AgentSpecs() []role.Agent {
	agents := make([]role.Agent, 0, len(c.Agents))
	for _, ac := range c.Agents {
		agents = append(agents, role.Agent{
			Name:              ac.Name,
			RoleID:            ac.Role,
			Description:       ac.Description,
			Capabilities:      ac.Capabilities,
			PromptText:        ac.PromptText,
			PromptRef:         ac.PromptRef,
			ModelTierOverride: ac.ModelTier,
			Metadata:          ac.Metadata,
		})
	}
	return agents
}
