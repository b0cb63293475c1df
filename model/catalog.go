package model

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// Provider identifies a model vendor.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// Catalog resolves a tier and provider to a concrete model identifier.
// The zero value is not usable; construct with NewCatalog.
type Catalog struct {
	models map[Provider]map[Tier]string
}

// NewCatalog returns a catalog seeded with the default tier mapping for the
// supported providers, drawn from the official SDK constants.
func NewCatalog() *Catalog {
	return &Catalog{
		models: map[Provider]map[Tier]string{
			ProviderAnthropic: {
				Tier1: string(anthropic.ModelClaude3OpusLatest),
				Tier2: string(anthropic.ModelClaude3_5SonnetLatest),
				Tier3: string(anthropic.ModelClaude3_5HaikuLatest),
			},
			ProviderOpenAI: {
				Tier1: string(openai.ChatModelGPT4o),
				Tier2: string(openai.ChatModelGPT4oMini),
				Tier3: string(openai.ChatModelGPT3_5Turbo),
			},
		},
	}
}

// Override replaces the model ID for one tier/provider pair, for deployments
// pinning specific snapshots.
func (c *Catalog) Override(provider Provider, tier Tier, modelID string) {
	byTier, ok := c.models[provider]
	if !ok {
		byTier = map[Tier]string{}
		c.models[provider] = byTier
	}
	byTier[tier] = modelID
}

// Resolve returns the model identifier for the given tier and provider.
func (c *Catalog) Resolve(provider Provider, tier Tier) (string, error) {
	byTier, ok := c.models[provider]
	if !ok {
		return "", fmt.Errorf("unknown model provider '%s'", provider)
	}
	id, ok := byTier[tier]
	if !ok {
		return "", fmt.Errorf("no model registered for provider '%s' tier '%s'", provider, tier)
	}
	return id, nil
}

// ResolveTierName is a convenience for resolving configuration literals
// (role default tiers, agent overrides) in one step.
func (c *Catalog) ResolveTierName(provider Provider, tierName string) (string, error) {
	tier, err := ParseTier(tierName)
	if err != nil {
		return "", err
	}
	return c.Resolve(provider, tier)
}
