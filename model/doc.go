// Package model maps abstract model tiers to concrete provider model
// identifiers. Roles and registry entries declare tiers (tier1..tier3)
// instead of vendor model names so topologies stay provider-agnostic; the
// catalog resolves a tier to a launchable model ID for the configured
// provider using the official SDK constants.
package model
