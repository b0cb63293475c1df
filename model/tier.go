package model

import "fmt"

// Tier is an abstract model capability/cost class. tier1 is the strongest
// and most expensive, tier3 the cheapest.
type Tier string

const (
	Tier1 Tier = "tier1"
	Tier2 Tier = "tier2"
	Tier3 Tier = "tier3"
)

// Valid reports whether t is a recognized tier.
func (t Tier) Valid() bool {
	switch t {
	case Tier1, Tier2, Tier3:
		return true
	}
	return false
}

// ParseTier converts a configuration literal into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown model tier '%s'", s)
	}
	return t, nil
}

// Tiers returns all tiers strongest-first.
func Tiers() []Tier { return []Tier{Tier1, Tier2, Tier3} }
