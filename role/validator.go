package role

import (
	"fmt"
	"sort"
)

// Validate checks a list of declared agents against a map of role schemas
// and returns all violations as human-readable strings. An empty result
// means the configuration is valid.
//
// Validate is a pure function: it never mutates its inputs, never returns an
// error and is idempotent (identical inputs produce identical, order-stable
// violation lists). Callers decide whether a non-empty result is fatal;
// configuration loading treats it as a startup error so users can fix every
// issue in one pass.
//
// Checks, in order:
//  1. every agent's RoleID resolves in the role map
//  2. agent names are unique
//  3. per-role agent counts satisfy the role's cardinality
//  4. each agent's capabilities are a superset of its role's required set
//     and a subset of required ∪ optional (closed world: roles fully
//     enumerate what their instances may use)
func Validate(roles map[string]Schema, agents []Agent) []string {
	violations := []string{}

	// Unknown role references.
	for _, a := range agents {
		if _, ok := roles[a.RoleID]; !ok {
			violations = append(violations, fmt.Sprintf("agent '%s' references unknown role '%s'", a.Name, a.RoleID))
		}
	}

	// Duplicate agent names. Each duplicate occurrence past the first is
	// reported once.
	seen := map[string]bool{}
	for _, a := range agents {
		if seen[a.Name] {
			violations = append(violations, fmt.Sprintf("duplicate agent name '%s'", a.Name))
			continue
		}
		seen[a.Name] = true
	}

	// Cardinality, in sorted role order for deterministic output.
	counts := map[string]int{}
	for _, a := range agents {
		if _, ok := roles[a.RoleID]; ok {
			counts[a.RoleID]++
		}
	}
	roleIDs := make([]string, 0, len(roles))
	for id := range roles {
		roleIDs = append(roleIDs, id)
	}
	sort.Strings(roleIDs)
	for _, id := range roleIDs {
		schema := roles[id]
		count := counts[id]
		if !schema.Cardinality.Allows(count) {
			violations = append(violations, fmt.Sprintf(
				"role '%s' violates cardinality '%s': expected %s agent(s), found %d",
				id, schema.Cardinality, schema.Cardinality.Expected(), count))
		}
	}

	// Capability contract, closed world.
	for _, a := range agents {
		schema, ok := roles[a.RoleID]
		if !ok {
			continue
		}
		declared := map[string]bool{}
		for _, c := range a.Capabilities {
			declared[c] = true
		}
		for _, c := range schema.RequiredCapabilities {
			if !declared[c] {
				violations = append(violations, fmt.Sprintf(
					"agent '%s' is missing required capability '%s' for role '%s'", a.Name, c, a.RoleID))
			}
		}
		allowed := map[string]bool{}
		for _, c := range schema.RequiredCapabilities {
			allowed[c] = true
		}
		for _, c := range schema.OptionalCapabilities {
			allowed[c] = true
		}
		for _, c := range a.Capabilities {
			if !allowed[c] {
				violations = append(violations, fmt.Sprintf(
					"agent '%s' declares capability '%s' not allowed by role '%s'", a.Name, c, a.RoleID))
			}
		}
	}

	return violations
}
