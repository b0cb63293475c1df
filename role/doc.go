// Package role defines the declarative topology contract of an orchestration
// pattern: abstract roles with semantic types, cardinality bounds and
// capability sets, concrete agent declarations bound to those roles, and the
// pure validator that checks a declared agent list against a role map before
// any session work begins.
package role
