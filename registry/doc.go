// Package registry implements the runtime-mutable table of ad-hoc agent
// definitions. Unlike statically declared agents, which are fixed and
// role-validated before execution, registry entries can be added and removed
// at arbitrary points during a running session. They bypass role typing
// entirely (a documented escape hatch) but each field is still validated
// independently on registration.
//
// Materialize is the single integration point with the rest of the session:
// it merges registry entries over the statically declared agent set, keyed by
// name, with dynamic entries taking precedence.
package registry
