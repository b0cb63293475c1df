// Package core provides the foundational domain types used by AgentGrid. It
// defines the core abstractions for:
//
//   - SessionContext (per-session identity, metadata and shared state passed
//     to every hook invocation)
//   - SharedState (the sanctioned cross-plugin communication channel with an
//     atomic read-modify-write primitive)
//   - Opaque identifier generation for sessions
//
// The package intentionally keeps implementation concerns (hook dispatch,
// validation, configuration) out of scope, exposing small types so the rest
// of the control plane stays decoupled from the execution engine.
package core
