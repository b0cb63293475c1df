// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer GridLogger with contextual
// helpers (session, component) and domain specific helpers for hook dispatch
// and topology validation.
package logging
