// Package plugin ships the built-in cross-cutting plugins: structured
// lifecycle logging, OpenTelemetry metrics, token cost accounting and an
// error budget veto. They double as reference implementations of the hook
// contract; none of them transforms a folded value.
package plugin
