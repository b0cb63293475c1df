// Package testutil contains fluent builders for role schemas and agent
// declarations used across package tests.
package testutil
