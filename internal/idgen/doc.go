// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Identifiers (widget sessions, queue messages) should be treated as opaque
// strings.
package idgen
