// Package publish broadcasts transaction events to registered listeners.
// It is structured into small files by concern:
//
//   - registry.go: Registry, the identity-keyed set of listeners.
//   - publisher.go: Publisher, dispatch with per-listener fault isolation
//     and the one-time no-listener advisory.
//   - discovery.go: provider table populated from init() and Discover.
//   - default.go: lazily built process-wide Publisher and package helpers.
//   - errors.go: sentinel and typed errors.
//   - metrics.go: Prometheus collectors.
//
// A Publisher owns its registry and warn-once flag, so tests construct their
// own with New. Default exists for code that has no Publisher threaded
// through; it runs discovery of every linked provider exactly once.
//
// Dispatch is synchronous: Publish returns after every listener has run.
package publish
