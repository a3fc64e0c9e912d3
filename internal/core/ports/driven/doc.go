// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SearchBackend: Resolves a query into bucketed entity records (remote API)
//   - LocalStorage: Client-local key/value storage for recent searches
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Navigator: Opens result URLs. Without it, selection only records history.
//   - QueryClassifier: Describes what a raw query looks like. Without it, no hint is shown.
//   - WatchableStorage: Change notifications for LocalStorage written by other processes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
