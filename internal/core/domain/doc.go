// Package domain defines the core business entities for chainsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Category: The closed set of explorer entity kinds
//   - SearchResultItem: One matched entity returned by the search backend
//   - SearchResponse: The bucketed result set for a single query
//   - RecentSearchEntry: A persisted past query or selection
//   - AppSettings: User configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
