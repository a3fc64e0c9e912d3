package mcp

import (
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides cached search over the backend.
	Search driving.SearchService

	// Recent exposes the recent-search list. Optional.
	Recent driving.RecentSearchService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
