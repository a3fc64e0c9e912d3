// Package tui provides the interactive terminal search provider.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
)

// Ports aggregates the collaborators required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides cached search over the backend.
	Search driving.SearchService

	// Recent manages the recent-search list.
	Recent driving.RecentSearchService

	// Navigator opens selected results. Optional.
	Navigator driven.Navigator

	// Classifier describes the shape of the raw query. Optional.
	Classifier driven.QueryClassifier
}

// Options configure the provider.
type Options struct {
	// Locale is passed through to the backend.
	Locale string

	// Homepage switches the header to the large variant.
	Homepage bool

	// Debounce is the quiet period before a query is sent.
	Debounce time.Duration

	// StaleAfter is how long a cached response is served without refetching.
	StaleAfter time.Duration

	// Scope restricts requests to one category. Empty means every category.
	Scope domain.Category
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Recent == nil {
		return ErrMissingRecentSearches
	}
	return nil
}

func (p *Ports) deps() search.Deps {
	return search.Deps{
		Search:     p.Search,
		Recent:     p.Recent,
		Navigator:  p.Navigator,
		Classifier: p.Classifier,
	}
}

func (o Options) view() search.Options {
	return search.Options{
		Locale:     o.Locale,
		Scope:      o.Scope,
		Debounce:   o.Debounce,
		StaleAfter: o.StaleAfter,
		Homepage:   o.Homepage,
	}
}
