// Package mcp provides an MCP (Model Context Protocol) server adapter for chainsearch.
// It lets AI assistants query the explorer search backend and read recent searches.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrEmptyQuery is returned when a tool is called without a query.
var ErrEmptyQuery = errors.New("mcp: query is required")
