package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chainsearch/internal/core/codec"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/services"
)

const defaultLimit = 20

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"transaction hash, block height, address, pool id, asset or free text"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to tx, block, pool, address, asset, epoch or policy"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// ResultOutput is a single search result in the backend wire shape.
type ResultOutput struct {
	Title    string       `json:"title"`
	Ident    string       `json:"ident"`
	Category string       `json:"category"`
	URL      string       `json:"url"`
	Extra    *ExtraOutput `json:"extra,omitempty"`
}

// ExtraOutput is the tagged auxiliary payload of a result.
type ExtraOutput struct {
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results    []ResultOutput `json:"results"`
	Count      int            `json:"count"`
	Total      int            `json:"total"`
	Categories []string       `json:"categories"`
}

// RecentInput is the input schema for the recent_searches tool.
type RecentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return"`
}

// RecentEntryOutput is one recent search.
type RecentEntryOutput struct {
	Query        string        `json:"query"`
	SelectedItem *ResultOutput `json:"selectedItem,omitempty"`
	Timestamp    int64         `json:"timestamp"`
}

// RecentOutput is the output schema for the recent_searches tool.
type RecentOutput struct {
	Entries []RecentEntryOutput `json:"entries"`
	Count   int                 `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the Cardano explorer for transactions, blocks, pools, addresses, assets, epochs and policies",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recent_searches",
		Description: "List the most recent explorer searches, newest first",
	}, s.handleRecent)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, ErrEmptyQuery
	}
	category, ok := domain.ParseFilter(input.Category)
	if !ok {
		return nil, SearchOutput{}, fmt.Errorf("category %q: %w", input.Category, domain.ErrUnsupportedType)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	resp, err := s.ports.Search.Search(ctx, domain.SearchRequest{
		Query:    input.Query,
		Locale:   s.opts.Locale,
		Category: category,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	items := services.Flatten(services.GroupItems(services.FilterItems(resp, category)))
	output := SearchOutput{
		Results:    make([]ResultOutput, 0, min(limit, len(items))),
		Total:      len(items),
		Categories: make([]string, 0),
	}
	for _, c := range resp.Categories() {
		output.Categories = append(output.Categories, c.String())
	}
	for i := range items {
		if i == limit {
			break
		}
		output.Results = append(output.Results, resultOutput(items[i]))
	}
	output.Count = len(output.Results)

	return nil, output, nil
}

// handleRecent handles the recent_searches tool invocation.
func (s *Server) handleRecent(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RecentInput,
) (*mcp.CallToolResult, RecentOutput, error) {
	output := RecentOutput{Entries: []RecentEntryOutput{}}
	if s.ports.Recent == nil {
		return nil, output, nil
	}

	for _, e := range s.ports.Recent.List() {
		if input.Limit > 0 && len(output.Entries) == input.Limit {
			break
		}
		output.Entries = append(output.Entries, recentEntry(e))
	}
	output.Count = len(output.Entries)
	return nil, output, nil
}

func recentEntry(e domain.RecentSearchEntry) RecentEntryOutput {
	out := RecentEntryOutput{Query: e.Query, Timestamp: e.Timestamp}
	if e.SelectedItem != nil {
		item := resultOutput(*e.SelectedItem)
		out.SelectedItem = &item
	}
	return out
}

// resultOutput reuses the wire encoding and decodes the extra value
// into a plain value for the tool schema.
func resultOutput(item domain.SearchResultItem) ResultOutput {
	wire := codec.FromDomain(item)
	out := ResultOutput{
		Title:    wire.Title,
		Ident:    wire.Ident,
		Category: wire.Category,
		URL:      wire.URL,
	}
	if wire.Extra != nil {
		out.Extra = &ExtraOutput{Type: wire.Extra.Type}
		if len(wire.Extra.Value) > 0 {
			var v any
			if err := json.Unmarshal(wire.Extra.Value, &v); err == nil {
				out.Extra.Value = v
			}
		}
	}
	return out
}
