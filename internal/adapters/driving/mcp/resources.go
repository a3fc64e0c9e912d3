package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chainsearch/internal/core/codec"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

// uriScheme is the custom URI scheme for chainsearch resources.
const uriScheme = "chainsearch://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "recent",
		Name:        "recent-searches",
		Description: "Recent explorer searches in their stored form",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-response",
		Description: "Raw search response for a query, in the backend wire format",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

// handleRecentResource returns the stored recent-search list.
func (s *Server) handleRecentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var entries []domain.RecentSearchEntry
	if s.ports.Recent != nil {
		entries = s.ports.Recent.List()
	}

	data, err := codec.MarshalRecent(entries)
	if err != nil {
		return nil, fmt.Errorf("marshalling recent searches: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleSearchResource runs the query named in the URI.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	resp, err := s.ports.Search.Search(ctx, domain.SearchRequest{Query: query, Locale: s.opts.Locale})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	data, err := codec.EncodeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractQuery extracts the query from a URI like chainsearch://search/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	q, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(q)
}
