package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
the explorer and read recent searches.

By default the server speaks JSON-RPC over stdio. Use --http to serve
streamable HTTP instead, for example for the MCP Inspector.

Examples:
  # Stdio mode
  chainsearch mcp

  # HTTP mode
  chainsearch mcp --http :8080

Client configuration:
  {
    "mcpServers": {
      "chainsearch": {
        "command": "/path/to/chainsearch",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "listen address for HTTP mode (empty = stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Search: searchService,
		Recent: recentService,
	}

	server, err := mcp.NewServer(ports, mcp.Options{Locale: appSettings.Search.Locale})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", displayAddr(mcpHTTPAddr))
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}
	return server.Run(cmd.Context())
}

func displayAddr(addr string) string {
	if addr != "" && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
