// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The fetch coordinator and the filter helpers are presentation-agnostic
// and are shared by the terminal UI, the CLI and the MCP server.
package services
