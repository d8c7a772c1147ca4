package main

import (
	"context"

	"github.com/sourceprism/prism/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes prism's
analyzers as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "prism": {
        "command": "prism",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - find_callers          Call sites of a function or method
  - find_dead_code        Symbols that are never referenced
  - track_variable        Declarations, assignments, and reads of a name
  - find_duplicate_code   Near-identical blocks eligible for extraction
  - list_imports_exports  Import/export surface of a file
  - extract_code_range    Line range with enclosing symbol context`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	server := mcpserver.NewServer(version, svc)
	return server.Run(context.Background())
}
