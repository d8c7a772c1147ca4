// Package mcpserver exposes the analysis service as MCP tools over
// stdio transport.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sourceprism/prism/internal/service/analysis"
)

// Server wraps the MCP server and registers all prism analysis tools.
type Server struct {
	server  *mcp.Server
	service *analysis.Service
}

// NewServer creates an MCP server with all prism tools registered.
func NewServer(version string, svc *analysis.Service) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "prism",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, service: svc}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all prism analysis tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_callers",
		Description: describeFindCallers(),
	}, s.handleFindCallers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_dead_code",
		Description: describeFindDeadCode(),
	}, s.handleFindDeadCode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "track_variable",
		Description: describeTrackVariable(),
	}, s.handleTrackVariable)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_duplicate_code",
		Description: describeFindDuplicateCode(),
	}, s.handleFindDuplicateCode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_imports_exports",
		Description: describeListImportsExports(),
	}, s.handleListImportsExports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_code_range",
		Description: describeExtractCodeRange(),
	}, s.handleExtractCodeRange)
}
