package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sourceprism/prism/internal/service/analysis"
	toon "github.com/toon-format/toon-go"
)

// Tool input structures

// FindCallersInput locates call sites of one symbol.
type FindCallersInput struct {
	FilePath     string `json:"file_path" jsonschema:"Path to the file where the symbol is declared."`
	FunctionName string `json:"function_name,omitempty" jsonschema:"Name of the function to find callers of."`
	MethodName   string `json:"method_name,omitempty" jsonschema:"Name of the method to find callers of. Use instead of function_name for class methods."`
}

// FindDeadCodeInput runs dead-code detection over a file or directory.
type FindDeadCodeInput struct {
	Path            string `json:"path" jsonschema:"File or directory to analyze."`
	IncludeExported bool   `json:"include_exported,omitempty" jsonschema:"Also report exported symbols, at low confidence."`
}

// TrackVariableInput tracks reads, writes, and declarations of a name.
type TrackVariableInput struct {
	Name string `json:"name" jsonschema:"Variable name to track."`
	Path string `json:"path" jsonschema:"File or directory to search."`
}

// FindDuplicateCodeInput detects near-identical code blocks.
type FindDuplicateCodeInput struct {
	Path string `json:"path" jsonschema:"File or directory to analyze."`
}

// ListImportsExportsInput lists a file's import/export surface.
type ListImportsExportsInput struct {
	FilePath string `json:"file_path" jsonschema:"Path to the file to inspect."`
}

// ExtractCodeRangeInput extracts a line range from a file.
type ExtractCodeRangeInput struct {
	FilePath  string `json:"file_path" jsonschema:"Path to the file."`
	StartLine uint32 `json:"start_line" jsonschema:"First line, 1-based inclusive."`
	EndLine   uint32 `json:"end_line" jsonschema:"Last line, 1-based inclusive."`
}

// Helper functions

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// serviceError maps the service error taxonomy onto tool error results.
// Every failure becomes a structured response; nothing escapes as a
// protocol error except marshaling failures.
func serviceError(err error) (*mcp.CallToolResult, any, error) {
	var (
		invalidArgs    *analysis.InvalidArgumentsError
		symbolNotFound *analysis.SymbolNotFoundError
		emptyFileSet   *analysis.EmptyFileSetError
	)
	switch {
	case errors.As(err, &invalidArgs),
		errors.As(err, &symbolNotFound),
		errors.As(err, &emptyFileSet):
		return toolError(err.Error())
	default:
		return toolError("analysis failed: " + err.Error())
	}
}

// Tool handlers

func (s *Server) handleFindCallers(ctx context.Context, req *mcp.CallToolRequest, input FindCallersInput) (*mcp.CallToolResult, any, error) {
	name := input.FunctionName
	isMethod := false
	if name == "" {
		name = input.MethodName
		isMethod = true
	}
	if name == "" {
		return toolError("either function_name or method_name is required")
	}

	result, err := s.service.FindCallers(input.FilePath, name, isMethod)
	if err != nil {
		return serviceError(err)
	}
	return toolResult(result)
}

func (s *Server) handleFindDeadCode(ctx context.Context, req *mcp.CallToolRequest, input FindDeadCodeInput) (*mcp.CallToolResult, any, error) {
	result, err := s.service.FindDeadCode(input.Path, analysis.DeadCodeOptions{
		IncludeExported: input.IncludeExported,
	})
	if err != nil {
		return serviceError(err)
	}
	return toolResult(result)
}

func (s *Server) handleTrackVariable(ctx context.Context, req *mcp.CallToolRequest, input TrackVariableInput) (*mcp.CallToolResult, any, error) {
	result, err := s.service.TrackVariable(input.Name, input.Path)
	if err != nil {
		return serviceError(err)
	}
	return toolResult(result)
}

func (s *Server) handleFindDuplicateCode(ctx context.Context, req *mcp.CallToolRequest, input FindDuplicateCodeInput) (*mcp.CallToolResult, any, error) {
	result, err := s.service.FindDuplicateCode(input.Path)
	if err != nil {
		return serviceError(err)
	}
	return toolResult(result)
}

func (s *Server) handleListImportsExports(ctx context.Context, req *mcp.CallToolRequest, input ListImportsExportsInput) (*mcp.CallToolResult, any, error) {
	result, err := s.service.ListImportsExports(input.FilePath)
	if err != nil {
		return serviceError(err)
	}
	return toolResult(result)
}

func (s *Server) handleExtractCodeRange(ctx context.Context, req *mcp.CallToolRequest, input ExtractCodeRangeInput) (*mcp.CallToolResult, any, error) {
	result, err := s.service.ExtractCodeRange(input.FilePath, input.StartLine, input.EndLine)
	if err != nil {
		return serviceError(err)
	}
	return toolResult(result)
}
