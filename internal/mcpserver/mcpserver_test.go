package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sourceprism/prism/internal/service/analysis"
	"github.com/sourceprism/prism/internal/testutil"
	"github.com/sourceprism/prism/pkg/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc, err := analysis.New(config.DefaultConfig(), analysis.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Close)
	return NewServer("test", svc)
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("got %d content blocks, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleFindCallersRequiresName(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleFindCallers(context.Background(), nil, FindCallersInput{
		FilePath: "x.ts",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("missing symbol name should produce a tool error")
	}
	if !strings.Contains(textOf(t, result), "function_name or method_name") {
		t.Errorf("unexpected error text %q", textOf(t, result))
	}
}

func TestHandleFindDeadCode(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"app.py": "def stale():\n    pass\n\ndef live():\n    pass\n\nlive()\n",
	})
	s := newTestServer(t)

	result, _, err := s.handleFindDeadCode(context.Background(), nil, FindDeadCodeInput{Path: root})
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}
	if !strings.Contains(textOf(t, result), "stale") {
		t.Errorf("result text missing finding: %q", textOf(t, result))
	}
}

func TestHandleTrackVariable(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"c.ts": "let hits = 0;\nhits = hits + 1;\n",
	})
	s := newTestServer(t)

	result, _, err := s.handleTrackVariable(context.Background(), nil, TrackVariableInput{
		Name: "hits",
		Path: root,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}
}

func TestHandleExtractCodeRangeInvalid(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"a.py": "x = 1\n"})
	s := newTestServer(t)

	result, _, err := s.handleExtractCodeRange(context.Background(), nil, ExtractCodeRangeInput{
		FilePath:  filepath.Join(root, "a.py"),
		StartLine: 9,
		EndLine:   12,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("out-of-range extraction should produce a tool error")
	}
}

func TestServiceErrorMapping(t *testing.T) {
	result, _, err := serviceError(&analysis.EmptyFileSetError{Path: "empty-dir"})
	if err != nil {
		t.Fatal(err)
	}
	text := textOf(t, result)
	if !result.IsError || !strings.Contains(text, "empty-dir") {
		t.Errorf("taxonomy error text = %q", text)
	}
	if strings.Contains(text, "analysis failed") {
		t.Error("taxonomy errors should not carry the generic prefix")
	}

	result, _, err = serviceError(errors.New("boom"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(textOf(t, result), "analysis failed: boom") {
		t.Errorf("generic error text = %q", textOf(t, result))
	}
}

func TestDescriptions(t *testing.T) {
	descriptions := map[string]string{
		"find_callers":         describeFindCallers(),
		"find_dead_code":       describeFindDeadCode(),
		"track_variable":       describeTrackVariable(),
		"find_duplicate_code":  describeFindDuplicateCode(),
		"list_imports_exports": describeListImportsExports(),
		"extract_code_range":   describeExtractCodeRange(),
	}
	for name, desc := range descriptions {
		if desc == "" {
			t.Errorf("%s has an empty description", name)
			continue
		}
		if !strings.Contains(desc, "USE WHEN") {
			t.Errorf("%s description missing usage guidance", name)
		}
	}
}

func TestNewServerDefaultsVersion(t *testing.T) {
	svc, err := analysis.New(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	if s := NewServer("", svc); s == nil || s.server == nil {
		t.Fatal("server not constructed")
	}
}
