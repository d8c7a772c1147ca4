package analysis

import (
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourceprism/prism/internal/testutil"
	"github.com/sourceprism/prism/pkg/config"
	"github.com/sourceprism/prism/pkg/models"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(config.DefaultConfig(), WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func TestFindCallers(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"util.ts": "export function notify(msg) { console.log(msg); }\n",
		"app.ts":  "import { notify } from \"./util\";\n\nfunction boot() {\n  notify(\"starting\");\n  notify(\"ready\");\n}\n",
	})
	svc := newService(t)

	result, err := svc.FindCallers(filepath.Join(root, "util.ts"), "notify", false)
	require.NoError(t, err)

	assert.Equal(t, "notify", result.Symbol.Name)
	assert.Equal(t, 2, result.TotalCount)
	for _, call := range result.Callers {
		assert.Equal(t, models.CallDirect, call.CallType)
		assert.Equal(t, "boot", call.EnclosingFunction)
		assert.Contains(t, call.Snippet, "notify(")
	}
}

func TestFindCallersMethodPreference(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"svc.py": `
def close():
    pass

class Conn:
    def close(self):
        pass

def shutdown(conn):
    conn.close()
`,
	})
	svc := newService(t)

	result, err := svc.FindCallers(filepath.Join(root, "svc.py"), "close", true)
	require.NoError(t, err)
	assert.Equal(t, models.KindMethod, result.Symbol.Kind)
	require.Equal(t, 1, result.TotalCount)
	assert.Equal(t, models.CallMethod, result.Callers[0].CallType)
}

func TestFindCallersErrors(t *testing.T) {
	svc := newService(t)

	_, err := svc.FindCallers("", "x", false)
	var invalid *InvalidArgumentsError
	assert.ErrorAs(t, err, &invalid)

	root := testutil.WriteTree(t, map[string]string{"a.py": "x = 1\n"})
	_, err = svc.FindCallers(filepath.Join(root, "a.py"), "ghost", false)
	var notFound *SymbolNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Name)
}

func TestFindDeadCode(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"app.py": "def stale():\n    pass\n\ndef live():\n    pass\n\nlive()\n",
	})
	svc := newService(t)

	result, err := svc.FindDeadCode(root, DeadCodeOptions{})
	require.NoError(t, err)
	require.Len(t, result.UnusedSymbols, 1)
	assert.Equal(t, "stale", result.UnusedSymbols[0].Name)
	assert.Equal(t, 1, result.FilesAnalyzed)
}

func TestFindDeadCodeEmptyScope(t *testing.T) {
	svc := newService(t)

	_, err := svc.FindDeadCode(t.TempDir(), DeadCodeOptions{})
	var empty *EmptyFileSetError
	assert.ErrorAs(t, err, &empty)

	_, err = svc.FindDeadCode("", DeadCodeOptions{})
	var invalid *InvalidArgumentsError
	assert.ErrorAs(t, err, &invalid)
}

func TestTrackVariable(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"counter.ts": "let hits = 0;\n\nfunction record() {\n  hits = hits + 1;\n}\n",
	})
	svc := newService(t)

	trace, err := svc.TrackVariable("hits", root)
	require.NoError(t, err)

	assert.Equal(t, "hits", trace.Name)
	assert.Equal(t, 1, trace.Summary.Declarations)
	assert.Equal(t, 1, trace.Summary.Assignments)
	assert.Equal(t, 1, trace.Summary.Reads)
	assert.Equal(t, 3, trace.Summary.Total)
	assert.Equal(t, 1, trace.Summary.FilesScanned)
}

func TestTrackVariableErrors(t *testing.T) {
	svc := newService(t)

	var invalid *InvalidArgumentsError
	_, err := svc.TrackVariable("", ".")
	assert.ErrorAs(t, err, &invalid)

	var empty *EmptyFileSetError
	_, err = svc.TrackVariable("x", t.TempDir())
	assert.ErrorAs(t, err, &empty)
}

func TestFindDuplicateCode(t *testing.T) {
	body := "function sum(xs) {\n  let t = 0;\n  for (const x of xs) {\n    t += x;\n  }\n  if (t < 0) {\n    t = 0;\n  }\n  return t;\n}\n"
	root := testutil.WriteTree(t, map[string]string{
		"a.ts": body,
		"b.ts": body,
	})
	svc := newService(t)

	result, err := svc.FindDuplicateCode(root)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Suggestions)
	assert.Equal(t, 2, result.FilesScanned)
}

func TestListImportsExports(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"mod.ts": "import { a } from \"./a\";\nexport function b() {}\n",
	})
	svc := newService(t)

	listing, err := svc.ListImportsExports(filepath.Join(root, "mod.ts"))
	require.NoError(t, err)
	assert.Len(t, listing.Imports, 1)
	assert.Len(t, listing.Exports, 1)
}

func TestExtractCodeRange(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"fn.py": "def outer():\n    a = 1\n    return a\n",
	})
	svc := newService(t)

	rng, err := svc.ExtractCodeRange(filepath.Join(root, "fn.py"), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "outer", rng.EnclosingSymbol)
	assert.Equal(t, "function", rng.EnclosingKind)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&InvalidArgumentsError{Reason: "missing"}, "missing"},
		{&SymbolNotFoundError{Name: "x", File: "f.py"}, "x"},
		{&EmptyFileSetError{Path: "dir"}, "dir"},
	}
	for _, tc := range tests {
		assert.Contains(t, tc.err.Error(), tc.want)
	}
	if errors.As(error(&InvalidArgumentsError{}), new(*SymbolNotFoundError)) {
		t.Error("error types should not alias")
	}
}
