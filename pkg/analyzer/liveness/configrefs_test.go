package liveness

import (
	"path/filepath"
	"testing"

	"github.com/sourceprism/prism/internal/testutil"
)

func TestScanSourceDottedLiterals(t *testing.T) {
	src := []byte(`
MIDDLEWARE = [
    "app.core.logging.CorrelationFilter",
    'app.middleware.AuthMiddleware',
]
plain = "not-a-path"
`)
	set := NewConfigReferenceSet()
	set.ScanSource(src)

	if !set.Contains("CorrelationFilter") {
		t.Error("missing CorrelationFilter")
	}
	if !set.Contains("AuthMiddleware") {
		t.Error("missing AuthMiddleware")
	}
	if set.Contains("not-a-path") {
		t.Error("non-dotted literal should not be collected")
	}
	// Intermediate segments are path components, not symbol names.
	if set.Contains("core") {
		t.Error("intermediate segment collected")
	}
}

func TestScanArtifactYAML(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"settings.yaml": `
logging:
  filters:
    correlation: app.core.logging.CorrelationFilter
handlers:
  - myapp.handlers.AuditHandler
`,
	})

	set := NewConfigReferenceSet()
	if err := set.ScanArtifact(filepath.Join(root, "settings.yaml")); err != nil {
		t.Fatal(err)
	}
	if !set.Contains("CorrelationFilter") {
		t.Error("missing CorrelationFilter from unquoted YAML scalar")
	}
	if !set.Contains("AuditHandler") {
		t.Error("missing AuditHandler from YAML list item")
	}
}

func TestScanArtifactJSON(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"config.json": `{"processor": "pipeline.steps.Normalizer", "debug": true}`,
	})

	set := NewConfigReferenceSet()
	if err := set.ScanArtifact(filepath.Join(root, "config.json")); err != nil {
		t.Fatal(err)
	}
	if !set.Contains("Normalizer") {
		t.Error("missing Normalizer from JSON value")
	}
}

func TestScanArtifactMissingFile(t *testing.T) {
	set := NewConfigReferenceSet()
	if err := set.ScanArtifact(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestNamesSorted(t *testing.T) {
	set := NewConfigReferenceSet()
	set.ScanSource([]byte(`"z.Beta" "a.Alpha"`))
	names := set.Names()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Beta" {
		t.Fatalf("names = %v, want [Alpha Beta]", names)
	}
	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2", set.Len())
	}
}
