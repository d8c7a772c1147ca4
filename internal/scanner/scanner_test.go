package scanner

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/sourceprism/prism/internal/testutil"
	"github.com/sourceprism/prism/pkg/config"
)

func TestResolveSingleFile(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"app.ts": "const x = 1;\n",
	})
	s := New(nil)

	files := s.Resolve(filepath.Join(root, "app.ts"))
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
}

func TestResolveUnrecognizedFile(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"notes.txt": "hello\n",
	})
	s := New(nil)

	if files := s.Resolve(filepath.Join(root, "notes.txt")); len(files) != 0 {
		t.Fatalf("got %d files, want 0", len(files))
	}
}

func TestResolveMissingPath(t *testing.T) {
	s := New(nil)
	if files := s.Resolve(filepath.Join(t.TempDir(), "nope")); files != nil {
		t.Fatalf("got %v, want nil", files)
	}
}

func TestResolveDirectory(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"src/app.ts":                "const a = 1;\n",
		"src/util.py":               "x = 1\n",
		"src/readme.md":             "docs\n",
		"node_modules/dep/index.js": "module.exports = {};\n",
		".hidden/secret.ts":         "const s = 1;\n",
		"build/out.js":              "var b;\n",
	})
	s := New(nil)

	files := s.Resolve(root)
	if len(files) != 2 {
		t.Fatalf("got %d files %v, want 2", len(files), files)
	}
	for _, f := range files {
		base := filepath.Base(f)
		if base != "app.ts" && base != "util.py" {
			t.Errorf("unexpected file %s", f)
		}
	}
}

func TestResolveExcludePatterns(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = []string{"*.gen.ts"}

	root := testutil.WriteTree(t, map[string]string{
		"api.gen.ts": "const g = 1;\n",
		"api.ts":     "const a = 1;\n",
	})

	files := New(cfg).Resolve(root)
	if len(files) != 1 || filepath.Base(files[0]) != "api.ts" {
		t.Fatalf("got %v, want only api.ts", files)
	}
}

func TestResolveRepeatedCallsStayConsistent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = []string{"*.gen.ts"}

	root := testutil.WriteTree(t, map[string]string{
		"api.gen.ts": "const g = 1;\n",
		"api.ts":     "const a = 1;\n",
	})
	s := New(cfg)

	for i := 0; i < 8; i++ {
		files := s.Resolve(root)
		if len(files) != 1 || filepath.Base(files[0]) != "api.ts" {
			t.Fatalf("call %d: got %v, want only api.ts", i, files)
		}
	}
}

func TestResolveConcurrent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = []string{"skip.ts"}

	root := testutil.WriteTree(t, map[string]string{
		"keep.ts": "const k = 1;\n",
		"skip.ts": "const s = 1;\n",
		"util.py": "x = 1\n",
	})
	s := New(cfg)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Resolve(root)
		}(i)
	}
	wg.Wait()

	for i, files := range results {
		if len(files) != 2 {
			t.Errorf("goroutine %d: got %d files %v, want 2", i, len(files), files)
		}
	}
}

func TestResolveArtifacts(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"settings.yaml":     "handler: app.core.Filter\n",
		"data.json":         "{}\n",
		"config.py":         "X = 1\n",
		"src/main.ts":       "const m = 1;\n",
		"node_modules/a.js": "var a;\n",
	})
	s := New(nil)
	rules := config.CompileRules(config.DefaultConfig().Frameworks)

	artifacts := s.ResolveArtifacts(root, rules)
	if len(artifacts) != 2 {
		t.Fatalf("got %d artifacts %v, want 2", len(artifacts), artifacts)
	}
	// config.py is a source file so it is scanned by the source pass,
	// not returned as an artifact.
	for _, a := range artifacts {
		if filepath.Base(a) == "config.py" {
			t.Errorf("config.py should not appear in artifacts")
		}
	}
}

func TestResolveArtifactsHonorsExcludePatterns(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = []string{"secrets.yaml"}

	root := testutil.WriteTree(t, map[string]string{
		"settings.yaml": "handler: app.core.Filter\n",
		"secrets.yaml":  "token: abc\n",
	})
	rules := config.CompileRules(cfg.Frameworks)

	artifacts := New(cfg).ResolveArtifacts(root, rules)
	if len(artifacts) != 1 || filepath.Base(artifacts[0]) != "settings.yaml" {
		t.Fatalf("got %v, want only settings.yaml", artifacts)
	}
}
