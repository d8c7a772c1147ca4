package cache

import (
	"path/filepath"
	"testing"

	"github.com/sourceprism/prism/internal/testutil"
	"github.com/sourceprism/prism/pkg/parser"
)

func TestHashBytesStable(t *testing.T) {
	a := HashBytes([]byte("const x = 1;"))
	b := HashBytes([]byte("const x = 1;"))
	if a != b {
		t.Fatalf("same content hashed differently: %s vs %s", a, b)
	}
	if c := HashBytes([]byte("const x = 2;")); c == a {
		t.Fatalf("different content hashed identically")
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	c, err := New(8, true)
	if err != nil {
		t.Fatal(err)
	}

	hash := HashBytes([]byte("x = 1\n"))
	if _, ok := c.Get("a.py", hash); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("a.py", hash, &parser.ParseResult{Path: "a.py"})
	got, ok := c.Get("a.py", hash)
	if !ok || got.Path != "a.py" {
		t.Fatalf("expected hit for a.py, got %v ok=%v", got, ok)
	}

	// A changed content hash invalidates the entry.
	if _, ok := c.Get("a.py", HashBytes([]byte("x = 2\n"))); ok {
		t.Fatal("stale entry returned for changed content")
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestDisabledCacheAlwaysMisses(t *testing.T) {
	c, err := New(8, false)
	if err != nil {
		t.Fatal(err)
	}
	hash := HashBytes([]byte("x"))
	c.Set("a.py", hash, &parser.ParseResult{Path: "a.py"})
	if _, ok := c.Get("a.py", hash); ok {
		t.Fatal("disabled cache returned a hit")
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0", c.Len())
	}
}

func TestParseThroughCache(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"app.ts": "function greet() { return 1; }\n",
	})
	path := filepath.Join(root, "app.ts")

	p := parser.New()
	defer p.Close()
	c, err := New(8, true)
	if err != nil {
		t.Fatal(err)
	}

	first, err := c.Parse(p, path)
	if err != nil {
		t.Fatal(err)
	}
	if first.Language != parser.LangTypeScript {
		t.Fatalf("language = %v, want typescript", first.Language)
	}

	second, err := c.Parse(p, path)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Fatal("expected cached result on unchanged file")
	}
}

func TestParseMissingFile(t *testing.T) {
	c, _ := New(8, true)
	p := parser.New()
	defer p.Close()
	if _, err := c.Parse(p, filepath.Join(t.TempDir(), "nope.ts")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPurge(t *testing.T) {
	c, _ := New(8, true)
	c.Set("a.py", "h", &parser.ParseResult{})
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("Len after purge = %d, want 0", c.Len())
	}
}
