package duplicates

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sourceprism/prism/internal/testutil"
	"github.com/sourceprism/prism/pkg/config"
)

const cloneBody = `function totalPrice(items) {
  let total = 0;
  for (const item of items) {
    total += item.price * item.quantity;
  }
  if (total > 100) {
    total *= 0.9;
  }
  return total;
}
`

func detector() *Detector {
	return New(config.DefaultConfig().Duplicates)
}

func paths(root string, names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(root, n)
	}
	return out
}

func TestAnalyzeIdenticalBlocksAcrossFiles(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"cart.ts":    cloneBody,
		"invoice.ts": cloneBody,
	})

	result, err := detector().Analyze(paths(root, "cart.ts", "invoice.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesScanned != 2 {
		t.Errorf("files scanned = %d, want 2", result.FilesScanned)
	}
	if len(result.Suggestions) == 0 {
		t.Fatal("identical blocks across files should produce a suggestion")
	}

	s := result.Suggestions[0]
	if s.Similarity < result.Threshold {
		t.Errorf("similarity %.2f below threshold %.2f", s.Similarity, result.Threshold)
	}
	if s.BlockA.FilePath == s.BlockB.FilePath {
		t.Error("suggestion pairs the same file against itself")
	}
	if s.Suggestion == "" {
		t.Error("missing extraction suggestion text")
	}
}

func TestAnalyzeShortFilesProduceNothing(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a.ts": "const x = 1;\nconst y = 2;\n",
		"b.ts": "const x = 1;\nconst y = 2;\n",
	})

	result, err := detector().Analyze(paths(root, "a.ts", "b.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("got %d suggestions for files below min_lines, want 0", len(result.Suggestions))
	}
}

func TestAnalyzeDissimilarFiles(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a.ts": cloneBody,
		"b.ts": `class Registry {
  constructor() {
    this.entries = new Map();
  }
  register(key, value) {
    this.entries.set(key, value);
  }
  lookup(key) {
    return this.entries.get(key);
  }
}
`,
	})

	result, err := detector().Analyze(paths(root, "a.ts", "b.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("got %d suggestions for unrelated code, want 0", len(result.Suggestions))
	}
}

func TestAnalyzeSkipsUnreadableFiles(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"real.ts": cloneBody,
	})

	result, err := detector().Analyze([]string{
		filepath.Join(root, "real.ts"),
		filepath.Join(root, "missing.ts"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesScanned != 2 {
		t.Errorf("files scanned = %d, want 2", result.FilesScanned)
	}
}

func TestAnalyzeDeterministicAcrossRuns(t *testing.T) {
	// Three identical files produce several pairs tied on similarity;
	// the selected suggestions must not depend on map iteration order.
	root := testutil.WriteTree(t, map[string]string{
		"a.ts": cloneBody,
		"b.ts": cloneBody,
		"c.ts": cloneBody,
	})
	files := paths(root, "a.ts", "b.ts", "c.ts")

	first, err := detector().Analyze(files)
	if err != nil {
		t.Fatal(err)
	}
	for run := 0; run < 5; run++ {
		next, err := detector().Analyze(files)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first.Suggestions, next.Suggestions) {
			t.Fatalf("run %d differed:\nfirst: %+v\nnext:  %+v", run, first.Suggestions, next.Suggestions)
		}
	}
}

func TestSimilarityIdenticalSignatures(t *testing.T) {
	d := detector()
	sigA := d.minHash([]string{"a := 1", "b := 2", "c := 3", "d := 4"})
	sigB := d.minHash([]string{"a := 1", "b := 2", "c := 3", "d := 4"})
	if sim := similarity(sigA, sigB); sim != 1.0 {
		t.Errorf("identical shingle sets: similarity = %.2f, want 1.0", sim)
	}

	sigC := d.minHash([]string{"w =://", "x + y", "emit(z)", "return w"})
	if sim := similarity(sigA, sigC); sim > 0.5 {
		t.Errorf("disjoint shingle sets: similarity = %.2f, want low", sim)
	}
}
