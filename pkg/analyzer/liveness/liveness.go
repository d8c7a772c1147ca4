// Package liveness partitions a project's symbols into used and unused.
// Classification is a single pass over the joined symbol and reference
// tables; there is no intermediate state and no iteration to fixpoint.
package liveness

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/sourceprism/prism/internal/cache"
	"github.com/sourceprism/prism/pkg/analyzer/refs"
	"github.com/sourceprism/prism/pkg/analyzer/symbols"
	"github.com/sourceprism/prism/pkg/config"
	"github.com/sourceprism/prism/pkg/models"
	"github.com/sourceprism/prism/pkg/parser"
)

const dynamicDispatchWarning = "Dynamic dispatch (reflection, getattr-style lookups, event-based handler registration) cannot be detected. Review findings before deleting."

// Classifier joins extracted symbols with name-based reference counts and
// framework heuristics to produce dead-code findings.
type Classifier struct {
	parser *parser.Parser
	cache  *cache.ParseCache
	rules  *config.RuleSet
	log    *slog.Logger
}

// Options control one classification run.
type Options struct {
	// IncludeExported reports exported symbols too, at low confidence.
	// When false, exported symbols are treated as used and omitted.
	IncludeExported bool

	// OnProgress, if set, is called after each file is processed.
	OnProgress func(done, total int)
}

// NewClassifier creates a liveness classifier. The logger receives
// per-file parse-failure warnings; pass nil to use the default logger.
func NewClassifier(p *parser.Parser, c *cache.ParseCache, rules *config.RuleSet, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{parser: p, cache: c, rules: rules, log: log}
}

// Analyze runs dead-code detection over the given source files and
// configuration artifacts. Files that fail to parse are skipped with a
// logged warning; partial results beat no results for a best-effort tool.
func (c *Classifier) Analyze(files, artifacts []string, opts Options) (*models.DeadCodeAnalysis, error) {
	extractor := symbols.NewExtractor(c.rules)
	resolver := refs.NewResolver()
	configRefs := NewConfigReferenceSet()

	var (
		allSymbols []models.Symbol
		parsed     []*parser.ParseResult
		skipped    int
	)

	for i, path := range files {
		res, err := c.cache.Parse(c.parser, path)
		if err != nil {
			c.log.Warn("skipping file that failed to parse", "path", path, "error", err)
			skipped++
			continue
		}
		parsed = append(parsed, res)
		allSymbols = append(allSymbols, extractor.Extract(res)...)
		configRefs.ScanSource(res.Source)

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(files))
		}
	}

	for _, path := range artifacts {
		if err := configRefs.ScanArtifact(path); err != nil {
			c.log.Warn("skipping unreadable config artifact", "path", path, "error", err)
		}
	}

	// Count references in one walk per file, however many symbols exist.
	names := make(map[string]struct{}, len(allSymbols))
	for _, sym := range allSymbols {
		if sym.Kind != models.KindParameter {
			names[sym.Name] = struct{}{}
		}
	}
	counts := make(map[string]int, len(names))
	for _, res := range parsed {
		for name, n := range resolver.CountNames(res, names) {
			counts[name] += n
		}
	}

	// Any occurrence of a name marks every symbol bearing it as
	// referenced. This over-approximation is the stated matching policy.
	referenced := roaring.New()
	for i, sym := range allSymbols {
		if counts[sym.Name] > 0 {
			referenced.Add(uint32(i))
		}
	}

	var (
		unused     []models.UnusedSymbol
		suppressed int
	)
	for i, sym := range allSymbols {
		if sym.Kind == models.KindParameter {
			continue
		}
		if !opts.IncludeExported && sym.IsExported {
			continue
		}
		if referenced.Contains(uint32(i)) {
			continue
		}
		if configRefs.Contains(sym.Name) {
			suppressed++
			continue
		}
		unused = append(unused, models.UnusedSymbol{
			Name:           sym.Name,
			Kind:           sym.Kind,
			FilePath:       sym.FilePath,
			Line:           sym.Start.Row + 1,
			EndLine:        sym.End.Row + 1,
			EnclosingClass: sym.EnclosingClass,
			IsExported:     sym.IsExported,
			Confidence:     confidence(sym),
			Reason:         reason(sym),
		})
	}

	sort.SliceStable(unused, func(i, j int) bool {
		if unused[i].FilePath != unused[j].FilePath {
			return unused[i].FilePath < unused[j].FilePath
		}
		return unused[i].Line < unused[j].Line
	})

	analysis := &models.DeadCodeAnalysis{
		TotalSymbols:     len(allSymbols),
		UnusedSymbols:    unused,
		Summary:          summarize(len(unused), len(parsed)),
		ConfigReferences: configRefs.Names(),
		FilesAnalyzed:    len(parsed),
		FilesSkipped:     skipped,
	}
	if len(unused) > 0 {
		analysis.Warnings = append(analysis.Warnings, dynamicDispatchWarning)
	}
	if suppressed > 0 {
		analysis.Warnings = append(analysis.Warnings,
			fmt.Sprintf("%d finding(s) suppressed by configuration references.", suppressed))
	}
	return analysis, nil
}

// confidence assigns the deterministic confidence label. Rules are
// evaluated in order; the first match wins.
func confidence(sym models.Symbol) models.Confidence {
	switch {
	case !sym.IsExported && (sym.Kind == models.KindFunction || sym.Kind == models.KindMethod):
		return models.ConfidenceHigh
	case sym.IsExported:
		return models.ConfidenceLow
	case sym.Kind == models.KindClass:
		return models.ConfidenceHigh
	case sym.Kind == models.KindVariable:
		return models.ConfidenceHigh
	default:
		return models.ConfidenceMedium
	}
}

func reason(sym models.Symbol) string {
	switch sym.Kind {
	case models.KindFunction:
		return fmt.Sprintf("Function '%s' is defined but never called.", sym.Name)
	case models.KindMethod:
		if sym.EnclosingClass != "" {
			return fmt.Sprintf("Method '%s' on class '%s' is defined but never called.", sym.Name, sym.EnclosingClass)
		}
		return fmt.Sprintf("Method '%s' is defined but never called.", sym.Name)
	case models.KindClass:
		return fmt.Sprintf("Class '%s' is defined but never instantiated or referenced.", sym.Name)
	case models.KindVariable:
		return fmt.Sprintf("Variable '%s' is assigned but never read.", sym.Name)
	default:
		return fmt.Sprintf("Symbol '%s' is declared but never used.", sym.Name)
	}
}

func summarize(unused, analyzed int) string {
	if unused == 0 {
		return fmt.Sprintf("No unused symbols found across %d file(s).", analyzed)
	}
	return fmt.Sprintf("Found %d unused symbol(s) across %d file(s).", unused, analyzed)
}
