// Package analysis is the entry point the CLI and MCP server share. It
// owns the parser, cache, and configuration, and translates raw request
// arguments into analyzer runs with a stable error taxonomy.
package analysis

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sourceprism/prism/internal/cache"
	"github.com/sourceprism/prism/internal/scanner"
	"github.com/sourceprism/prism/pkg/analyzer/duplicates"
	"github.com/sourceprism/prism/pkg/analyzer/inspect"
	"github.com/sourceprism/prism/pkg/analyzer/liveness"
	"github.com/sourceprism/prism/pkg/analyzer/refs"
	"github.com/sourceprism/prism/pkg/analyzer/symbols"
	"github.com/sourceprism/prism/pkg/config"
	"github.com/sourceprism/prism/pkg/models"
	"github.com/sourceprism/prism/pkg/parser"
)

// Service wires the analyzers behind the request shapes exposed to the
// CLI and MCP layers. Each request allocates its own symbol table and
// reference counts; the only shared state is the parse cache, which is
// keyed by content hash and safe to reuse across requests.
type Service struct {
	cfg     *config.Config
	rules   *config.RuleSet
	parser  *parser.Parser
	cache   *cache.ParseCache
	scanner *scanner.Scanner
	log     *slog.Logger
}

// Option adjusts service construction.
type Option func(*Service)

// WithLogger sets the logger used for per-file warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithCacheDisabled turns off the parse cache regardless of config.
func WithCacheDisabled() Option {
	return func(s *Service) {
		c, _ := cache.New(s.cfg.Cache.Size, false)
		s.cache = c
	}
}

// New creates a service from configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	c, err := cache.New(cfg.Cache.Size, cfg.Cache.Enabled)
	if err != nil {
		return nil, err
	}
	s := &Service{
		cfg:     cfg,
		rules:   config.CompileRules(cfg.Frameworks),
		parser:  parser.New(),
		cache:   c,
		scanner: scanner.New(cfg),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases parser resources.
func (s *Service) Close() {
	s.parser.Close()
}

// FindCallers locates every call site of a symbol declared in filePath.
// The whole directory tree containing the file is not searched; callers
// are found across the file set rooted at the file's directory.
func (s *Service) FindCallers(filePath, symbolName string, isMethod bool) (*models.CallersResult, error) {
	if filePath == "" || symbolName == "" {
		return nil, &InvalidArgumentsError{Reason: "both a file path and a symbol name are required"}
	}

	res, err := s.cache.Parse(s.parser, filePath)
	if err != nil {
		return nil, err
	}

	target, ok := s.lookupSymbol(res, symbolName, isMethod)
	if !ok {
		return nil, &SymbolNotFoundError{Name: symbolName, File: filePath}
	}

	scope := s.scanner.Resolve(filepath.Dir(filePath))
	if len(scope) == 0 {
		scope = []string{filePath}
	}

	resolver := refs.NewResolver()
	result := &models.CallersResult{Symbol: target, Callers: []models.CallSite{}}

	for _, path := range scope {
		fileRes, err := s.cache.Parse(s.parser, path)
		if err != nil {
			s.log.Warn("skipping file that failed to parse", "path", path, "error", err)
			continue
		}
		lines := strings.Split(string(fileRes.Source), "\n")
		for _, ref := range resolver.Resolve(fileRes, target) {
			snippet := ""
			if int(ref.Start.Row) < len(lines) {
				snippet = strings.TrimSpace(lines[ref.Start.Row])
			}
			result.Callers = append(result.Callers, models.CallSite{
				FilePath:          ref.FilePath,
				Line:              ref.Start.Row + 1,
				Column:            ref.Start.Column,
				CallType:          ref.Context.CallKind,
				EnclosingFunction: ref.Context.EnclosingFunction,
				EnclosingClass:    ref.Context.EnclosingClass,
				Snippet:           snippet,
			})
		}
	}

	result.TotalCount = len(result.Callers)
	return result, nil
}

// DeadCodeOptions control a FindDeadCode run.
type DeadCodeOptions struct {
	IncludeExported bool
	OnProgress      func(done, total int)
}

// FindDeadCode classifies every symbol under path as used or unused.
func (s *Service) FindDeadCode(path string, opts DeadCodeOptions) (*models.DeadCodeAnalysis, error) {
	if path == "" {
		return nil, &InvalidArgumentsError{Reason: "a file or directory path is required"}
	}

	files := s.scanner.Resolve(path)
	if len(files) == 0 {
		return nil, &EmptyFileSetError{Path: path}
	}
	artifacts := s.scanner.ResolveArtifacts(path, s.rules)

	classifier := liveness.NewClassifier(s.parser, s.cache, s.rules, s.log)
	return classifier.Analyze(files, artifacts, liveness.Options{
		IncludeExported: opts.IncludeExported,
		OnProgress:      opts.OnProgress,
	})
}

// TrackVariable reports every declaration, assignment, and read of a
// variable name under path.
func (s *Service) TrackVariable(name, path string) (*models.VariableTrace, error) {
	if name == "" || path == "" {
		return nil, &InvalidArgumentsError{Reason: "both a variable name and a path are required"}
	}

	files := s.scanner.Resolve(path)
	if len(files) == 0 {
		return nil, &EmptyFileSetError{Path: path}
	}

	resolver := refs.NewResolver()
	trace := &models.VariableTrace{Name: name, Usages: []models.VariableUsage{}}

	for _, file := range files {
		res, err := s.cache.Parse(s.parser, file)
		if err != nil {
			s.log.Warn("skipping file that failed to parse", "path", file, "error", err)
			continue
		}
		trace.Usages = append(trace.Usages, resolver.Track(res, name)...)
	}

	for _, u := range trace.Usages {
		switch u.Access {
		case models.AccessDeclaration:
			trace.Summary.Declarations++
		case models.AccessAssignment:
			trace.Summary.Assignments++
		default:
			trace.Summary.Reads++
		}
	}
	trace.Summary.Total = len(trace.Usages)
	trace.Summary.FilesScanned = len(files)
	return trace, nil
}

// FindDuplicateCode detects near-identical code blocks under path.
func (s *Service) FindDuplicateCode(path string) (*models.DuplicateAnalysis, error) {
	if path == "" {
		return nil, &InvalidArgumentsError{Reason: "a file or directory path is required"}
	}

	files := s.scanner.Resolve(path)
	if len(files) == 0 {
		return nil, &EmptyFileSetError{Path: path}
	}

	return duplicates.New(s.cfg.Duplicates).Analyze(files)
}

// ListImportsExports lists the import and export statements of one file.
func (s *Service) ListImportsExports(filePath string) (*models.ImportExportListing, error) {
	if filePath == "" {
		return nil, &InvalidArgumentsError{Reason: "a file path is required"}
	}
	res, err := s.cache.Parse(s.parser, filePath)
	if err != nil {
		return nil, err
	}
	return inspect.ListImportsExports(res), nil
}

// ExtractCodeRange returns lines startLine through endLine of a file,
// annotated with the innermost enclosing declaration.
func (s *Service) ExtractCodeRange(filePath string, startLine, endLine uint32) (*models.CodeRange, error) {
	if filePath == "" {
		return nil, &InvalidArgumentsError{Reason: "a file path is required"}
	}
	res, err := s.cache.Parse(s.parser, filePath)
	if err != nil {
		return nil, err
	}
	return inspect.ExtractRange(res, startLine, endLine)
}

// lookupSymbol finds the named symbol in one parsed file, preferring the
// requested kind when both a function and a method share the name.
func (s *Service) lookupSymbol(res *parser.ParseResult, name string, isMethod bool) (models.Symbol, bool) {
	extractor := symbols.NewExtractor(s.rules)

	var fallback models.Symbol
	var found bool
	for _, sym := range extractor.Extract(res) {
		if sym.Name != name {
			continue
		}
		wantKind := models.KindFunction
		if isMethod {
			wantKind = models.KindMethod
		}
		if sym.Kind == wantKind {
			return sym, true
		}
		if !found {
			fallback, found = sym, true
		}
	}
	return fallback, found
}
