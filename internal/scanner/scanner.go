package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/sourceprism/prism/pkg/config"
	"github.com/sourceprism/prism/pkg/parser"
)

// Scanner resolves a file or directory root into the set of source files
// to analyze. It carries no per-request state, so one Scanner is safe to
// share across concurrent requests.
type Scanner struct {
	config *config.Config
}

// New creates a new file scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// Resolve enumerates candidate source files under path. A file with a
// recognized extension resolves to itself; a directory is walked
// depth-first, skipping dependency, build, and version-control
// directories. A missing path or a scope with no recognized files
// resolves to an empty list, not an error: callers surface that as a
// "no files found" condition.
func (s *Scanner) Resolve(path string) []string {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	if !info.IsDir() {
		if parser.DetectLanguage(path) != parser.LangUnknown {
			return []string{path}
		}
		return nil
	}

	matchers := s.excludeMatchers(path)

	files := make([]string, 0, 64)
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(path, p)

		if d.IsDir() {
			if p != path && s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			if isExcluded(matchers, relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if isExcluded(matchers, relPath, false) {
			return nil
		}
		if parser.DetectLanguage(p) != parser.LangUnknown {
			files = append(files, p)
		}
		return nil
	})

	return files
}

// ResolveArtifacts enumerates non-source configuration artifacts under
// path (JSON/YAML files and anything matching the config-file patterns),
// applying the same directory and pattern exclusions as Resolve.
func (s *Scanner) ResolveArtifacts(path string, rules *config.RuleSet) []string {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	if !info.IsDir() {
		if rules.IsConfigFile(path) {
			return []string{path}
		}
		return nil
	}

	matchers := s.excludeMatchers(path)

	var artifacts []string
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(path, p)

		if d.IsDir() {
			if p != path && s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			if isExcluded(matchers, relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if isExcluded(matchers, relPath, false) {
			return nil
		}
		// Source files are already scanned for string references.
		if parser.DetectLanguage(p) != parser.LangUnknown {
			return nil
		}
		if rules.IsConfigFile(p) {
			artifacts = append(artifacts, p)
		}
		return nil
	})

	return artifacts
}

// skipDir reports whether a directory is never descended into:
// configured exclusions plus any dot-prefixed directory.
func (s *Scanner) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, dir := range s.config.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}

// excludeMatchers builds the exclusion matcher list for one walk from the
// configured patterns and, when enabled, .gitignore files under the git
// root. The list is local to the call: the Scanner itself stays immutable.
func (s *Scanner) excludeMatchers(root string) []gitignore.Matcher {
	var patterns []gitignore.Pattern

	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}

	if s.config.Exclude.Gitignore {
		if gitRoot := findGitRoot(root); gitRoot != "" {
			fsys := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(fsys, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) == 0 {
		return nil
	}
	return []gitignore.Matcher{gitignore.NewMatcher(patterns)}
}

// isExcluded checks if a path matches any exclusion pattern.
func isExcluded(matchers []gitignore.Matcher, path string, isDir bool) bool {
	if len(matchers) == 0 {
		return false
	}

	pathParts := strings.Split(path, string(filepath.Separator))
	for _, m := range matchers {
		if m.Match(pathParts, isDir) {
			return true
		}
	}
	return false
}

// findGitRoot walks up from start looking for a .git directory.
// Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
