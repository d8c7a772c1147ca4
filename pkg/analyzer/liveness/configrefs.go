package liveness

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// quotedDottedPath matches string literals like "app.core.logging.Filter"
// inside source code. Framework configuration frequently names classes by
// dotted import path, which is the only static evidence they are alive.
var quotedDottedPath = regexp.MustCompile(`['"]([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)+)['"]`)

// bareDottedPath matches a whole scalar value that is a dotted path.
var bareDottedPath = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)+$`)

// ConfigReferenceSet holds symbol names mentioned by configuration
// artifacts or dotted-path string literals. A name in this set is treated
// as referenced even with zero visible call sites.
type ConfigReferenceSet struct {
	names map[string]struct{}
}

// NewConfigReferenceSet creates an empty set.
func NewConfigReferenceSet() *ConfigReferenceSet {
	return &ConfigReferenceSet{names: make(map[string]struct{})}
}

// Contains reports whether name was mentioned by any scanned artifact.
func (s *ConfigReferenceSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the collected names in sorted order.
func (s *ConfigReferenceSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct collected names.
func (s *ConfigReferenceSet) Len() int {
	return len(s.names)
}

// ScanSource collects dotted-path string literals from raw source text.
// Only the trailing segment is recorded, since that is the symbol name a
// dotted import path ultimately refers to.
func (s *ConfigReferenceSet) ScanSource(source []byte) {
	for _, m := range quotedDottedPath.FindAllSubmatch(source, -1) {
		s.addDotted(string(m[1]))
	}
}

// ScanArtifact collects references from a configuration file. JSON and
// YAML artifacts are walked structurally so that unquoted YAML scalars
// are seen; anything unparseable falls back to the raw text scan.
func (s *ConfigReferenceSet) ScanArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err == nil {
			s.walkValue(doc)
			return nil
		}
	}

	s.ScanSource(data)
	return nil
}

func (s *ConfigReferenceSet) walkValue(v any) {
	switch val := v.(type) {
	case string:
		if bareDottedPath.MatchString(val) {
			s.addDotted(val)
		} else {
			for _, m := range quotedDottedPath.FindAllStringSubmatch(val, -1) {
				s.addDotted(m[1])
			}
		}
	case []any:
		for _, item := range val {
			s.walkValue(item)
		}
	case map[string]any:
		for key, item := range val {
			if bareDottedPath.MatchString(key) {
				s.addDotted(key)
			}
			s.walkValue(item)
		}
	}
}

func (s *ConfigReferenceSet) addDotted(path string) {
	segments := strings.Split(path, ".")
	s.names[segments[len(segments)-1]] = struct{}{}
}
