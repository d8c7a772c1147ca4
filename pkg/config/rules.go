package config

import (
	"path/filepath"
	"regexp"
	"strings"
)

// RuleSet is the compiled, immutable form of FrameworkConfig. Build one
// per analysis invocation and share it read-only.
type RuleSet struct {
	lifecycle     map[string]bool
	classPatterns []*regexp.Regexp
	configGlobs   []string
}

// CompileRules compiles the framework configuration into a RuleSet.
// Invalid class patterns are dropped rather than failing the analysis.
func CompileRules(fc FrameworkConfig) *RuleSet {
	rs := &RuleSet{
		lifecycle:   make(map[string]bool, len(fc.LifecycleMethods)),
		configGlobs: fc.ConfigFilePatterns,
	}
	for _, m := range fc.LifecycleMethods {
		rs.lifecycle[m] = true
	}
	for _, p := range fc.ClassPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		rs.classPatterns = append(rs.classPatterns, re)
	}
	return rs
}

// IsLifecycleMethod reports whether name is a framework lifecycle hook.
func (r *RuleSet) IsLifecycleMethod(name string) bool {
	return r.lifecycle[name]
}

// IsMiddlewareClass reports whether className matches any of the
// middleware-style class-name patterns.
func (r *RuleSet) IsMiddlewareClass(className string) bool {
	for _, re := range r.classPatterns {
		if re.MatchString(className) {
			return true
		}
	}
	return false
}

// IsConfigFile reports whether the file's base name matches one of the
// configuration-file patterns scanned for dotted-path references.
func (r *RuleSet) IsConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, glob := range r.configGlobs {
		if matched, _ := filepath.Match(glob, base); matched {
			return true
		}
	}
	return false
}

// IsDunder reports whether name is a Python magic method name (__init__,
// __call__, ...). Dunders are invoked by the runtime, never by visible
// call sites.
func IsDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}
