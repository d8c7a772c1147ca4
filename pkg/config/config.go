package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for prism.
type Config struct {
	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Framework-awareness rules for dead-code suppression
	Frameworks FrameworkConfig `koanf:"frameworks"`

	// Parse cache settings
	Cache CacheConfig `koanf:"cache"`

	// Duplicate detection thresholds
	Duplicates DuplicateConfig `koanf:"duplicates"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Dirs      []string `koanf:"dirs"`
	Patterns  []string `koanf:"patterns"`
	Gitignore bool     `koanf:"gitignore"`
}

// FrameworkConfig defines the allow-lists used to suppress false-positive
// "unused" findings for code that frameworks call by convention. The lists
// are data, not code, so projects can extend them from a config file.
type FrameworkConfig struct {
	// LifecycleMethods are method names frameworks invoke without a
	// visible call site (React lifecycle, Django/Starlette/FastAPI and
	// Express middleware hooks).
	LifecycleMethods []string `koanf:"lifecycle_methods"`

	// ClassPatterns are regular expressions over class names whose
	// lifecycle methods are treated as exported.
	ClassPatterns []string `koanf:"class_patterns"`

	// ConfigFilePatterns are filename globs scanned for dotted-path
	// string references in addition to all source files.
	ConfigFilePatterns []string `koanf:"config_file_patterns"`
}

// CacheConfig controls the parse cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`
	Size    int  `koanf:"size"` // max entries in the LRU
}

// DuplicateConfig defines clone-detection thresholds.
type DuplicateConfig struct {
	MinLines  int     `koanf:"min_lines"`
	Threshold float64 `koanf:"threshold"`
	NumHashes int     `koanf:"num_hashes"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown
	Color  bool   `koanf:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Exclude: ExcludeConfig{
			Dirs: []string{
				"node_modules",
				".git",
				"build",
				"dist",
				"__pycache__",
			},
			Patterns:  []string{},
			Gitignore: false,
		},
		Frameworks: FrameworkConfig{
			LifecycleMethods: []string{
				// React component lifecycle
				"render",
				"componentDidMount",
				"componentDidUpdate",
				"componentWillUnmount",
				"componentDidCatch",
				"shouldComponentUpdate",
				"getDerivedStateFromProps",
				"getSnapshotBeforeUpdate",
				// Starlette/FastAPI middleware
				"dispatch",
				// Django middleware hooks
				"process_request",
				"process_response",
				"process_view",
				"process_exception",
				"process_template_response",
				// Express middleware
				"use",
				"handle",
				// Python filters
				"filter",
			},
			ClassPatterns: []string{
				".*Middleware$",
				".*Filter$",
				".*Interceptor$",
				".*Handler$",
			},
			ConfigFilePatterns: []string{
				"config.*",
				"settings.*",
				"__init__.py",
				"*.json",
				"*.yaml",
				"*.yml",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    512,
		},
		Duplicates: DuplicateConfig{
			MinLines:  6,
			Threshold: 0.8,
			NumHashes: 128,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"prism.toml",
		"prism.yaml",
		"prism.yml",
		"prism.json",
		".prism.toml",
		".prism.yaml",
		".prism.yml",
		".prism.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := Load(name)
			if err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
