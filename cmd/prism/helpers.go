package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sourceprism/prism/internal/output"
	"github.com/sourceprism/prism/internal/service/analysis"
	"github.com/sourceprism/prism/pkg/config"
	"github.com/urfave/cli/v2"
)

// buildService constructs the analysis service from global flags.
func buildService(c *cli.Context) (*analysis.Service, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []analysis.Option{analysis.WithLogger(log)}
	if c.Bool("no-cache") {
		opts = append(opts, analysis.WithCacheDisabled())
	}
	return analysis.New(cfg, opts...)
}

// buildFormatter constructs the output formatter from global flags.
func buildFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
}

// pathArg returns the positional path argument, defaulting to ".".
func pathArg(c *cli.Context, index int) string {
	if c.Args().Len() > index {
		return c.Args().Get(index)
	}
	return "."
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
