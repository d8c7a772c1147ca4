package main

import (
	"fmt"

	"github.com/sourceprism/prism/internal/output"
	"github.com/sourceprism/prism/internal/progress"
	"github.com/sourceprism/prism/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func deadcodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "deadcode",
		Aliases:   []string{"dc"},
		Usage:     "Detect symbols that are never referenced",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "include-exported",
				Usage: "Also report exported symbols, at low confidence",
			},
		},
		Action: runDeadcodeCmd,
	}
}

func runDeadcodeCmd(c *cli.Context) error {
	path := pathArg(c, 0)

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	// The file count is only known once the scan completes, so the bar is
	// created on the first progress callback.
	var tracker *progress.Tracker
	result, err := svc.FindDeadCode(path, analysis.DeadCodeOptions{
		IncludeExported: c.Bool("include-exported"),
		OnProgress: func(done, total int) {
			if tracker == nil {
				tracker = progress.NewTracker("Analyzing...", total)
			}
			tracker.Set(done)
		},
	})
	if tracker != nil {
		tracker.Finish()
	}
	if err != nil {
		return err
	}

	formatter, err := buildFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(result)
	}

	if len(result.UnusedSymbols) > 0 {
		rows := make([][]string, 0, len(result.UnusedSymbols))
		for _, sym := range result.UnusedSymbols {
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d", sym.FilePath, sym.Line),
				sym.Name,
				string(sym.Kind),
				output.ConfidenceColor(string(sym.Confidence), string(sym.Confidence)),
				sym.Reason,
			})
		}
		table := output.NewTable(
			"Unused Symbols",
			[]string{"Location", "Name", "Kind", "Confidence", "Reason"},
			rows,
			nil,
			result,
		)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}

	fmt.Fprintln(formatter.Writer(), result.Summary)
	for _, warning := range result.Warnings {
		formatter.Warning("%s", warning)
	}
	return nil
}
