package main

import (
	"fmt"

	"github.com/sourceprism/prism/internal/output"
	"github.com/urfave/cli/v2"
)

func duplicatesCmd() *cli.Command {
	return &cli.Command{
		Name:      "duplicates",
		Aliases:   []string{"dup"},
		Usage:     "Find near-identical code blocks eligible for extraction",
		ArgsUsage: "[path]",
		Action:    runDuplicatesCmd,
	}
}

func runDuplicatesCmd(c *cli.Context) error {
	path := pathArg(c, 0)

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.FindDuplicateCode(path)
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

	rows := make([][]string, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d-%d", s.BlockA.FilePath, s.BlockA.StartLine, s.BlockA.EndLine),
			fmt.Sprintf("%s:%d-%d", s.BlockB.FilePath, s.BlockB.StartLine, s.BlockB.EndLine),
			fmt.Sprintf("%d", s.Lines),
			fmt.Sprintf("%.0f%%", s.Similarity*100),
		})
	}

	table := output.NewTable(
		"Duplicate Blocks",
		[]string{"Block A", "Block B", "Lines", "Similarity"},
		rows,
		nil,
		result,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	fmt.Fprintf(formatter.Writer(), "%d suggestion(s) across %d file(s) (min %d lines, threshold %.0f%%)\n",
		len(result.Suggestions), result.FilesScanned, result.MinLines, result.Threshold*100)
	return nil
}
