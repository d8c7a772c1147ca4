package main

import (
	"fmt"

	"github.com/sourceprism/prism/internal/output"
	"github.com/urfave/cli/v2"
)

func callersCmd() *cli.Command {
	return &cli.Command{
		Name:      "callers",
		Usage:     "Find every call site of a function or method",
		ArgsUsage: "<file> <symbol>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "method",
				Usage: "Treat the symbol as a class method",
			},
		},
		Action: runCallersCmd,
	}
}

func runCallersCmd(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("usage: prism callers <file> <symbol>")
	}
	filePath := c.Args().Get(0)
	symbolName := c.Args().Get(1)

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.FindCallers(filePath, symbolName, c.Bool("method"))
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

	rows := make([][]string, 0, len(result.Callers))
	for _, site := range result.Callers {
		enclosing := site.EnclosingFunction
		if site.EnclosingClass != "" {
			enclosing = site.EnclosingClass + "." + enclosing
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d", site.FilePath, site.Line),
			string(site.CallType),
			enclosing,
			truncate(site.Snippet, 60),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Callers of %s", result.Symbol.Name),
		[]string{"Location", "Type", "Enclosing", "Snippet"},
		rows,
		nil,
		result,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	fmt.Fprintf(formatter.Writer(), "Total: %d call site(s)\n", result.TotalCount)
	return nil
}
