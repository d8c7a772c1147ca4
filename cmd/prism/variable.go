package main

import (
	"fmt"

	"github.com/sourceprism/prism/internal/output"
	"github.com/urfave/cli/v2"
)

func variableCmd() *cli.Command {
	return &cli.Command{
		Name:      "variable",
		Aliases:   []string{"var"},
		Usage:     "Track declarations, assignments, and reads of a variable",
		ArgsUsage: "<name> [path]",
		Action:    runVariableCmd,
	}
}

func runVariableCmd(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("usage: prism variable <name> [path]")
	}
	name := c.Args().Get(0)
	path := pathArg(c, 1)

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	trace, err := svc.TrackVariable(name, path)
	if err != nil {
		return err
	}

	formatter, err := buildFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(trace)
	}

	rows := make([][]string, 0, len(trace.Usages))
	for _, u := range trace.Usages {
		enclosing := u.EnclosingFunction
		if u.EnclosingClass != "" {
			enclosing = u.EnclosingClass + "." + enclosing
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d:%d", u.FilePath, u.Line, u.Column),
			string(u.Access),
			enclosing,
			truncate(u.Snippet, 60),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Usages of %s", trace.Name),
		[]string{"Location", "Access", "Enclosing", "Snippet"},
		rows,
		nil,
		trace,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	fmt.Fprintf(formatter.Writer(), "%d declaration(s), %d assignment(s), %d read(s) across %d file(s)\n",
		trace.Summary.Declarations,
		trace.Summary.Assignments,
		trace.Summary.Reads,
		trace.Summary.FilesScanned)
	return nil
}
