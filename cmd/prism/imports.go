package main

import (
	"fmt"
	"strings"

	"github.com/sourceprism/prism/internal/output"
	"github.com/urfave/cli/v2"
)

func importsCmd() *cli.Command {
	return &cli.Command{
		Name:      "imports",
		Usage:     "List the import and export statements of a file",
		ArgsUsage: "<file>",
		Action:    runImportsCmd,
	}
}

func runImportsCmd(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("usage: prism imports <file>")
	}

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	listing, err := svc.ListImportsExports(c.Args().Get(0))
	if err != nil {
		return err
	}

	formatter, err := buildFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(listing)
	}

	if len(listing.Imports) > 0 {
		rows := make([][]string, 0, len(listing.Imports))
		for _, imp := range listing.Imports {
			rows = append(rows, []string{
				fmt.Sprintf("%d", imp.Line),
				imp.Source,
				strings.Join(imp.Names, ", "),
			})
		}
		table := output.NewTable("Imports", []string{"Line", "Source", "Names"}, rows, nil, listing)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}

	if len(listing.Exports) > 0 {
		rows := make([][]string, 0, len(listing.Exports))
		for _, exp := range listing.Exports {
			rows = append(rows, []string{
				fmt.Sprintf("%d", exp.Line),
				strings.Join(exp.Names, ", "),
				truncate(exp.Statement, 60),
			})
		}
		table := output.NewTable("Exports", []string{"Line", "Names", "Statement"}, rows, nil, nil)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}

	fmt.Fprintf(formatter.Writer(), "%d import(s), %d export(s)\n", len(listing.Imports), len(listing.Exports))
	return nil
}
