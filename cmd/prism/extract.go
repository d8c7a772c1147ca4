package main

import (
	"fmt"

	"github.com/sourceprism/prism/internal/output"
	"github.com/urfave/cli/v2"
)

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract a line range from a file with its enclosing symbol",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:     "start",
				Usage:    "First line, 1-based inclusive",
				Required: true,
			},
			&cli.UintFlag{
				Name:     "end",
				Usage:    "Last line, 1-based inclusive",
				Required: true,
			},
		},
		Action: runExtractCmd,
	}
}

func runExtractCmd(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("usage: prism extract <file> --start N --end M")
	}

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	rng, err := svc.ExtractCodeRange(c.Args().Get(0), uint32(c.Uint("start")), uint32(c.Uint("end")))
	if err != nil {
		return err
	}

	formatter, err := buildFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(rng)
	}

	if rng.EnclosingSymbol != "" {
		fmt.Fprintf(formatter.Writer(), "%s:%d-%d (%s %s)\n\n",
			rng.FilePath, rng.StartLine, rng.EndLine, rng.EnclosingKind, rng.EnclosingSymbol)
	} else {
		fmt.Fprintf(formatter.Writer(), "%s:%d-%d\n\n", rng.FilePath, rng.StartLine, rng.EndLine)
	}
	fmt.Fprintln(formatter.Writer(), rng.Code)
	return nil
}
