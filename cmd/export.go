package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/estate"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export properties to a JSONL file" }
func (*exportCmd) Usage() string {
	return `estc export [-o <file>]

  Writes every property of the user, with everything attached to it, in the
  format read by 'estc import'.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, cfg, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	props, err := db.Properties(ctx, cfg.Report.User)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading properties: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(wellFormed(props)) != len(props) {
		fmt.Fprintln(os.Stderr, "Error: some records cannot be read, see the log; nothing exported")
		return subcommands.ExitFailure
	}

	var w io.Writer = stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := estate.EncodeProperties(w, props); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing properties: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
