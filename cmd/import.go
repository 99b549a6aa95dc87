package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/estate"
	"github.com/etnz/estate/logger"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import properties from JSONL files" }
func (*importCmd) Usage() string {
	return `estc import <file>...

  Reads properties, with their mortgages, cash flows, invoices and
  depreciation settings, from JSONL files ("-" is the standard input) and
  saves them. A property that already exists is replaced.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "missing file to import")
		return subcommands.ExitUsageError
	}

	var props []estate.Property
	for _, name := range f.Args() {
		decoded, err := decodeFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		props = append(props, decoded...)
	}

	db, cfg, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	for i := range props {
		p := &props[i]
		if err := db.PutProperty(ctx, cfg.Report.User, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving property %q: %v\n", p.ID, err)
			return subcommands.ExitFailure
		}
		logger.Log.WithFields(logrus.Fields{
			"property":  p.ID,
			"mortgages": len(p.Mortgages),
			"revenues":  len(p.Revenues),
			"expenses":  len(p.Expenses),
			"invoices":  len(p.Invoices),
		}).Debug("property imported")
	}
	fmt.Fprintf(stdout, "Imported %d properties\n", len(props))
	return subcommands.ExitSuccess
}

func decodeFile(name string) ([]estate.Property, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return estate.DecodeProperties(r)
}
