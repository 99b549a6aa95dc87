package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/estate"
	"github.com/etnz/estate/renderer"
	"github.com/google/subcommands"
	"golang.org/x/text/language"
)

type fiscalCmd struct {
	year       int
	noInvoices bool
	format     string
}

func (*fiscalCmd) Name() string { return "fiscal" }
func (*fiscalCmd) Synopsis() string {
	return "display the yearly revenues and expenses of every property"
}
func (*fiscalCmd) Usage() string {
	return `estc fiscal [-y <year>] [-no-invoices] [-format md|csv|json]

  Lists the revenues and expenses of a calendar year, by property and
  category, as needed for a tax return.
`
}

func (c *fiscalCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", estate.Today().Year()-1, "Calendar year of the report. Defaults to last year.")
	f.BoolVar(&c.noInvoices, "no-invoices", false, "Leave the invoices out of the expenses.")
	f.StringVar(&c.format, "format", "md", "Output format: md, csv or json.")
}

func (c *fiscalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := parseFormat(c.format, formatMarkdown, formatCSV, formatJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	db, cfg, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	opts := []estate.FiscalOption{}
	if tag, err := language.Parse(cfg.Report.Locale); err == nil {
		opts = append(opts, estate.WithLanguage(tag))
	} else {
		fmt.Fprintf(os.Stderr, "Warning: invalid locale %q, sorting in English\n", cfg.Report.Locale)
	}
	if c.noInvoices {
		opts = append(opts, estate.WithoutInvoices())
	}

	props, err := db.Properties(ctx, cfg.Report.User)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading properties: %v\n", err)
		return subcommands.ExitFailure
	}
	r := estate.NewFiscalReport(c.year, wellFormed(props), opts...)

	switch out {
	case formatCSV:
		err = renderer.FiscalCSV(stdout, r)
	case formatJSON:
		err = printJSON(r)
	default:
		printMarkdown(renderer.FiscalMarkdown(r))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
