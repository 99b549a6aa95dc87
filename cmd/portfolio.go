package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/estate"
	"github.com/etnz/estate/logger"
	"github.com/etnz/estate/renderer"
	"github.com/google/subcommands"
)

type portfolioCmd struct {
	date     string
	format   string
	currency string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the summary of every property" }
func (*portfolioCmd) Usage() string {
	return `estc portfolio [-d <date>] [-c <currency>] [-format md|json]

  Displays, for each property and in total, the monthly cash flow, the
  current debt, the equity and the loan-to-value ratio.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the summary. See the user manual for supported date formats.")
	f.StringVar(&c.format, "format", "md", "Output format: md or json.")
	f.StringVar(&c.currency, "c", "", "Currency of the portfolio. Defaults to the most common currency of the properties.")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := estate.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	out, err := parseFormat(c.format, formatMarkdown, formatJSON)
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

	a := &estate.Aggregator{Source: db, Log: logger.Log, Currency: strings.ToUpper(c.currency)}
	summary, err := a.Summary(ctx, cfg.Report.User, on.Time())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if out == formatJSON {
		if err := printJSON(summary); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PortfolioMarkdown(summary))
	return subcommands.ExitSuccess
}
