package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/estate"
	"github.com/etnz/estate/renderer"
	"github.com/google/subcommands"
)

type snapshotCmd struct {
	mortgage string
	date     string
	format   string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "display the current period of a mortgage" }
func (*snapshotCmd) Usage() string {
	return `estc snapshot -mortgage <id> [-d <date>] [-format md|json]

  Displays the outstanding balance of a stored mortgage and the split of its
  current payment between interest and principal.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mortgage, "mortgage", "", "Id of the mortgage.")
	f.StringVar(&c.date, "d", "0d", "Date of the snapshot. See the user manual for supported date formats.")
	f.StringVar(&c.format, "format", "md", "Output format: md or json.")
}

func (c *snapshotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.mortgage == "" {
		fmt.Fprintln(os.Stderr, "missing -mortgage")
		return subcommands.ExitUsageError
	}
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
	m, _, err := db.Mortgage(ctx, cfg.Report.User, c.mortgage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading mortgage: %v\n", err)
		return subcommands.ExitFailure
	}

	snap := estate.MortgageSnapshot{
		ID:             m.ID,
		Lender:         m.Lender,
		AnnualRate:     m.AnnualRate,
		PeriodSnapshot: estate.ProjectPeriod(m.LoanTerms, on.Time()),
	}
	if out == formatJSON {
		if err := printJSON(snap); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SnapshotMarkdown(snap, on))
	return subcommands.ExitSuccess
}
