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

type scheduleCmd struct {
	loan     loanFlags
	mortgage string
	format   string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the amortization schedule of a loan" }
func (*scheduleCmd) Usage() string {
	return `estc schedule (-mortgage <id> | -principal <amount> -rate <rate> ...) [-format md|csv|json]

  Displays every payment of a loan until it is repaid, with the totals, the
  term summary and the yearly breakdown. The loan is either a stored
  mortgage or described by flags.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	c.loan.SetFlags(f)
	f.StringVar(&c.mortgage, "mortgage", "", "Id of a stored mortgage. Overrides the loan flags.")
	f.StringVar(&c.format, "format", "md", "Output format: md, csv or json.")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := parseFormat(c.format, formatMarkdown, formatCSV, formatJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var terms estate.LoanTerms
	if c.mortgage != "" {
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
		terms = m.LoanTerms
	} else {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return subcommands.ExitFailure
		}
		if terms, err = c.loan.terms(cfg.Report.Currency); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	s := estate.NewSchedule(terms)
	switch out {
	case formatCSV:
		err = renderer.ScheduleCSV(stdout, s)
	case formatJSON:
		err = printJSON(s)
	default:
		printMarkdown(renderer.ScheduleMarkdown(s))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schedule: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
