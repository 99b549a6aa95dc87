package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type paymentCmd struct {
	loan loanFlags
}

func (*paymentCmd) Name() string     { return "payment" }
func (*paymentCmd) Synopsis() string { return "compute the periodic payment of a loan" }
func (*paymentCmd) Usage() string {
	return `estc payment -principal <amount> -rate <rate> [-amortization <months>] [-frequency <frequency>]

  Prints the payment that repays the principal over the amortization period.
`
}

func (c *paymentCmd) SetFlags(f *flag.FlagSet) { c.loan.SetFlags(f) }

func (c *paymentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	terms, err := c.loan.terms(cfg.Report.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	fmt.Fprintln(stdout, terms.Payment())
	return subcommands.ExitSuccess
}
