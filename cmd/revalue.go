package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/estate/logger"
	"github.com/etnz/estate/valuation"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type revalueCmd struct {
	property string
	dryRun   bool
}

func (*revalueCmd) Name() string { return "revalue" }
func (*revalueCmd) Synopsis() string {
	return "update the market value of properties from the valuation service"
}
func (*revalueCmd) Usage() string {
	return `estc revalue [-p <property>] [-n]

  Fetches the current market value of each property from the configured
  valuation service and saves it. Responses are cached for the day.
`
}

func (c *revalueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.property, "p", "", "Only revalue this property.")
	f.BoolVar(&c.dryRun, "n", false, "Print the values without saving them.")
}

func (c *revalueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, cfg, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()
	if cfg.Valuation.URL == "" {
		fmt.Fprintln(os.Stderr, "no valuation service configured, set valuation.url or ESTATE_VALUATION_URL")
		return subcommands.ExitFailure
	}

	props, err := db.Properties(ctx, cfg.Report.User)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading properties: %v\n", err)
		return subcommands.ExitFailure
	}

	fetcher := &valuation.Fetcher{
		Client: valuation.Daily("", logger.Log),
		URL:    cfg.Valuation.URL,
		Path:   cfg.Valuation.Path,
	}
	status := subcommands.ExitSuccess
	found := false
	for _, p := range props {
		if c.property != "" && p.ID != c.property {
			continue
		}
		found = true
		value, err := fetcher.Value(ctx, p)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{"property": p.ID, "error": err}).Warn("valuation failed")
			status = subcommands.ExitFailure
			continue
		}
		if !c.dryRun {
			if err := db.SetCurrentValue(ctx, cfg.Report.User, p.ID, value); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving value of %q: %v\n", p.ID, err)
				return subcommands.ExitFailure
			}
		}
		fmt.Fprintf(stdout, "%s: %s -> %s\n", p.Name, p.CurrentValue, value)
	}
	if c.property != "" && !found {
		fmt.Fprintf(os.Stderr, "unknown property %q\n", c.property)
		return subcommands.ExitFailure
	}
	return status
}
