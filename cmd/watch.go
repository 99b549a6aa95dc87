package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/estate"
	"github.com/etnz/estate/logger"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type watchCmd struct {
	spec string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "log the portfolio summary on a schedule" }
func (*watchCmd) Usage() string {
	return `estc watch [-cron <spec>]

  Recomputes the portfolio summary on a cron schedule and logs its totals,
  until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spec, "cron", "", "Cron schedule (minute hour day month weekday). Defaults to the configured one.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, cfg, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	spec := c.spec
	if spec == "" {
		spec = cfg.Report.Cron
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &estate.Aggregator{Source: db, Log: logger.Log}
	scheduler := cron.New(cron.WithLocation(time.Local))
	if _, err := scheduler.AddFunc(spec, summaryJob(ctx, a, cfg.Report.User, logger.Log)); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cron schedule %q: %v\n", spec, err)
		return subcommands.ExitUsageError
	}

	scheduler.Start()
	logger.Log.WithField("cron", spec).Info("watching portfolio")
	<-ctx.Done()
	<-scheduler.Stop().Done()
	logger.Log.Info("watch stopped")
	return subcommands.ExitSuccess
}

// summaryJob returns a job that computes the summary of user and logs its
// totals.
func summaryJob(ctx context.Context, a *estate.Aggregator, user string, log logrus.FieldLogger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		summary, err := a.Summary(ctx, user, time.Now())
		if err != nil {
			log.WithError(err).Error("portfolio summary failed")
			return
		}
		degraded := 0
		for _, p := range summary.Properties {
			if p.Degraded {
				degraded++
			}
		}
		t := summary.Totals
		log.WithFields(logrus.Fields{
			"user":        user,
			"properties":  len(summary.Properties),
			"degraded":    degraded,
			"netCashflow": t.NetCashflow.Decimal().StringFixed(2),
			"outstanding": t.OutstandingDebt.Decimal().StringFixed(2),
			"equity":      t.Equity.Decimal().StringFixed(2),
			"ltv":         estate.OptionalPercent(t.LTV),
		}).Info("portfolio summary")
	}
}
