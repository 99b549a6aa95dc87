// Command estc is the real estate calculator.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/estate/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	formats     = predict.Set{"md", "csv", "json"}
	frequencies = predict.Set{"annual", "semi-annual", "quarterly", "monthly", "semi-monthly", "bi-weekly", "weekly"}
	loanFlags   = map[string]complete.Predictor{
		"principal":    predict.Something,
		"rate":         predict.Something,
		"term":         predict.Something,
		"amortization": predict.Something,
		"frequency":    frequencies,
		"start":        predict.Something,
		"payment":      predict.Something,
		"c":            predict.Something,
	}
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	schedule := map[string]complete.Predictor{"mortgage": predict.Something, "format": formats}
	for name, p := range loanFlags {
		schedule[name] = p
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"user":   predict.Something,
		},
		Sub: map[string]*complete.Command{
			"payment":   {Flags: loanFlags},
			"schedule":  {Flags: schedule},
			"snapshot":  {Flags: map[string]complete.Predictor{"mortgage": predict.Something, "d": predict.Something, "format": predict.Set{"md", "json"}}},
			"portfolio": {Flags: map[string]complete.Predictor{"d": predict.Something, "c": predict.Something, "format": predict.Set{"md", "json"}}},
			"fiscal":    {Flags: map[string]complete.Predictor{"y": predict.Something, "no-invoices": predict.Nothing, "format": formats}},
			"import":    {Args: predict.Files("*.jsonl")},
			"export":    {Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")}},
			"revalue":   {Flags: map[string]complete.Predictor{"p": predict.Something, "n": predict.Nothing}},
			"watch":     {Flags: map[string]complete.Predictor{"cron": predict.Something}},
			"topic":     {Flags: map[string]complete.Predictor{"l": predict.Nothing}, Args: predict.Set{"*", "config", "dates", "fiscal", "import", "portfolio", "schedule", "snapshot", "valuation"}},
			"help":      {},
			"flags":     {},
		},
	}
}

func main() {
	name := path.Base(os.Args[0])
	// exits when called by the shell to complete the command line.
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
