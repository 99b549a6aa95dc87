// Package cmd implements the CLI application to manage a real estate portfolio.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/estate"
	"github.com/etnz/estate/config"
	"github.com/etnz/estate/logger"
	"github.com/etnz/estate/store"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&paymentCmd{}, "loans")
	c.Register(&scheduleCmd{}, "loans")
	c.Register(&snapshotCmd{}, "loans")

	c.Register(&portfolioCmd{}, "reports")
	c.Register(&fiscalCmd{}, "reports")
	c.Register(&watchCmd{}, "reports")

	c.Register(&importCmd{}, "data")
	c.Register(&exportCmd{}, "data")
	c.Register(&revalueCmd{}, "data")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file. Defaults to $XDG_CONFIG_HOME/estate/config.toml")
var userID = flag.String("user", "", "Owner of the records. Defaults to the configured user.")

// stdout receives the command output.
var stdout io.Writer = os.Stdout

// loadConfig reads the configuration and sets the logger up.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return cfg, err
	}
	logger.Init(cfg.Log, nil)
	if *userID != "" {
		cfg.Report.User = *userID
	}
	return cfg, nil
}

// openStore loads the configuration and opens the store it points to.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	s, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, cfg, err
	}
	return s, cfg, nil
}

// wellFormed returns the properties that were read entirely, and logs the
// others.
func wellFormed(props []estate.Property) []estate.Property {
	kept := make([]estate.Property, 0, len(props))
	for _, p := range props {
		if p.Malformed != nil {
			logger.Log.WithFields(logrus.Fields{"property": p.ID, "error": p.Malformed}).Warn("property left out, some records cannot be read")
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// printMarkdown prints md styled for the terminal, or raw when it cannot be
// styled.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err == nil {
		if out, err := r.Render(md); err == nil {
			md = out
		}
	}
	fmt.Fprint(stdout, md)
}

// printJSON prints v as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// format is the output format of a report.
type format string

const (
	formatMarkdown format = "md"
	formatCSV      format = "csv"
	formatJSON     format = "json"
)

// parseFormat checks s against the formats a command supports.
func parseFormat(s string, supported ...format) (format, error) {
	f := format(strings.ToLower(strings.TrimSpace(s)))
	for _, x := range supported {
		if f == x {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// parseRate parses an annual rate, either as a ratio (0.045) or a percent
// (4.5%).
func parseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	r, err := estate.ParseDecimal(strings.TrimSuffix(s, "%"))
	if err != nil {
		return r, fmt.Errorf("invalid rate: %w", err)
	}
	if pct {
		r = r.Shift(-2)
	}
	if r.IsNegative() {
		return r, fmt.Errorf("invalid rate %q: negative", s)
	}
	return r, nil
}
