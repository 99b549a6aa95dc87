package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/estate/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string { return "topic" }
func (*topicCmd) Synopsis() string {
	return "read the user manual: dates, imports, reports and configuration"
}
func (*topicCmd) Usage() string {
	return `estc topic [-l] [<topic>...]

  Prints the user manual pages of the given topics, one after the other.
  Without topic, prints the introduction; "*" prints the whole manual.

  Topics: ` + strings.Join(docs.GetAllTopics(), ", ") + `
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "List the topics instead of printing them.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		for _, name := range docs.GetAllTopics() {
			fmt.Fprintln(stdout, name)
		}
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	manual, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading topic: %v\n", err)
		fmt.Fprintln(os.Stderr, `run "estc topic -l" for the list of topics`)
		return subcommands.ExitUsageError
	}
	printMarkdown(manual)
	return subcommands.ExitSuccess
}
