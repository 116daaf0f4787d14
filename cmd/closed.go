package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/settlement/renderer"
	"github.com/google/subcommands"
)

type closedCmd struct{}

func (*closedCmd) Name() string     { return "closed" }
func (*closedCmd) Synopsis() string { return "positions closed over the period" }
func (*closedCmd) Usage() string {
	return `bsr closed

  Displays every position whose share balance returned to zero over the
  period, with its buys, sells, commissions and net result in domestic
  currency, and a grand total row.
`
}

func (*closedCmd) SetFlags(f *flag.FlagSet) {}

func (c *closedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := RunReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ClosedMarkdown(report.Closed))
	return subcommands.ExitSuccess
}
