package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/settlement/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "per ticker balance and realized result" }
func (*summaryCmd) Usage() string {
	return `bsr summary

  Displays the position summary: for each ticker, the signed share balance
  at the end of the period and the realized result in domestic currency.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := RunReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(report.Summary))
	return subcommands.ExitSuccess
}
