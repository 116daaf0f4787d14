package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/settlement"
	"github.com/etnz/settlement/renderer"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	strict bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "reconcile computed balances against declared ones" }
func (*checkCmd) Usage() string {
	return `bsr check [-strict]

  Compares the computed end of period balance of each ticker against the
  declared balances file and reports which tickers are insufficient.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Exit with a failure status when any ticker is insufficient")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *declaredFile == "" {
		fmt.Fprintln(os.Stderr, "check requires a declared balances file, set the -declared flag")
		return subcommands.ExitUsageError
	}

	report, err := RunReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ChecksMarkdown(report.Checks))

	if insufficient := settlement.Insufficient(report.Checks); c.strict && len(insufficient) > 0 {
		fmt.Fprintf(os.Stderr, "%d ticker(s) insufficient\n", len(insufficient))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
