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

// tradesCmd holds the flags for the 'trades' subcommand.
type tradesCmd struct {
	ticker string
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "settled trades, one row per trade" }
func (*tradesCmd) Usage() string {
	return `bsr trades [-ticker <ticker>]

  Displays every settled trade of the period with its applicable rate and
  converted amounts.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Only display trades for this ticker")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := RunReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	trades := report.Trades
	if c.ticker != "" {
		filtered := make([]settlement.SettledTrade, 0, len(trades))
		for _, t := range trades {
			if t.Ticker == c.ticker {
				filtered = append(filtered, t)
			}
		}
		trades = filtered
	}

	printMarkdown(renderer.TradesMarkdown(trades))
	return subcommands.ExitSuccess
}
