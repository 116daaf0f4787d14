package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/settlement/date"
	"github.com/google/subcommands"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	day string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "rate applicable on a given day" }
func (*rateCmd) Usage() string {
	return `bsr rate [-d <date>]

  Displays the rate applicable on a day: the latest published rate on or
  before it. Defaults to today.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", date.Today().String(), "Day to look the rate up for (YYYY-MM-DD)")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	dec, err := NewDecoder()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	rates, err := DecodeRates(dec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}

	rate, err := rates.RateOn(day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error looking up rate: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s: %s\n", day, rate)
	return subcommands.ExitSuccess
}
